// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Server error codes the bootstrap branches on.
const (
	codeNamespaceNotFound     = 26
	codeNamespaceExists       = 48
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

// IsNamespaceExists reports whether err is the server's NamespaceExists
// response to creating a collection that is already there.
func IsNamespaceExists(err error) bool {
	return hasCode(err, codeNamespaceExists)
}

// IsIndexConflict reports whether err is the server rejecting an index whose
// name or key pattern clashes with an existing index.
func IsIndexConflict(err error) bool {
	return hasCode(err, codeIndexOptionsConflict, codeIndexKeySpecsConflict)
}

// IsNamespaceNotFound reports whether err says the collection does not exist.
func IsNamespaceNotFound(err error) bool {
	return hasCode(err, codeNamespaceNotFound)
}

func hasCode(err error, codes ...int) bool {
	var se mongo.ServerError
	if !errors.As(err, &se) {
		return false
	}
	for _, c := range codes {
		if se.HasErrorCode(c) {
			return true
		}
	}
	return false
}
