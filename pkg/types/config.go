// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExistingPolicy selects how a create step treats a target that already exists.
type ExistingPolicy string

const (
	// PolicyTolerate reports an existing, compatible target as success.
	PolicyTolerate ExistingPolicy = "tolerate"

	// PolicyFail aborts the run when a target already exists.
	PolicyFail ExistingPolicy = "fail"
)

// DefaultDatabaseName is used when MONGO_INITDB_DATABASE is unset or empty.
const DefaultDatabaseName = "mental_chatbot"

// DefaultURI points at a MongoDB instance on the local host.
const DefaultURI = "mongodb://localhost:27017"

// ConnectionConfig holds settings for reaching the MongoDB server.
type ConnectionConfig struct {
	// URI is the MongoDB connection string (e.g. "mongodb://mongo:27017").
	URI string `json:"uri" yaml:"uri"`

	// ConnectTimeout bounds the initial connection and each ping attempt (default 10s).
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout"`

	// ConnectRetries is the number of ping retries while the server comes up (default 5).
	ConnectRetries int `json:"connect_retries" yaml:"connect_retries"`
}

// Config is the resolved configuration for a bootstrap run.
type Config struct {
	ConnectionConfig `yaml:",inline"`

	// DatabaseName is the target database. Never empty once resolved.
	DatabaseName string `json:"database" yaml:"database"`

	// OperationTimeout bounds each individual database operation (default 30s).
	OperationTimeout time.Duration `json:"operation_timeout" yaml:"operation_timeout"`

	// OnExisting selects the existing-target policy: tolerate or fail.
	OnExisting ExistingPolicy `json:"on_existing" yaml:"on_existing"`
}

// ResolveDatabaseName returns name when it is non-empty, DefaultDatabaseName otherwise.
// No validation is applied; an illegal name is rejected by the server.
func ResolveDatabaseName(name string) string {
	if name == "" {
		return DefaultDatabaseName
	}
	return name
}
