// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Field names of a knowledge document referenced by the declared indexes.
const (
	FieldCategory  = "category"
	FieldCreatedAt = "created_at"
)

// KnowledgeCollection is the collection holding knowledge documents.
const KnowledgeCollection = "knowledge"

// KnowledgeDocument is a knowledge entry as written by the chatbot server.
// The bootstrap never writes documents; the struct fixes the bson field
// names the index specs refer to.
type KnowledgeDocument struct {
	ID      string `json:"id" bson:"_id"`
	Content string `json:"content" bson:"content"`
	Title   string `json:"title" bson:"title"`

	// Category groups entries by topic (e.g. "anxiety", "general").
	Category string `json:"category" bson:"category"`

	// Embedding is the content vector. Vector search is served elsewhere.
	Embedding []float64 `json:"embedding" bson:"embedding"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
