// Package store persists RoomML documents for "roomml serve".
//
// This package defines the [Store] interface with implementations for
// different backends:
//   - memory: in-process map, for development and tests
//   - file: one JSON file per document under a directory
//   - mongo: a MongoDB collection, for shared deployments
//
// # Usage
//
//	store := store.NewMemoryStore()
//	doc, err := store.NewDocument("ground floor", source)
//	if err != nil {
//	    return err
//	}
//	if err := store.Put(ctx, doc); err != nil {
//	    return err
//	}
//
//	doc, err = store.Get(ctx, doc.ID)
//	if errors.Is(err, errors.ErrCodeDocumentNotFound) {
//	    // no such document
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperr "github.com/roomml/roomml/pkg/errors"
)

// Document is a stored RoomML source.
type Document struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Source    string    `json:"source" bson:"source"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for document storage backends.
type Store interface {
	// Get retrieves a document by id. A missing document is an error with
	// code DOCUMENT_NOT_FOUND.
	Get(ctx context.Context, id string) (*Document, error)

	// Put creates or replaces a document.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Deleting a missing document is an error
	// with code DOCUMENT_NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// List returns every document, most recently updated first.
	List(ctx context.Context) ([]*Document, error)

	// Close releases resources held by the store.
	Close() error
}

// NewDocument returns a document with a fresh id and timestamps.
func NewDocument(name, source string) (*Document, error) {
	if err := apperr.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidateID checks that id is a document id issued by [NewDocument].
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.New(apperr.ErrCodeInvalidInput, "invalid document id: %q", id)
	}
	return nil
}

func notFound(id string) error {
	return apperr.New(apperr.ErrCodeDocumentNotFound, "document %s not found", id)
}
