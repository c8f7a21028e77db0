package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bidboard/marketplace-api/internal/resource"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidID   = errors.New("invalid document id")
	ErrEmptyUpdate = errors.New("update document is empty")
)

// Repository is the pass-through from HTTP verbs to one document collection.
type Repository interface {
	Find(ctx context.Context, f resource.Filter) ([]resource.Document, error)
	FindByID(ctx context.Context, id string) (resource.Document, error)
	Insert(ctx context.Context, doc resource.Document) (*resource.InsertResult, error)
	// Upsert sets every field of doc on the document with the given id,
	// creating it when absent.
	Upsert(ctx context.Context, id string, doc resource.Document) (*resource.UpdateResult, error)
	// Set merges fields into an existing document. Nothing is created.
	Set(ctx context.Context, id string, fields resource.Document) (*resource.UpdateResult, error)
	Delete(ctx context.Context, id string) (*resource.DeleteResult, error)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// withoutID returns a shallow copy of doc minus the store-owned identifier.
func withoutID(doc resource.Document) resource.Document {
	out := make(resource.Document, len(doc))
	for k, v := range doc {
		if k == resource.IDField {
			continue
		}
		out[k] = v
	}
	return out
}

func filterDoc(f resource.Filter) bson.M {
	if f.IsZero() {
		return bson.M{}
	}
	return bson.M{f.Field: f.Value}
}

func upsertedHex(v interface{}) *string {
	oid, ok := v.(primitive.ObjectID)
	if !ok {
		return nil
	}
	s := oid.Hex()
	return &s
}
