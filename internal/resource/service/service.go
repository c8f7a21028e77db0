package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bidboard/marketplace-api/internal/resource"
	"github.com/bidboard/marketplace-api/internal/resource/repository"
	"github.com/bidboard/marketplace-api/pkg/logger"
	"github.com/bidboard/marketplace-api/pkg/metrics"
)

// Kind classifies a failed operation so the HTTP layer can pick a status.
type Kind string

const (
	KindInvalidID    Kind = "invalid_id"
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindStore        Kind = "store"
)

// Error is returned by every Collection operation that fails.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindStore for errors not produced here.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStore
}

var ErrNilDocument = errors.New("document must be a JSON object")

// Collection exposes one named collection's operations with no business
// logic beyond classifying failures.
type Collection struct {
	name string
	repo repository.Repository
}

func NewCollection(name string, repo repository.Repository) *Collection {
	return &Collection{name: name, repo: repo}
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

func (c *Collection) List(ctx context.Context, f resource.Filter) ([]resource.Document, error) {
	out, err := c.repo.Find(ctx, f)
	if err != nil {
		return nil, c.fail("find", err)
	}
	return out, nil
}

func (c *Collection) Get(ctx context.Context, id string) (resource.Document, error) {
	d, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, c.fail("findOne", err)
	}
	return d, nil
}

func (c *Collection) Create(ctx context.Context, doc resource.Document) (*resource.InsertResult, error) {
	if doc == nil {
		return nil, c.fail("insertOne", ErrNilDocument)
	}
	res, err := c.repo.Insert(ctx, doc)
	if err != nil {
		return nil, c.fail("insertOne", err)
	}
	return res, nil
}

// Replace sets every supplied field on the document, inserting it when the
// id does not exist yet. Concurrent replaces are last-write-wins.
func (c *Collection) Replace(ctx context.Context, id string, doc resource.Document) (*resource.UpdateResult, error) {
	if doc == nil {
		return nil, c.fail("updateOne", ErrNilDocument)
	}
	res, err := c.repo.Upsert(ctx, id, doc)
	if err != nil {
		return nil, c.fail("updateOne", err)
	}
	return res, nil
}

// Patch merges fields into an existing document.
func (c *Collection) Patch(ctx context.Context, id string, fields resource.Document) (*resource.UpdateResult, error) {
	if fields == nil {
		return nil, c.fail("updateOne", ErrNilDocument)
	}
	res, err := c.repo.Set(ctx, id, fields)
	if err != nil {
		return nil, c.fail("updateOne", err)
	}
	if res.MatchedCount == 0 {
		return nil, c.fail("updateOne", repository.ErrNotFound)
	}
	return res, nil
}

// Delete removes one document. Dependent documents in other collections are
// left untouched.
func (c *Collection) Delete(ctx context.Context, id string) (*resource.DeleteResult, error) {
	res, err := c.repo.Delete(ctx, id)
	if err != nil {
		return nil, c.fail("deleteOne", err)
	}
	if res.DeletedCount == 0 {
		return nil, c.fail("deleteOne", repository.ErrNotFound)
	}
	return res, nil
}

func (c *Collection) fail(op string, err error) error {
	kind := KindStore
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		kind = KindInvalidID
	case errors.Is(err, repository.ErrNotFound):
		kind = KindNotFound
	case errors.Is(err, repository.ErrEmptyUpdate), errors.Is(err, ErrNilDocument):
		kind = KindInvalidInput
	}
	if kind == KindStore {
		metrics.StoreErrors.WithLabelValues(c.name, op).Inc()
		logger.Errorf("%s.%s failed: %v", c.name, op, err)
	}
	return &Error{Kind: kind, Op: c.name + "." + op, Err: err}
}
