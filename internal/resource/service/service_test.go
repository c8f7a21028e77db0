package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bidboard/marketplace-api/internal/resource"
	"github.com/bidboard/marketplace-api/internal/resource/repository"
	"github.com/bidboard/marketplace-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// brokenRepo fails every call with a driver-style error.
type brokenRepo struct{}

var errDriver = errors.New("connection reset")

func (brokenRepo) Find(context.Context, resource.Filter) ([]resource.Document, error) {
	return nil, errDriver
}
func (brokenRepo) FindByID(context.Context, string) (resource.Document, error) {
	return nil, errDriver
}
func (brokenRepo) Insert(context.Context, resource.Document) (*resource.InsertResult, error) {
	return nil, errDriver
}
func (brokenRepo) Upsert(context.Context, string, resource.Document) (*resource.UpdateResult, error) {
	return nil, errDriver
}
func (brokenRepo) Set(context.Context, string, resource.Document) (*resource.UpdateResult, error) {
	return nil, errDriver
}
func (brokenRepo) Delete(context.Context, string) (*resource.DeleteResult, error) {
	return nil, errDriver
}

func TestCollection_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	c := NewCollection("jobs", repository.NewMemoryRepo())

	res, err := c.Create(ctx, resource.Document{"title": "Logo design", "buyer": map[string]interface{}{"email": "a@x.com"}})
	require.NoError(t, err)

	got, err := c.Get(ctx, res.InsertedID)
	require.NoError(t, err)
	require.Equal(t, "Logo design", got["title"])
	require.Equal(t, map[string]interface{}{"email": "a@x.com"}, got["buyer"])
}

func TestCollection_Kinds(t *testing.T) {
	ctx := context.Background()
	c := NewCollection("bids", repository.NewMemoryRepo())
	absent := primitive.NewObjectID().Hex()

	_, err := c.Get(ctx, "bad")
	require.Equal(t, KindInvalidID, KindOf(err))

	_, err = c.Get(ctx, absent)
	require.Equal(t, KindNotFound, KindOf(err))
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = c.Patch(ctx, absent, resource.Document{"status": "rejected"})
	require.Equal(t, KindNotFound, KindOf(err))

	_, err = c.Delete(ctx, absent)
	require.Equal(t, KindNotFound, KindOf(err))

	_, err = c.Patch(ctx, absent, resource.Document{})
	require.Equal(t, KindInvalidInput, KindOf(err))

	_, err = c.Create(ctx, nil)
	require.Equal(t, KindInvalidInput, KindOf(err))
}

func TestCollection_ReplaceUpserts(t *testing.T) {
	ctx := context.Background()
	c := NewCollection("jobs", repository.NewMemoryRepo())
	absent := primitive.NewObjectID().Hex()

	res, err := c.Replace(ctx, absent, resource.Document{"title": "fresh"})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.UpsertedCount)

	got, err := c.Get(ctx, absent)
	require.NoError(t, err)
	require.Equal(t, "fresh", got["title"])
}

func TestCollection_StoreFailure(t *testing.T) {
	ctx := context.Background()
	c := NewCollection("jobs", brokenRepo{})
	before := testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("jobs", "find"))

	_, err := c.List(ctx, resource.Filter{})
	require.Error(t, err)
	require.Equal(t, KindStore, KindOf(err))
	require.ErrorIs(t, err, errDriver)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("jobs", "find")))
}

func TestKindOf_ForeignError(t *testing.T) {
	require.Equal(t, KindStore, KindOf(errors.New("boom")))
}
