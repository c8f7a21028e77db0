package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bidboard/marketplace-api/internal/resource"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection. Documents are
// keyed by ObjectID "_id" and every write is a single-document operation.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Find(ctx context.Context, f resource.Filter) ([]resource.Document, error) {
	cur, err := m.col.Find(ctx, filterDoc(f))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", m.col.Name(), err)
	}
	out := []resource.Document{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.col.Name(), err)
	}
	if out == nil {
		out = []resource.Document{}
	}
	return out, nil
}

func (m *MongoRepo) FindByID(ctx context.Context, id string) (resource.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var d resource.Document
	if err := m.col.FindOne(ctx, bson.M{resource.IDField: oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s %s: %w", m.col.Name(), id, err)
	}
	return d, nil
}

func (m *MongoRepo) Insert(ctx context.Context, doc resource.Document) (*resource.InsertResult, error) {
	res, err := m.col.InsertOne(ctx, withoutID(doc))
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", m.col.Name(), err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert %s: unexpected id type %T", m.col.Name(), res.InsertedID)
	}
	return &resource.InsertResult{Acknowledged: true, InsertedID: oid.Hex()}, nil
}

func (m *MongoRepo) Upsert(ctx context.Context, id string, doc resource.Document) (*resource.UpdateResult, error) {
	return m.update(ctx, id, doc, options.Update().SetUpsert(true))
}

func (m *MongoRepo) Set(ctx context.Context, id string, fields resource.Document) (*resource.UpdateResult, error) {
	return m.update(ctx, id, fields)
}

func (m *MongoRepo) update(ctx context.Context, id string, doc resource.Document, opts ...*options.UpdateOptions) (*resource.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	set := withoutID(doc)
	if len(set) == 0 {
		return nil, ErrEmptyUpdate
	}
	res, err := m.col.UpdateOne(ctx, bson.M{resource.IDField: oid}, bson.M{"$set": set}, opts...)
	if err != nil {
		return nil, fmt.Errorf("update %s %s: %w", m.col.Name(), id, err)
	}
	return &resource.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    upsertedHex(res.UpsertedID),
	}, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) (*resource.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	res, err := m.col.DeleteOne(ctx, bson.M{resource.IDField: oid})
	if err != nil {
		return nil, fmt.Errorf("delete %s %s: %w", m.col.Name(), id, err)
	}
	return &resource.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
