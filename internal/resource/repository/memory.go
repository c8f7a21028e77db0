package repository

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/bidboard/marketplace-api/internal/resource"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Repository with the same id and $set semantics
// as MongoRepo. Used by unit tests and local runs without a database.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	store map[primitive.ObjectID]resource.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]resource.Document)}
}

func (m *MemoryRepo) Find(_ context.Context, f resource.Filter) ([]resource.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]resource.Document, 0, len(m.order))
	for _, id := range m.order {
		d := m.store[id]
		if !f.IsZero() {
			v, ok := lookup(d, f.Field)
			if !ok || !reflect.DeepEqual(v, f.Value) {
				continue
			}
		}
		out = append(out, clone(d).(resource.Document))
	}
	return out, nil
}

func (m *MemoryRepo) FindByID(_ context.Context, id string) (resource.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(d).(resource.Document), nil
}

func (m *MemoryRepo) Insert(_ context.Context, doc resource.Document) (*resource.InsertResult, error) {
	oid := primitive.NewObjectID()
	d := clone(withoutID(doc)).(resource.Document)
	d[resource.IDField] = oid
	m.mu.Lock()
	m.store[oid] = d
	m.order = append(m.order, oid)
	m.mu.Unlock()
	return &resource.InsertResult{Acknowledged: true, InsertedID: oid.Hex()}, nil
}

func (m *MemoryRepo) Upsert(_ context.Context, id string, doc resource.Document) (*resource.UpdateResult, error) {
	return m.update(id, doc, true)
}

func (m *MemoryRepo) Set(_ context.Context, id string, fields resource.Document) (*resource.UpdateResult, error) {
	return m.update(id, fields, false)
}

func (m *MemoryRepo) update(id string, doc resource.Document, upsert bool) (*resource.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	set := withoutID(doc)
	if len(set) == 0 {
		return nil, ErrEmptyUpdate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.store[oid]
	if !ok {
		if !upsert {
			return &resource.UpdateResult{Acknowledged: true}, nil
		}
		d := resource.Document{resource.IDField: oid}
		apply(d, set)
		m.store[oid] = d
		m.order = append(m.order, oid)
		hex := oid.Hex()
		return &resource.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &hex}, nil
	}
	next := clone(cur).(resource.Document)
	apply(next, set)
	res := &resource.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if !reflect.DeepEqual(cur, next) {
		m.store[oid] = next
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id string) (*resource.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[oid]; !ok {
		return &resource.DeleteResult{Acknowledged: true}, nil
	}
	delete(m.store, oid)
	for i, o := range m.order {
		if o == oid {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return &resource.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// apply performs $set: dotted keys address nested documents, creating
// intermediate documents as needed.
func apply(d resource.Document, set resource.Document) {
	for k, v := range set {
		parts := strings.Split(k, ".")
		cur := map[string]interface{}(d)
		for _, p := range parts[:len(parts)-1] {
			next, ok := asMap(cur[p])
			if !ok {
				next = map[string]interface{}{}
				cur[p] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = clone(v)
	}
}

func lookup(d resource.Document, path string) (interface{}, bool) {
	var cur interface{} = map[string]interface{}(d)
	for _, p := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[p]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, true
	case primitive.M:
		return t, true
	}
	return nil, false
}

func clone(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.M:
		out := make(primitive.M, len(t))
		for k, vv := range t {
			out[k] = clone(vv)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, vv := range t {
			out[k] = clone(vv)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, vv := range t {
			out[i] = clone(vv)
		}
		return out
	}
	return v
}
