package testutil

import (
	"context"
	"reflect"
	"sync"

	"github.com/GoSim-25-26J-441/portfolio-api/internal/storage/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore is an in-memory document store with the same Insert/Find
// contract as mongodb.Store. Documents are returned in insertion order.
type MemStore struct {
	mu          sync.Mutex
	collections map[string][]mongodb.Document

	// InsertErr and FindErr, when set, are returned by every call.
	InsertErr error
	FindErr   error
	// FailInsertAfter makes Insert fail with InsertErr once that many inserts
	// have succeeded. Zero disables it.
	FailInsertAfter int

	Inserts int
	Finds   int
}

func NewMemStore() *MemStore {
	return &MemStore{collections: map[string][]mongodb.Document{}}
}

func (m *MemStore) Insert(_ context.Context, collection string, doc mongodb.Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertErr != nil && (m.FailInsertAfter == 0 || m.Inserts >= m.FailInsertAfter) {
		return "", &mongodb.StoreError{Op: "insert", Err: m.InsertErr}
	}

	oid := primitive.NewObjectID()
	stored := copyDoc(doc)
	stored["_id"] = oid
	m.collections[collection] = append(m.collections[collection], stored)
	m.Inserts++
	return oid.Hex(), nil
}

func (m *MemStore) Find(_ context.Context, collection string, filter mongodb.Filter, limit int64) ([]mongodb.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Finds++
	if m.FindErr != nil {
		return nil, &mongodb.StoreError{Op: "find", Err: m.FindErr}
	}

	out := []mongodb.Document{}
	for _, d := range m.collections[collection] {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if matches(d, filter) {
			out = append(out, copyDoc(d))
		}
	}
	return out, nil
}

// Put stores doc verbatim, as if written by another client.
func (m *MemStore) Put(collection string, doc mongodb.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], copyDoc(doc))
}

// Count returns the number of documents in collection.
func (m *MemStore) Count(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.collections[collection])
}

func copyDoc(d mongodb.Document) mongodb.Document {
	out := make(mongodb.Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func matches(doc mongodb.Document, filter mongodb.Filter) bool {
	for field, cond := range filter {
		v := doc[field]
		switch c := cond.(type) {
		case mongodb.OneOf:
			if !matchesAny(v, c) {
				return false
			}
		default:
			if !reflect.DeepEqual(v, c) {
				return false
			}
		}
	}
	return true
}

func matchesAny(v any, candidates mongodb.OneOf) bool {
	for _, elem := range elements(v) {
		for _, c := range candidates {
			if reflect.DeepEqual(elem, c) {
				return true
			}
		}
	}
	return false
}

// elements flattens an array value; scalars match as themselves.
func elements(v any) []any {
	switch list := v.(type) {
	case []string:
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out
	case bson.A:
		return list
	case []any:
		return list
	default:
		return []any{v}
	}
}
