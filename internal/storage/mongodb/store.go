package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Store is the only component that talks to MongoDB. A Store without a
// database handle is valid; all of its operations fail with ErrUnavailable.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// Open connects to MongoDB. It always returns a usable *Store: when the
// settings are missing or the client cannot be created the store is
// unavailable and the returned error says why. A failed ping keeps the
// handle, since the driver reconnects on its own, but is still reported.
func Open(ctx context.Context, opt Options) (*Store, error) {
	if opt.URI == "" {
		return Unavailable(), fmt.Errorf("DATABASE_URL is not set")
	}
	if opt.Database == "" {
		return Unavailable(), fmt.Errorf("DATABASE_NAME is not set")
	}
	if opt.ConnectTimeout == 0 {
		opt.ConnectTimeout = 10 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(opt.URI))
	if err != nil {
		return Unavailable(), fmt.Errorf("mongo connect: %w", err)
	}

	s := &Store{client: client, db: client.Database(opt.Database), now: time.Now}
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		return s, fmt.Errorf("mongo ping: %w", err)
	}
	return s, nil
}

// New wraps an existing database handle.
func New(db *mongo.Database) *Store {
	if db == nil {
		return Unavailable()
	}
	return &Store{client: db.Client(), db: db, now: time.Now}
}

// Unavailable returns a store with no handle.
func Unavailable() *Store {
	return &Store{now: time.Now}
}

func (s *Store) Available() bool {
	return s != nil && s.db != nil
}

// Name returns the database name, or "" when unavailable.
func (s *Store) Name() string {
	if !s.Available() {
		return ""
	}
	return s.db.Name()
}

func (s *Store) Ping(ctx context.Context) error {
	if !s.Available() {
		return storeErr("ping", ErrUnavailable)
	}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return storeErr("ping", err)
	}
	return nil
}

func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	if !s.Available() {
		return nil, storeErr("list collections", ErrUnavailable)
	}
	names, err := s.db.ListCollectionNames(ctx, primitive.D{})
	if err != nil {
		return nil, storeErr("list collections", err)
	}
	return names, nil
}

// Insert stores doc as a new document in collection and returns the assigned
// id. created_at and updated_at are stamped unless doc already carries them.
// doc itself is not modified.
func (s *Store) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	if !s.Available() {
		return "", storeErr("insert", ErrUnavailable)
	}

	now := s.now().UTC()
	data := make(Document, len(doc)+2)
	for k, v := range doc {
		data[k] = v
	}
	if _, ok := data["created_at"]; !ok {
		data["created_at"] = now
	}
	if _, ok := data["updated_at"]; !ok {
		data["updated_at"] = now
	}

	res, err := s.db.Collection(collection).InsertOne(ctx, data)
	if err != nil {
		return "", storeErr("insert", err)
	}
	return IDString(res.InsertedID), nil
}

// Find returns up to limit documents of collection matching filter, in the
// store's natural order. limit <= 0 means no limit.
func (s *Store) Find(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error) {
	if !s.Available() {
		return nil, storeErr("find", ErrUnavailable)
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.db.Collection(collection).Find(ctx, filter.BSON(), opts)
	if err != nil {
		return nil, storeErr("find", err)
	}
	defer cur.Close(ctx)

	out := make([]Document, 0, 16)
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr("find", err)
	}
	if out == nil {
		out = []Document{}
	}
	return out, nil
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// IDString renders a stored _id as the string handed to callers.
func IDString(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
