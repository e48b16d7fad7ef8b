package mongodb

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestOpen_MissingSettings(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Database: "portfolio"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.False(t, s.Available())

	s, err = Open(ctx, Options{URI: "mongodb://localhost:27017"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_NAME")
	assert.False(t, s.Available())
}

func TestOpen_InvalidURI(t *testing.T) {
	s, err := Open(context.Background(), Options{URI: "not-a-mongo-uri", Database: "portfolio"})
	require.Error(t, err)
	assert.False(t, s.Available())
}

func TestUnavailableStore(t *testing.T) {
	ctx := context.Background()
	s := Unavailable()

	assert.False(t, s.Available())
	assert.Equal(t, "", s.Name())

	_, err := s.Insert(ctx, "project", Document{"title": "x"})
	assertUnavailable(t, err, "insert")

	_, err = s.Find(ctx, "project", Filter{}, 1)
	assertUnavailable(t, err, "find")

	_, err = s.CollectionNames(ctx)
	assertUnavailable(t, err, "list collections")

	assertUnavailable(t, s.Ping(ctx), "ping")
	assert.NoError(t, s.Close(ctx))

	var nilStore *Store
	assert.False(t, nilStore.Available())
	assert.False(t, New(nil).Available())
}

func assertUnavailable(t *testing.T, err error, op string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))

	var se *StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, op, se.Op)
}

func TestIDString(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), IDString(oid))
	assert.Equal(t, "abc", IDString("abc"))
	assert.Equal(t, "42", IDString(42))
	assert.Equal(t, "", IDString(nil))
}

func TestStoreWithMockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert returns object id", func(mt *mtest.T) {
		s := New(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		doc := Document{"title": "KasirKu"}
		id, err := s.Insert(context.Background(), "project", doc)
		require.NoError(mt, err)

		_, err = primitive.ObjectIDFromHex(id)
		assert.NoError(mt, err)
		_, stamped := doc["created_at"]
		assert.False(mt, stamped, "caller document must not be modified")

		cmd := startedCommand(mt, "insert")
		sent, err := cmd.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, sent, 1)
		stored := sent[0].Document()
		assert.Equal(mt, "KasirKu", stored.Lookup("title").StringValue())
		assert.Equal(mt, bson.TypeDateTime, stored.Lookup("created_at").Type)
		assert.Equal(mt, bson.TypeDateTime, stored.Lookup("updated_at").Type)
	})

	mt.Run("insert surfaces write errors", func(mt *mtest.T) {
		s := New(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := s.Insert(context.Background(), "project", Document{"title": "x"})
		require.Error(mt, err)

		var se *StoreError
		require.True(mt, errors.As(err, &se))
		assert.Equal(mt, "insert", se.Op)
		assert.Contains(mt, err.Error(), "duplicate key error")
	})

	mt.Run("find decodes documents", func(mt *mtest.T) {
		s := New(mt.DB)
		ns := fmt.Sprintf("%s.%s", mt.DB.Name(), "project")
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "title", Value: "KasirKu"}, {Key: "tags", Value: bson.A{"Android", "POS"}}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "CatatanKeu"}},
		))

		docs, err := s.Find(context.Background(), "project", Filter{"tags": OneOf{"Android"}}, 50)
		require.NoError(mt, err)
		require.Len(mt, docs, 2)
		assert.Equal(mt, oid, docs[0]["_id"])
		assert.Equal(mt, "KasirKu", docs[0]["title"])
		assert.Equal(mt, "CatatanKeu", docs[1]["title"])

		cmd := startedCommand(mt, "find")
		assert.Equal(mt, "project", cmd.Lookup("find").StringValue())
		in, err := cmd.Lookup("filter", "tags", "$in").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, in, 1)
		assert.Equal(mt, "Android", in[0].StringValue())
		assert.Equal(mt, int64(50), cmd.Lookup("limit").AsInt64())
	})

	mt.Run("find with no matches is empty, not an error", func(mt *mtest.T) {
		s := New(mt.DB)
		ns := fmt.Sprintf("%s.%s", mt.DB.Name(), "project")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		docs, err := s.Find(context.Background(), "project", Filter{"featured": true}, 0)
		require.NoError(mt, err)
		assert.NotNil(mt, docs)
		assert.Empty(mt, docs)

		cmd := startedCommand(mt, "find")
		assert.True(mt, cmd.Lookup("filter", "featured").Boolean())
		_, err = cmd.LookupErr("limit")
		assert.Error(mt, err, "limit 0 must not send a limit")
	})

	mt.Run("find surfaces command errors", func(mt *mtest.T) {
		s := New(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		_, err := s.Find(context.Background(), "project", Filter{}, 1)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "not authorized")
	})

	mt.Run("collection names", func(mt *mtest.T) {
		s := New(mt.DB)
		assert.Equal(mt, mt.DB.Name(), s.Name())

		ns := fmt.Sprintf("%s.$cmd.listCollections", mt.DB.Name())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "name", Value: "project"}, {Key: "type", Value: "collection"}},
		))

		names, err := s.CollectionNames(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []string{"project"}, names)
	})
}

// startedCommand returns the first recorded command named name.
func startedCommand(mt *mtest.T, name string) bson.Raw {
	mt.Helper()
	for evt := mt.GetStartedEvent(); evt != nil; evt = mt.GetStartedEvent() {
		if evt.CommandName == name {
			return evt.Command
		}
	}
	mt.Fatalf("no %q command was sent", name)
	return nil
}
