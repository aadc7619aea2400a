package mongo

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockStore(mt *mtest.T) *KVStore {
	return NewKVStore(mt.Client, mt.DB)
}

func namespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + kvCollection
}

func TestOpen_UnreachableServer(t *testing.T) {
	s, err := Open(context.Background(), Config{
		URI:      "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200",
		Database: "desk",
	})
	if err == nil {
		_ = s.Close()
		t.Fatal("expected ping failure against a closed port")
	}
}

func TestKVStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get existing key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "users"},
			{Key: "value", Value: `[{"id":"1"}]`},
			{Key: "updated_at", Value: time.Now().UTC()},
		}))

		v, found, err := newMockStore(mt).Get(context.Background(), "users")
		if err != nil || !found || v != `[{"id":"1"}]` {
			mt.Fatalf("unexpected get: %q found=%v err=%v", v, found, err)
		}
	})

	mt.Run("get missing key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, found, err := newMockStore(mt).Get(context.Background(), "users")
		if err != nil || found {
			mt.Fatalf("expected missing key, found=%v err=%v", found, err)
		}
	})

	mt.Run("set upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "users"}}}},
		))

		if err := newMockStore(mt).Set(context.Background(), "users", "[]"); err != nil {
			mt.Fatalf("set: %v", err)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "update" {
			mt.Fatalf("expected an update command, got %+v", started)
		}
	})

	mt.Run("set failure is returned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Name:    "ShutdownInProgress",
			Message: "shutting down",
		}))

		if err := newMockStore(mt).Set(context.Background(), "users", "[]"); err == nil {
			mt.Fatal("expected set error")
		}
	})

	mt.Run("remove present and absent keys", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		s := newMockStore(mt)
		if err := s.Remove(context.Background(), "users"); err != nil {
			mt.Fatalf("remove: %v", err)
		}
		if err := s.Remove(context.Background(), "users"); err != nil {
			mt.Fatalf("removing an absent key must succeed: %v", err)
		}
	})
}
