package mongo

import (
	"FeedSeeder/internal/model"
	"FeedSeeder/internal/pkg/consts"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestUserRepo_InsertUsers(t *testing.T) {
	mt := newMockT(t)

	mt.Run("returns ids in input order", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))
		repo := NewUserRepo(mt.DB)

		users := []*model.User{
			{UserIDStr: "user_1", Name: "A", Email: "user_1@example.com"},
			{UserIDStr: "user_2", Name: "B", Email: "user_2@example.com"},
		}
		ids, err := repo.InsertUsers(context.Background(), users)
		require.NoError(mt, err)
		require.Len(mt, ids, 2)
		assert.NotEqual(mt, ids[0], ids[1])
		assert.False(mt, ids[0].IsZero())
	})

	mt.Run("empty batch skips the round trip", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		ids, err := repo.InsertUsers(context.Background(), nil)
		require.NoError(mt, err)
		assert.Empty(mt, ids)
	})

	mt.Run("write error is wrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		repo := NewUserRepo(mt.DB)
		_, err := repo.InsertUsers(context.Background(), []*model.User{{UserIDStr: "user_1"}})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "insert many into")
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})
}

func TestUserRepo_GetByID(t *testing.T) {
	mt := newMockT(t)

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "social_feed.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "user_id_str", Value: "user_7"},
			{Key: "name", Value: "User_7"},
		}))
		user, err := NewUserRepo(mt.DB).GetByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, "user_7", user.UserIDStr)
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "social_feed.users", mtest.FirstBatch))
		_, err := NewUserRepo(mt.DB).GetByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}

func TestFriendshipRepo_GetFollowedIDs(t *testing.T) {
	mt := newMockT(t)

	mt.Run("maps followed ids", func(mt *mtest.T) {
		follower := primitive.NewObjectID()
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "social_feed.friendships", mtest.FirstBatch,
			bson.D{{Key: "follower_id", Value: follower}, {Key: "followed_id", Value: a}},
			bson.D{{Key: "follower_id", Value: follower}, {Key: "followed_id", Value: b}},
		))
		ids, err := NewFriendshipRepo(mt.DB).GetFollowedIDs(context.Background(), follower)
		require.NoError(mt, err)
		assert.Equal(mt, []primitive.ObjectID{a, b}, ids)
	})
}

func TestPostRepo_SetCounts(t *testing.T) {
	mt := newMockT(t)

	mt.Run("bulk update", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 2},
			bson.E{Key: "nModified", Value: 2},
		))
		err := NewPostRepo(mt.DB).SetCounts(context.Background(), model.PostLikesCountField, []model.PostCounter{
			{PostID: primitive.NewObjectID(), Count: 3},
			{PostID: primitive.NewObjectID(), Count: 0},
		})
		require.NoError(mt, err)
	})

	mt.Run("rejects unknown field", func(mt *mtest.T) {
		err := NewPostRepo(mt.DB).SetCounts(context.Background(), "views", []model.PostCounter{{PostID: primitive.NewObjectID()}})
		assert.Error(mt, err)
	})

	mt.Run("nothing to write", func(mt *mtest.T) {
		err := NewPostRepo(mt.DB).SetCounts(context.Background(), model.PostCommentsCountField, nil)
		assert.NoError(mt, err)
	})
}

func TestPostRepo_Aggregations(t *testing.T) {
	mt := newMockT(t)

	mt.Run("top topics", func(mt *mtest.T) {
		topicID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "social_feed.posts", mtest.FirstBatch, bson.D{
			{Key: "topic_id", Value: topicID},
			{Key: "name", Value: "Technology"},
			{Key: "count", Value: 42},
		}))
		stats, err := NewPostRepo(mt.DB).TopTopics(context.Background(), 5)
		require.NoError(mt, err)
		require.Len(mt, stats, 1)
		assert.Equal(mt, topicID, stats[0].TopicID)
		assert.Equal(mt, "Technology", stats[0].Name)
		assert.Equal(mt, 42, stats[0].Count)
	})

	mt.Run("top by likes", func(mt *mtest.T) {
		postID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "social_feed.posts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: postID},
			{Key: "content", Value: "hello"},
			{Key: "total", Value: 9},
		}))
		stats, err := NewPostRepo(mt.DB).TopByEngagement(context.Background(), primitive.NewObjectID(), consts.LikesCollection, 3)
		require.NoError(mt, err)
		require.Len(mt, stats, 1)
		assert.Equal(mt, postID, stats[0].ID)
		assert.Equal(mt, 9, stats[0].Total)
	})

	mt.Run("top by unknown collection", func(mt *mtest.T) {
		_, err := NewPostRepo(mt.DB).TopByEngagement(context.Background(), primitive.NewObjectID(), "views", 3)
		assert.Error(mt, err)
	})

	mt.Run("no authors short-circuits", func(mt *mtest.T) {
		posts, err := NewPostRepo(mt.DB).GetByAuthorsSince(context.Background(), nil, time.Now())
		require.NoError(mt, err)
		assert.Empty(mt, posts)
	})
}

func TestSeedStore_Clear(t *testing.T) {
	mt := newMockT(t)

	mt.Run("clears every collection", func(mt *mtest.T) {
		for i := 0; i < 6; i++ {
			mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		}
		require.NoError(mt, NewSeedStore(mt.DB).Clear(context.Background()))
	})

	mt.Run("stops on first failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "unauthorized",
		}))
		err := NewSeedStore(mt.DB).Clear(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "clear likes")
	})
}

func TestSeedStore_EnsureIndexes(t *testing.T) {
	mt := newMockT(t)

	mt.Run("creates unique indexes", func(mt *mtest.T) {
		for i := 0; i < 3; i++ {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}
		require.NoError(mt, NewSeedStore(mt.DB).EnsureIndexes(context.Background()))

		started := mt.GetAllStartedEvents()
		require.Len(mt, started, 3)
		for i, col := range []string{"users", "topics", "likes"} {
			assert.Equal(mt, "createIndexes", started[i].CommandName)
			assert.Equal(mt, col, started[i].Command.Lookup("createIndexes").StringValue())
			idx := started[i].Command.Lookup("indexes", "0", "unique")
			assert.True(mt, idx.Boolean())
		}
	})

	mt.Run("existing duplicates fail the build", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "E11000 duplicate key error collection: social_feed.users",
		}))
		err := NewSeedStore(mt.DB).EnsureIndexes(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "create unique index on users")
	})
}
