package adapters

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"quote_backend/internal/feature/quotes/domain/entity"
	"quote_backend/internal/feature/quotes/usecase"
)

// setupTestMongo connects to MONGODB_TEST_URI and returns a throwaway database.
// Tests using it are skipped when the variable is not set.
func setupTestMongo(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database("quotestest_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestAppendUpdate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	got := appendUpdate([]entity.Quote{{Category: "a", Text: "1"}}, now)

	want := bson.D{
		{Key: "$push", Value: bson.D{{Key: "quotes", Value: bson.D{{Key: "$each", Value: bson.A{
			bson.D{{Key: "category", Value: "a"}, {Key: "text", Value: "1"}},
		}}}}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
	}
	assert.Equal(t, want, got)
}

func TestAppendUpdate_EmptyBatch(t *testing.T) {
	t.Parallel()

	got := appendUpdate(nil, time.Now())

	push := got[0].Value.(bson.D)
	each := push[0].Value.(bson.D)[0].Value
	assert.Equal(t, bson.A{}, each, "$each must be an empty array, not null")
}

func TestContainsQuote(t *testing.T) {
	t.Parallel()

	got := containsQuote("user-1", entity.Quote{Category: "a", Text: "1"})

	want := bson.D{
		{Key: "_id", Value: "user-1"},
		{Key: "quotes", Value: bson.D{{Key: "$elemMatch", Value: bson.D{
			{Key: "category", Value: "a"},
			{Key: "text", Value: "1"},
		}}}},
	}
	assert.Equal(t, want, got)
}

func TestCountMatches(t *testing.T) {
	t.Parallel()

	quotes := []entity.Quote{
		{Category: "a", Text: "1"},
		{Category: "a", Text: "2"},
		{Category: "a", Text: "1"},
	}

	assert.EqualValues(t, 2, countMatches(quotes, entity.Quote{Category: "a", Text: "1"}))
	assert.EqualValues(t, 0, countMatches(quotes, entity.Quote{Category: "b", Text: "1"}))
	assert.EqualValues(t, 0, countMatches(nil, entity.Quote{Category: "a", Text: "1"}))
}

func TestQuoteMongo_Lifecycle(t *testing.T) {
	db := setupTestMongo(t)
	ctx := context.Background()
	repo := NewQuoteMongo(db)

	quotes, err := repo.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, quotes)

	col, err := repo.Append(ctx, "user-1", []entity.Quote{{Category: "a", Text: "1"}, {Category: "b", Text: "2"}})
	require.NoError(t, err)
	assert.Len(t, col.Quotes, 2)

	col, err = repo.Append(ctx, "user-1", []entity.Quote{{Category: "a", Text: "1"}})
	require.NoError(t, err)
	assert.Equal(t, []entity.Quote{{Category: "a", Text: "1"}, {Category: "b", Text: "2"}, {Category: "a", Text: "1"}}, col.Quotes)

	n, err := repo.Remove(ctx, "user-1", entity.Quote{Category: "a", Text: "1"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = repo.Remove(ctx, "user-1", entity.Quote{Category: "a", Text: "1"})
	assert.ErrorIs(t, err, usecase.ErrQuoteNotFound)

	quotes, err = repo.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []entity.Quote{{Category: "b", Text: "2"}}, quotes)
}
