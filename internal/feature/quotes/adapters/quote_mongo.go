package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"quote_backend/internal/feature/quotes/domain/entity"
	"quote_backend/internal/feature/quotes/usecase"
)

// QuotesCollection is the MongoDB collection holding one document per user.
const QuotesCollection = "quotes"

// quoteMongo is the MongoDB implementation of QuoteRepository.
// Each user owns a single document {_id: userID, quotes: [...], updatedAt}.
// Append and Remove are single FindOneAndUpdate calls so concurrent writers never overwrite each other.
type quoteMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ usecase.QuoteRepository = (*quoteMongo)(nil)

// NewQuoteMongo creates a quoteMongo backed by db.quotes.
func NewQuoteMongo(db *mongo.Database) *quoteMongo {
	return &quoteMongo{coll: db.Collection(QuotesCollection), now: time.Now}
}

// Append pushes quotes onto the user's array, creating the document when absent.
func (r *quoteMongo) Append(ctx context.Context, userID string, quotes []entity.Quote) (*entity.QuoteCollection, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var col entity.QuoteCollection
	err := r.coll.FindOneAndUpdate(ctx, byOwner(userID), appendUpdate(quotes, r.now().UTC()), opts).Decode(&col)
	if err != nil {
		return nil, err
	}
	if col.Quotes == nil {
		col.Quotes = []entity.Quote{}
	}
	return &col, nil
}

// List returns the user's quotes; a missing document yields an empty slice.
func (r *quoteMongo) List(ctx context.Context, userID string) ([]entity.Quote, error) {
	var col entity.QuoteCollection
	if err := r.coll.FindOne(ctx, byOwner(userID)).Decode(&col); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []entity.Quote{}, nil
		}
		return nil, err
	}
	if col.Quotes == nil {
		return []entity.Quote{}, nil
	}
	return col.Quotes, nil
}

// Remove pulls every element equal to target.
// The filter only matches documents containing target, so ErrNoDocuments means nothing was removed.
func (r *quoteMongo) Remove(ctx context.Context, userID string, target entity.Quote) (int64, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before entity.QuoteCollection
	err := r.coll.FindOneAndUpdate(ctx, containsQuote(userID, target), removeUpdate(target, r.now().UTC()), opts).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, usecase.ErrQuoteNotFound
		}
		return 0, err
	}
	return countMatches(before.Quotes, target), nil
}

func byOwner(userID string) bson.D {
	return bson.D{{Key: "_id", Value: userID}}
}

func containsQuote(userID string, q entity.Quote) bson.D {
	return bson.D{
		{Key: "_id", Value: userID},
		{Key: "quotes", Value: bson.D{{Key: "$elemMatch", Value: quoteDoc(q)}}},
	}
}

func quoteDoc(q entity.Quote) bson.D {
	return bson.D{
		{Key: "category", Value: q.Category},
		{Key: "text", Value: q.Text},
	}
}

func appendUpdate(quotes []entity.Quote, now time.Time) bson.D {
	each := make(bson.A, 0, len(quotes))
	for _, q := range quotes {
		each = append(each, quoteDoc(q))
	}
	return bson.D{
		{Key: "$push", Value: bson.D{{Key: "quotes", Value: bson.D{{Key: "$each", Value: each}}}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
	}
}

func removeUpdate(q entity.Quote, now time.Time) bson.D {
	return bson.D{
		{Key: "$pull", Value: bson.D{{Key: "quotes", Value: quoteDoc(q)}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
	}
}

func countMatches(quotes []entity.Quote, target entity.Quote) int64 {
	var n int64
	for _, q := range quotes {
		if q == target {
			n++
		}
	}
	return n
}
