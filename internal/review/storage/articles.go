package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/news-review/internal/review/domain"
	"github.com/cuongbtq/news-review/shared/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ArticleStore reads articles from the MongoDB collection.
type ArticleStore struct {
	col    *mongo.Collection
	logger *slog.Logger
}

// NewArticleStore creates a store over the named collection.
func NewArticleStore(client *mongodb.Client, collection string, logger *slog.Logger) *ArticleStore {
	return &ArticleStore{
		col:    client.Collection(collection),
		logger: logger,
	}
}

// FindByDate returns all articles whose published_date equals date exactly.
// No matches yields an empty result, not an error.
func (s *ArticleStore) FindByDate(ctx context.Context, date string) ([]domain.Article, error) {
	filter := bson.M{"published_date": date}
	opts := options.Find().SetProjection(bson.M{
		"_id":            0,
		"url":            1,
		"title":          1,
		"text":           1,
		"published_date": 1,
	})

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find articles: %w", err)
	}

	var articles []domain.Article
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}

	s.logger.Debug("Fetched articles by date",
		slog.String("date", date),
		slog.Int("count", len(articles)),
	)

	return articles, nil
}
