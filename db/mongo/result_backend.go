// Package mongo implements database structures for mongodb.
package mongo

import (
	"context"
	"fmt"

	"github.com/jacobpatterson1549/codenames/db"
	"github.com/jacobpatterson1549/codenames/game"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName    = "codenames-db"
	collectionName  = "results"
	gameIDField     = "gameId"
	finishedAtField = "finishedAt"
)

// ResultBackend is a backend manager for a results collection.
type ResultBackend struct {
	Results *mongo.Collection
	db.Config
}

// NewResultBackend connects to the database at the url to manage the results collection.
func NewResultBackend(ctx context.Context, cfg db.Config, databaseURL string) (*ResultBackend, error) {
	if cfg.QueryPeriod <= 0 {
		return nil, fmt.Errorf("creating mongo result backend: validation: positive query period required")
	}
	clientOptions := options.Client()
	clientOptions.ApplyURI(databaseURL)
	ctx, cancelFunc := context.WithTimeout(ctx, cfg.QueryPeriod)
	defer cancelFunc()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	results := client.Database(databaseName).Collection(collectionName)
	rb := ResultBackend{
		Results: results,
		Config:  cfg,
	}
	return &rb, nil
}

// Setup creates a unique index on the game ids and an index to list the newest results.
func (rb *ResultBackend) Setup(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    d(e(gameIDField, 1)),
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: d(e(finishedAtField, -1)),
		},
	}
	indexes := rb.Results.Indexes()
	ctx, cancelFunc := context.WithTimeout(ctx, rb.Config.QueryPeriod)
	defer cancelFunc()
	if _, err := indexes.CreateMany(ctx, models); err != nil {
		return fmt.Errorf("creating result indexes: %w", err)
	}
	return nil
}

// Create adds the result.
func (rb *ResultBackend) Create(ctx context.Context, r game.Result) error {
	ctx, cancelFunc := context.WithTimeout(ctx, rb.Config.QueryPeriod)
	defer cancelFunc()
	if _, err := rb.Results.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("creating result: %w", err)
	}
	return nil
}

// List reads the newest results.
func (rb *ResultBackend) List(ctx context.Context, limit int) ([]game.Result, error) {
	findOptions := listOptions(limit)
	ctx, cancelFunc := context.WithTimeout(ctx, rb.Config.QueryPeriod)
	defer cancelFunc()
	cursor, err := rb.Results.Find(ctx, d(), findOptions)
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	results := []game.Result{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	for i := range results {
		results[i].FinishedAt = results[i].FinishedAt.UTC()
	}
	return results, nil
}

// listOptions sorts the newest results first, limiting how many are read.
func listOptions(limit int) *options.FindOptions {
	o := options.Find()
	o.SetSort(d(e(finishedAtField, -1)))
	o.SetLimit(int64(limit))
	o.SetProjection(d(e("_id", 0)))
	return o
}

// d is a helper function to create bson.D elements.
func d(e ...bson.E) bson.D {
	if e == nil {
		return bson.D{}
	}
	return bson.D(e)
}

// e is a helper function to create bson.E elements.
func e(key string, value interface{}) bson.E {
	return bson.E{Key: key, Value: value}
}
