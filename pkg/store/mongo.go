package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a MongoDB-backed store for production deployments where
// several service instances share one record set.
type MongoStore struct {
	client     *mongo.Client
	datasets   *mongo.Collection
	animations *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI      string
	Database string
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping. An empty database name defaults to "viewmorph".
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "viewmorph"
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return &MongoStore{
		client:     client,
		datasets:   db.Collection("datasets"),
		animations: db.Collection("animations"),
	}, nil
}

// PutDataset stores a dataset record, replacing any existing record with
// the same ID.
func (s *MongoStore) PutDataset(ctx context.Context, rec *DatasetRecord) error {
	if rec.ID == "" {
		return ErrMissingID
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.datasets.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, opts); err != nil {
		return fmt.Errorf("put dataset %s: %w", rec.ID, err)
	}
	return nil
}

// GetDataset retrieves a dataset record by ID.
func (s *MongoStore) GetDataset(ctx context.Context, id string) (*DatasetRecord, error) {
	var rec DatasetRecord
	err := s.datasets.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("dataset %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get dataset %s: %w", id, err)
	}
	return &rec, nil
}

// DeleteDataset removes a dataset record.
func (s *MongoStore) DeleteDataset(ctx context.Context, id string) error {
	res, err := s.datasets.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete dataset %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("dataset %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListDatasets returns all dataset records, newest first.
func (s *MongoStore) ListDatasets(ctx context.Context) ([]*DatasetRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.datasets.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	var out []*DatasetRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return out, nil
}

// PutAnimation stores an animation record, replacing any existing record
// with the same ID.
func (s *MongoStore) PutAnimation(ctx context.Context, rec *AnimationRecord) error {
	if rec.ID == "" {
		return ErrMissingID
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.animations.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, opts); err != nil {
		return fmt.Errorf("put animation %s: %w", rec.ID, err)
	}
	return nil
}

// GetAnimation retrieves an animation record by ID.
func (s *MongoStore) GetAnimation(ctx context.Context, id string) (*AnimationRecord, error) {
	var rec AnimationRecord
	err := s.animations.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("animation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get animation %s: %w", id, err)
	}
	return &rec, nil
}

// DeleteAnimation removes an animation record.
func (s *MongoStore) DeleteAnimation(ctx context.Context, id string) error {
	res, err := s.animations.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete animation %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("animation %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListAnimations returns animation records for a dataset, newest first.
// An empty datasetID lists every animation.
func (s *MongoStore) ListAnimations(ctx context.Context, datasetID string) ([]*AnimationRecord, error) {
	filter := bson.M{}
	if datasetID != "" {
		filter["dataset_id"] = datasetID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.animations.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list animations: %w", err)
	}
	var out []*AnimationRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list animations: %w", err)
	}
	return out, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
