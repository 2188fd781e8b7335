package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	openmatcheserrors "chedoparti/internal/openmatches/errors"
	"chedoparti/pkg/config"
	mongotx "chedoparti/pkg/db/mongo"
	"chedoparti/pkg/model"
)

const (
	CollectionName = "Open_matches"
)

type mongoOpenMatchRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type OpenMatchRepository interface {
	Create(ctx context.Context, match *model.OpenMatch) error
	FindByID(ctx context.Context, id string) (*model.OpenMatch, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.OpenMatch, error)
	FindOpen(ctx context.Context, sport string, limit int, offset int64) ([]*model.OpenMatch, error)
	Update(ctx context.Context, id string, match *model.OpenMatch) (*mongo.UpdateResult, error)
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoOpenMatchRepository(cfg *config.Config) OpenMatchRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoOpenMatchRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoOpenMatchRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoOpenMatchRepository) Create(ctx context.Context, match *model.OpenMatch) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	match.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, match)
	if err != nil {
		return fmt.Errorf("failed to create open match: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		match.ID = oid.Hex()
	}
	return nil
}

func (r *mongoOpenMatchRepository) FindByID(ctx context.Context, id string) (*model.OpenMatch, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", openmatcheserrors.ErrInvalidID, id)
	}

	var match model.OpenMatch
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&match)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, openmatcheserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open match: %w", err)
	}

	return &match, nil
}

func (r *mongoOpenMatchRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.OpenMatch, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find open matches: %w", err)
	}
	defer cursor.Close(ctx)

	var matches []*model.OpenMatch
	if err = cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("failed to decode open matches: %w", err)
	}

	return matches, nil
}

func (r *mongoOpenMatchRepository) FindOpen(ctx context.Context, sport string, limit int, offset int64) ([]*model.OpenMatch, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"status": model.MatchOpen}
	if sport != "" {
		filter["sport"] = sport
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find open matches: %w", err)
	}
	defer cursor.Close(ctx)

	var matches []*model.OpenMatch
	if err = cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("failed to decode open matches: %w", err)
	}

	return matches, nil
}

func (r *mongoOpenMatchRepository) Update(ctx context.Context, id string, match *model.OpenMatch) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", openmatcheserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"level":    match.Level,
			"capacity": match.Capacity,
			"players":  match.Players,
			"status":   match.Status,
			"notes":    match.Notes,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update open match: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, openmatcheserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoOpenMatchRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count open matches: %w", err)
	}

	return count, nil
}

func (r *mongoOpenMatchRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
