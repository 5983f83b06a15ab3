package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"wyr-server/internal/models"
)

const promptCollection = "prompt"

// Make sure mongoPromptRepository implements the interface
var _ PromptRepository = (*mongoPromptRepository)(nil)

type mongoPromptRepository struct {
	db     *mongo.Database
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewMongoPromptRepository creates a PromptRepository backed by the "prompt"
// collection of the given database.
func NewMongoPromptRepository(db *mongo.Database, logger *zap.Logger) PromptRepository {
	return &mongoPromptRepository{
		db:     db,
		coll:   db.Collection(promptCollection),
		logger: logger.Named("mongo_prompt_repo"),
	}
}

// EnsureIndexes creates the descending leaderboard index. Called once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: FieldACount, Value: -1},
			{Key: FieldBCount, Value: -1},
		},
		Options: options.Index().SetName("leaderboard_idx"),
	}
	if _, err := db.Collection(promptCollection).Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("db error creating leaderboard index: %w", err)
	}
	return nil
}

func (r *mongoPromptRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to count prompts", zap.Error(err))
		return 0, fmt.Errorf("db error counting prompts: %w", err)
	}
	return count, nil
}

func (r *mongoPromptRepository) Insert(ctx context.Context, prompt *models.Prompt) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, prompt)
	if err != nil {
		r.logger.Error("Failed to insert prompt", zap.Error(err))
		return primitive.NilObjectID, fmt.Errorf("db error inserting prompt: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	r.logger.Debug("Inserted prompt", zap.String("promptID", id.Hex()))
	return id, nil
}

func (r *mongoPromptRepository) SampleOne(ctx context.Context) (*models.Prompt, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to sample prompt", zap.Error(err))
		return nil, fmt.Errorf("db error sampling prompt: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			r.logger.Error("Cursor error sampling prompt", zap.Error(err))
			return nil, fmt.Errorf("db error sampling prompt: %w", err)
		}
		return nil, models.ErrPromptNotFound
	}

	var prompt models.Prompt
	if err := cursor.Decode(&prompt); err != nil {
		r.logger.Error("Failed to decode sampled prompt", zap.Error(err))
		return nil, fmt.Errorf("db error decoding sampled prompt: %w", err)
	}

	return &prompt, nil
}

func (r *mongoPromptRepository) IncrementAndFetch(ctx context.Context, id primitive.ObjectID, field string) (*models.Prompt, error) {
	if field != FieldACount && field != FieldBCount {
		return nil, fmt.Errorf("unknown count field %q", field)
	}

	// FindOneAndUpdate makes the increment and the read a single indivisible
	// operation, so concurrent votes on the same prompt never lose updates.
	var updated models.Prompt
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrPromptNotFound
		}
		r.logger.Error("Failed to increment prompt count",
			zap.String("promptID", id.Hex()),
			zap.String("field", field),
			zap.Error(err),
		)
		return nil, fmt.Errorf("db error incrementing prompt count: %w", err)
	}

	return &updated, nil
}

func (r *mongoPromptRepository) ListSorted(ctx context.Context, limit int64) ([]models.Prompt, error) {
	findOptions := options.Find().
		SetSort(bson.D{
			{Key: FieldACount, Value: -1},
			{Key: FieldBCount, Value: -1},
		}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		r.logger.Error("Failed to query top prompts", zap.Error(err))
		return nil, fmt.Errorf("db error querying top prompts: %w", err)
	}
	defer cursor.Close(ctx)

	prompts := make([]models.Prompt, 0)
	if err := cursor.All(ctx, &prompts); err != nil {
		r.logger.Error("Failed to decode top prompts", zap.Error(err))
		return nil, fmt.Errorf("db error decoding top prompts: %w", err)
	}

	return prompts, nil
}

func (r *mongoPromptRepository) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := r.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("db error listing collections: %w", err)
	}
	return names, nil
}

func (r *mongoPromptRepository) DatabaseName() string {
	return r.db.Name()
}
