package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wyr-server/internal/models"
)

// Count field names as stored in the prompt documents.
const (
	FieldACount = "a_count"
	FieldBCount = "b_count"
)

// PromptRepository is the storage accessor for prompt documents. It is the
// sole owner of persisted prompt state; callers hold no copies across requests.
type PromptRepository interface {
	// Count returns the total number of stored prompts.
	Count(ctx context.Context) (int64, error)

	// Insert persists a new prompt and returns its generated identifier.
	Insert(ctx context.Context, prompt *models.Prompt) (primitive.ObjectID, error)

	// SampleOne returns one prompt chosen uniformly at random from the full
	// collection, or models.ErrPromptNotFound when the collection is empty.
	SampleOne(ctx context.Context) (*models.Prompt, error)

	// IncrementAndFetch atomically increments the named count field by 1 and
	// returns the post-increment prompt in one indivisible operation. Returns
	// models.ErrPromptNotFound when no prompt has the given identifier.
	IncrementAndFetch(ctx context.Context, id primitive.ObjectID, field string) (*models.Prompt, error)

	// ListSorted returns up to limit prompts ordered by a_count descending,
	// ties broken by b_count descending.
	ListSorted(ctx context.Context, limit int64) ([]models.Prompt, error)

	// CollectionNames lists the collections of the underlying database.
	// Used by the diagnostics endpoint only.
	CollectionNames(ctx context.Context) ([]string, error)

	// DatabaseName returns the name of the underlying database.
	DatabaseName() string
}
