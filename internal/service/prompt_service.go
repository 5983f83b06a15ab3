package service

import (
	"context"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"wyr-server/internal/models"
	"wyr-server/internal/repository"
)

const defaultTopLimit = 10

// PromptService implements the game operations over the prompt store.
type PromptService interface {
	// RandomPrompt seeds the store when empty, then returns one prompt chosen
	// uniformly at random.
	RandomPrompt(ctx context.Context) (*models.Prompt, error)

	// CreatePrompt stores a new prompt with zero counts and returns it with
	// its generated identifier.
	CreatePrompt(ctx context.Context, optionA, optionB, category string, createdBy *string) (*models.Prompt, error)

	// Vote records one vote for option "a" or "b" on the identified prompt
	// and returns the post-increment record.
	Vote(ctx context.Context, promptID, option string) (*models.Prompt, error)

	// TopPrompts returns up to limit prompts ordered by a_count descending,
	// ties broken by b_count descending. Non-positive limits fall back to the
	// default of 10.
	TopPrompts(ctx context.Context, limit int64) ([]models.Prompt, error)

	// Diagnostics reports backend and storage reachability. It never returns
	// an error; failures become status text in the report.
	Diagnostics(ctx context.Context) models.DiagnosticsReport
}

var _ PromptService = (*promptService)(nil)

type promptService struct {
	// repo is nil when DATABASE_URL is not configured; every operation then
	// answers models.ErrStorageUnavailable.
	repo   repository.PromptRepository
	logger *zap.Logger
}

// NewPromptService creates a PromptService over the given repository.
// repo may be nil when storage is not configured.
func NewPromptService(repo repository.PromptRepository, logger *zap.Logger) PromptService {
	return &promptService{
		repo:   repo,
		logger: logger.Named("PromptService"),
	}
}

// ensureSeeded inserts the starter prompts when the collection is empty.
// The count-then-insert is not atomic: two concurrent cold starts can both
// observe zero and double-insert. That race only affects the one-time
// bootstrap and duplicate seed rows are harmless, so it stays unguarded.
func (s *promptService) ensureSeeded(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seedMarker := "seed"
	for _, pair := range starterPrompts {
		prompt := &models.Prompt{
			OptionA:   pair[0],
			OptionB:   pair[1],
			Category:  "general",
			CreatedBy: &seedMarker,
		}
		if _, err := s.repo.Insert(ctx, prompt); err != nil {
			return fmt.Errorf("seeding starter prompts: %w", err)
		}
	}

	s.logger.Info("Seeded starter prompts", zap.Int("count", len(starterPrompts)))
	return nil
}

func (s *promptService) RandomPrompt(ctx context.Context) (*models.Prompt, error) {
	if s.repo == nil {
		return nil, models.ErrStorageUnavailable
	}

	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	return s.repo.SampleOne(ctx)
}

func (s *promptService) CreatePrompt(ctx context.Context, optionA, optionB, category string, createdBy *string) (*models.Prompt, error) {
	if s.repo == nil {
		return nil, models.ErrStorageUnavailable
	}

	if category == "" {
		category = "general"
	}

	prompt := &models.Prompt{
		OptionA:   optionA,
		OptionB:   optionB,
		Category:  category,
		CreatedBy: createdBy,
	}

	id, err := s.repo.Insert(ctx, prompt)
	if err != nil {
		return nil, err
	}
	prompt.ID = id

	return prompt, nil
}

func (s *promptService) Vote(ctx context.Context, promptID, option string) (*models.Prompt, error) {
	if s.repo == nil {
		return nil, models.ErrStorageUnavailable
	}

	id, err := primitive.ObjectIDFromHex(promptID)
	if err != nil {
		return nil, models.ErrInvalidPromptID
	}

	field := repository.FieldACount
	if option == "b" {
		field = repository.FieldBCount
	}

	return s.repo.IncrementAndFetch(ctx, id, field)
}

func (s *promptService) TopPrompts(ctx context.Context, limit int64) ([]models.Prompt, error) {
	if s.repo == nil {
		return nil, models.ErrStorageUnavailable
	}

	// A non-positive limit would mean "no limit" to the driver and dump the
	// whole collection; clamp to the default instead.
	if limit <= 0 {
		limit = defaultTopLimit
	}

	return s.repo.ListSorted(ctx, limit)
}

func (s *promptService) Diagnostics(ctx context.Context) models.DiagnosticsReport {
	report := models.DiagnosticsReport{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if s.repo == nil {
		report.Database = "⚠️ Available but not initialized"
		return report
	}

	report.Database = "✅ Available"
	urlStatus := "❌ Not Set"
	if os.Getenv("DATABASE_URL") != "" {
		urlStatus = "✅ Set"
	}
	report.DatabaseURL = &urlStatus

	dbName := s.repo.DatabaseName()
	report.DatabaseName = &dbName
	report.ConnectionStatus = "Connected"

	names, err := s.repo.CollectionNames(ctx)
	if err != nil {
		report.Database = "❌ Error: " + truncate(err.Error(), 100)
		return report
	}
	if len(names) > 10 {
		names = names[:10]
	}
	report.Collections = names

	return report
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
