package testutil

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wyr-server/internal/models"
	"wyr-server/internal/repository"
)

// Make sure MemRepo implements the interface
var _ repository.PromptRepository = (*MemRepo)(nil)

// MemRepo is an in-memory PromptRepository for tests. All operations take the
// same lock, so IncrementAndFetch has the same atomicity guarantee as the
// Mongo implementation.
type MemRepo struct {
	mu      sync.Mutex
	prompts map[primitive.ObjectID]*models.Prompt

	// FailWith, when set, is returned by every operation. Used to exercise
	// storage failure paths.
	FailWith error
}

// NewMemRepo initializes an empty in-memory repository.
func NewMemRepo() *MemRepo {
	return &MemRepo{prompts: make(map[primitive.ObjectID]*models.Prompt)}
}

func (m *MemRepo) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	return int64(len(m.prompts)), nil
}

func (m *MemRepo) Insert(ctx context.Context, prompt *models.Prompt) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return primitive.NilObjectID, m.FailWith
	}

	id := primitive.NewObjectID()
	stored := *prompt
	stored.ID = id
	m.prompts[id] = &stored
	return id, nil
}

func (m *MemRepo) SampleOne(ctx context.Context) (*models.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if len(m.prompts) == 0 {
		return nil, models.ErrPromptNotFound
	}

	ids := make([]primitive.ObjectID, 0, len(m.prompts))
	for id := range m.prompts {
		ids = append(ids, id)
	}
	picked := *m.prompts[ids[rand.Intn(len(ids))]]
	return &picked, nil
}

func (m *MemRepo) IncrementAndFetch(ctx context.Context, id primitive.ObjectID, field string) (*models.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	prompt, ok := m.prompts[id]
	if !ok {
		return nil, models.ErrPromptNotFound
	}

	switch field {
	case repository.FieldACount:
		prompt.ACount++
	case repository.FieldBCount:
		prompt.BCount++
	}

	updated := *prompt
	return &updated, nil
}

func (m *MemRepo) ListSorted(ctx context.Context, limit int64) ([]models.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	all := make([]models.Prompt, 0, len(m.prompts))
	for _, p := range m.prompts {
		all = append(all, *p)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].ACount != all[j].ACount {
			return all[i].ACount > all[j].ACount
		}
		return all[i].BCount > all[j].BCount
	})

	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *MemRepo) CollectionNames(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return []string{"prompt"}, nil
}

func (m *MemRepo) DatabaseName() string {
	return "wyr_test"
}

// Get returns a copy of the stored prompt, for assertions.
func (m *MemRepo) Get(id primitive.ObjectID) (models.Prompt, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prompts[id]
	if !ok {
		return models.Prompt{}, false
	}
	return *p, true
}
