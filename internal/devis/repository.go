package devis

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ListFilter bounds submission listings.
type ListFilter struct {
	Limit  int
	Offset int
}

// Repository defines the interface for submission storage
type Repository interface {
	Create(ctx context.Context, req *SubmissionRequest, enr *Enrichment) (*Submission, error)
	GetByID(ctx context.Context, id string) (*Submission, error)
	List(ctx context.Context, filter ListFilter) ([]*Submission, error)
}

// InMemoryRepository is a Repository backed by a map, used in tests and when
// running without a database.
type InMemoryRepository struct {
	mu          sync.RWMutex
	submissions map[string]*Submission
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		submissions: make(map[string]*Submission),
	}
}

// Create stores a new submission in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *SubmissionRequest, enr *Enrichment) (*Submission, error) {
	sub := &Submission{
		ID:                 uuid.New().String(),
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Company:            req.Company,
		ProjectType:        req.ProjectType,
		ProjectDescription: req.ProjectDescription,
		Budget:             req.Budget,
		CreatedAt:          time.Now().UTC(),
	}
	if enr != nil {
		sub.Analysis = enr.Analysis
		sub.Brief = enr.Brief
	}

	r.mu.Lock()
	r.submissions[sub.ID] = sub
	r.mu.Unlock()

	return sub, nil
}

// GetByID retrieves a submission by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.submissions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	return sub, nil
}

// List returns submissions, newest first.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Submission, error) {
	r.mu.RLock()
	all := make([]*Submission, 0, len(r.submissions))
	for _, sub := range r.submissions {
		all = append(all, sub)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if filter.Offset >= len(all) {
		return nil, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}

var _ Repository = (*InMemoryRepository)(nil)
