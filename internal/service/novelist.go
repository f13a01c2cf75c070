package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/litshelf/litshelf/internal/metrics"
	"github.com/litshelf/litshelf/internal/model"
	"github.com/litshelf/litshelf/internal/repository"
	"github.com/litshelf/litshelf/internal/sanitize"
)

// Novelist service errors.
var (
	ErrNovelistExists   = errors.New("novelist already registered")
	ErrNovelistNotFound = errors.New("novelist not found")
)

// NovelistStore is the storage surface the novelist service needs.
type NovelistStore interface {
	CreateNovelist(ctx context.Context, novelist *model.Novelist) error
	GetNovelistByID(ctx context.Context, id int64) (*model.Novelist, error)
	GetNovelistByName(ctx context.Context, name string) (*model.Novelist, error)
	ListNovelists(ctx context.Context, nameFilter string, offset, limit int) ([]*model.Novelist, int64, error)
	UpdateNovelist(ctx context.Context, novelist *model.Novelist) error
	DeleteNovelist(ctx context.Context, id int64) error
}

// NovelistService handles novelist CRUD. Any authenticated account may
// mutate novelists; there is no ownership rule.
type NovelistService struct {
	store   NovelistStore
	metrics metrics.Recorder
}

// NewNovelistService creates a new NovelistService.
func NewNovelistService(store NovelistStore, recorder metrics.Recorder) *NovelistService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &NovelistService{store: store, metrics: recorder}
}

// Create registers a novelist under the sanitized name.
func (s *NovelistService) Create(ctx context.Context, name string) (*model.Novelist, error) {
	sanitized := sanitize.Name(name)

	existing, err := s.store.GetNovelistByName(ctx, sanitized)
	if err != nil && !errors.Is(err, repository.ErrNovelistNotFound) {
		return nil, fmt.Errorf("check existing novelist: %w", err)
	}
	if existing != nil {
		return nil, ErrNovelistExists
	}

	novelist := &model.Novelist{Name: sanitized}
	if err := s.store.CreateNovelist(ctx, novelist); err != nil {
		if errors.Is(err, repository.ErrNovelistExists) {
			return nil, ErrNovelistExists
		}
		return nil, fmt.Errorf("create novelist: %w", err)
	}

	s.metrics.IncNovelistCreated()

	return novelist, nil
}

// NovelistPage is one page of a novelist listing.
type NovelistPage struct {
	Novelists  []*model.Novelist
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// List returns a page of novelists, optionally filtered by a
// case-insensitive name substring.
func (s *NovelistService) List(ctx context.Context, nameFilter string, page, perPage int) (*NovelistPage, error) {
	page, perPage = normalizePage(page, perPage)

	novelists, total, err := s.store.ListNovelists(ctx, nameFilter, (page-1)*perPage, perPage)
	if err != nil {
		return nil, fmt.Errorf("list novelists: %w", err)
	}

	return &NovelistPage{
		Novelists:  novelists,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

// Get retrieves a novelist by ID.
func (s *NovelistService) Get(ctx context.Context, id int64) (*model.Novelist, error) {
	novelist, err := s.store.GetNovelistByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNovelistNotFound) {
			return nil, ErrNovelistNotFound
		}
		return nil, fmt.Errorf("get novelist: %w", err)
	}
	return novelist, nil
}

// UpdateNovelistInput is a partial update: nil means "not supplied".
type UpdateNovelistInput struct {
	Name *string
}

// Update applies a partial update. A supplied name is sanitized first;
// an absent name leaves the stored value untouched.
func (s *NovelistService) Update(ctx context.Context, id int64, input UpdateNovelistInput) (*model.Novelist, error) {
	novelist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		novelist.Name = sanitize.Name(*input.Name)
	}

	if err := s.store.UpdateNovelist(ctx, novelist); err != nil {
		switch {
		case errors.Is(err, repository.ErrNovelistNotFound):
			return nil, ErrNovelistNotFound
		case errors.Is(err, repository.ErrNovelistExists):
			return nil, ErrNovelistExists
		}
		return nil, fmt.Errorf("update novelist: %w", err)
	}

	return novelist, nil
}

// Delete removes a novelist by ID.
func (s *NovelistService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteNovelist(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNovelistNotFound) {
			return ErrNovelistNotFound
		}
		return fmt.Errorf("delete novelist: %w", err)
	}

	s.metrics.IncNovelistDeleted()

	return nil
}
