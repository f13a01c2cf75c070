package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/litshelf/litshelf/internal/metrics"
	"github.com/litshelf/litshelf/internal/model"
	"github.com/litshelf/litshelf/internal/repository"
)

// Book service errors.
var (
	ErrBookExists   = errors.New("book already registered")
	ErrBookNotFound = errors.New("book not found")
)

// BookStore is the storage surface the book service needs.
type BookStore interface {
	CreateBook(ctx context.Context, book *model.Book) error
	GetBookByID(ctx context.Context, id int64) (*model.Book, error)
	GetBookByTitle(ctx context.Context, title string) (*model.Book, error)
	ListBooks(ctx context.Context, titleFilter, year string, offset, limit int) ([]*model.Book, int64, error)
	UpdateBook(ctx context.Context, book *model.Book) error
	DeleteBook(ctx context.Context, id int64) error
}

// NovelistLookup checks novelist existence for referential integrity.
type NovelistLookup interface {
	GetNovelistByID(ctx context.Context, id int64) (*model.Novelist, error)
}

// BookService handles book CRUD. Titles are stored lowercased; every write
// referencing a novelist verifies the novelist exists first.
type BookService struct {
	store     BookStore
	novelists NovelistLookup
	metrics   metrics.Recorder
}

// NewBookService creates a new BookService.
func NewBookService(store BookStore, novelists NovelistLookup, recorder metrics.Recorder) *BookService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &BookService{store: store, novelists: novelists, metrics: recorder}
}

// CreateBookInput defines input for creating a book.
type CreateBookInput struct {
	Year       string
	Title      string
	NovelistID int64
}

// Create registers a book. Fails with ErrBookExists on a duplicate title and
// ErrNovelistNotFound if the referenced novelist does not exist; nothing is
// persisted in either case.
func (s *BookService) Create(ctx context.Context, input CreateBookInput) (*model.Book, error) {
	title := strings.ToLower(input.Title)

	existing, err := s.store.GetBookByTitle(ctx, title)
	if err != nil && !errors.Is(err, repository.ErrBookNotFound) {
		return nil, fmt.Errorf("check existing book: %w", err)
	}
	if existing != nil {
		return nil, ErrBookExists
	}

	if err := s.checkNovelist(ctx, input.NovelistID); err != nil {
		return nil, err
	}

	book := &model.Book{
		Year:       input.Year,
		Title:      title,
		NovelistID: input.NovelistID,
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		if errors.Is(err, repository.ErrBookExists) {
			return nil, ErrBookExists
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.metrics.IncBookCreated()

	return book, nil
}

// BookPage is one page of a book listing.
type BookPage struct {
	Books      []*model.Book
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// ListBooksInput defines the list filters.
type ListBooksInput struct {
	Title   string // case-insensitive substring
	Year    string // exact match
	Page    int
	PerPage int
}

// List returns a page of books matching the filters.
func (s *BookService) List(ctx context.Context, input ListBooksInput) (*BookPage, error) {
	page, perPage := normalizePage(input.Page, input.PerPage)

	books, total, err := s.store.ListBooks(ctx, input.Title, input.Year, (page-1)*perPage, perPage)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return &BookPage{
		Books:      books,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

// Get retrieves a book by ID.
func (s *BookService) Get(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.store.GetBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// UpdateBookInput is a partial update: nil means "not supplied".
type UpdateBookInput struct {
	Year       *string
	Title      *string
	NovelistID *int64
}

// Update applies a partial update. A supplied title is lowercased; a
// supplied novelist reference must exist.
func (s *BookService) Update(ctx context.Context, id int64, input UpdateBookInput) (*model.Book, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.NovelistID != nil {
		if err := s.checkNovelist(ctx, *input.NovelistID); err != nil {
			return nil, err
		}
		book.NovelistID = *input.NovelistID
	}
	if input.Year != nil {
		book.Year = *input.Year
	}
	if input.Title != nil {
		book.Title = strings.ToLower(*input.Title)
	}

	if err := s.store.UpdateBook(ctx, book); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookNotFound):
			return nil, ErrBookNotFound
		case errors.Is(err, repository.ErrBookExists):
			return nil, ErrBookExists
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	return book, nil
}

// Delete removes a book by ID.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteBook(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("delete book: %w", err)
	}

	s.metrics.IncBookDeleted()

	return nil
}

func (s *BookService) checkNovelist(ctx context.Context, id int64) error {
	if _, err := s.novelists.GetNovelistByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNovelistNotFound) {
			return ErrNovelistNotFound
		}
		return fmt.Errorf("check novelist: %w", err)
	}
	return nil
}
