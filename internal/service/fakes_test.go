package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/litshelf/litshelf/internal/model"
	"github.com/litshelf/litshelf/internal/repository"
)

// fakeStore is an in-memory stand-in for the repository, mirroring its
// sentinel errors and uniqueness behavior.
type fakeStore struct {
	accounts  map[int64]*model.Account
	novelists map[int64]*model.Novelist
	books     map[int64]*model.Book
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:  make(map[int64]*model.Account),
		novelists: make(map[int64]*model.Novelist),
		books:     make(map[int64]*model.Book),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

// --- AccountStore / AccountLookup ---

func (f *fakeStore) CreateAccount(ctx context.Context, account *model.Account) error {
	for _, a := range f.accounts {
		if a.Username == account.Username || a.Email == account.Email {
			return repository.ErrAccountExists
		}
	}
	account.ID = f.id()
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	cp := *account
	f.accounts[account.ID] = &cp
	return nil
}

func (f *fakeStore) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (f *fakeStore) GetAccountByUsernameOrEmail(ctx context.Context, username, email string) (*model.Account, error) {
	for _, a := range f.accounts {
		if a.Username == username || a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (f *fakeStore) UpdateAccount(ctx context.Context, account *model.Account) error {
	if _, ok := f.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	for id, a := range f.accounts {
		if id != account.ID && (a.Username == account.Username || a.Email == account.Email) {
			return repository.ErrAccountExists
		}
	}
	account.UpdatedAt = time.Now().UTC()
	cp := *account
	f.accounts[account.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteAccount(ctx context.Context, id int64) error {
	if _, ok := f.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(f.accounts, id)
	return nil
}

// --- NovelistStore ---

func (f *fakeStore) CreateNovelist(ctx context.Context, novelist *model.Novelist) error {
	for _, n := range f.novelists {
		if n.Name == novelist.Name {
			return repository.ErrNovelistExists
		}
	}
	novelist.ID = f.id()
	novelist.CreatedAt = time.Now().UTC()
	novelist.UpdatedAt = novelist.CreatedAt
	cp := *novelist
	f.novelists[novelist.ID] = &cp
	return nil
}

func (f *fakeStore) GetNovelistByID(ctx context.Context, id int64) (*model.Novelist, error) {
	n, ok := f.novelists[id]
	if !ok {
		return nil, repository.ErrNovelistNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeStore) GetNovelistByName(ctx context.Context, name string) (*model.Novelist, error) {
	for _, n := range f.novelists {
		if n.Name == name {
			cp := *n
			return &cp, nil
		}
	}
	return nil, repository.ErrNovelistNotFound
}

func (f *fakeStore) ListNovelists(ctx context.Context, nameFilter string, offset, limit int) ([]*model.Novelist, int64, error) {
	var matched []*model.Novelist
	for _, n := range f.novelists {
		if nameFilter == "" || strings.Contains(strings.ToLower(n.Name), strings.ToLower(nameFilter)) {
			cp := *n
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return pageOf(matched, offset, limit), int64(len(matched)), nil
}

func (f *fakeStore) UpdateNovelist(ctx context.Context, novelist *model.Novelist) error {
	if _, ok := f.novelists[novelist.ID]; !ok {
		return repository.ErrNovelistNotFound
	}
	for id, n := range f.novelists {
		if id != novelist.ID && n.Name == novelist.Name {
			return repository.ErrNovelistExists
		}
	}
	novelist.UpdatedAt = time.Now().UTC()
	cp := *novelist
	f.novelists[novelist.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteNovelist(ctx context.Context, id int64) error {
	if _, ok := f.novelists[id]; !ok {
		return repository.ErrNovelistNotFound
	}
	delete(f.novelists, id)
	return nil
}

// --- BookStore ---

func (f *fakeStore) CreateBook(ctx context.Context, book *model.Book) error {
	for _, b := range f.books {
		if b.Title == book.Title {
			return repository.ErrBookExists
		}
	}
	book.ID = f.id()
	book.CreatedAt = time.Now().UTC()
	book.UpdatedAt = book.CreatedAt
	cp := *book
	f.books[book.ID] = &cp
	return nil
}

func (f *fakeStore) GetBookByID(ctx context.Context, id int64) (*model.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, repository.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) GetBookByTitle(ctx context.Context, title string) (*model.Book, error) {
	for _, b := range f.books {
		if b.Title == title {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repository.ErrBookNotFound
}

func (f *fakeStore) ListBooks(ctx context.Context, titleFilter, year string, offset, limit int) ([]*model.Book, int64, error) {
	var matched []*model.Book
	for _, b := range f.books {
		if titleFilter != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(titleFilter)) {
			continue
		}
		if year != "" && b.Year != year {
			continue
		}
		cp := *b
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return pageOf(matched, offset, limit), int64(len(matched)), nil
}

func (f *fakeStore) UpdateBook(ctx context.Context, book *model.Book) error {
	if _, ok := f.books[book.ID]; !ok {
		return repository.ErrBookNotFound
	}
	for id, b := range f.books {
		if id != book.ID && b.Title == book.Title {
			return repository.ErrBookExists
		}
	}
	book.UpdatedAt = time.Now().UTC()
	cp := *book
	f.books[book.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteBook(ctx context.Context, id int64) error {
	if _, ok := f.books[id]; !ok {
		return repository.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func pageOf[T any](items []*T, offset, limit int) []*T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
