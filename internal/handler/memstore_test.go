package handler

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/litshelf/litshelf/internal/model"
	"github.com/litshelf/litshelf/internal/repository"
)

// memStore is an in-memory stand-in for the Postgres repository, mirroring
// its sentinel errors and unique constraints.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	accounts  map[int64]*model.Account
	novelists map[int64]*model.Novelist
	books     map[int64]*model.Book
}

func newMemStore() *memStore {
	return &memStore{
		accounts:  make(map[int64]*model.Account),
		novelists: make(map[int64]*model.Novelist),
		books:     make(map[int64]*model.Book),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateAccount(ctx context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Username == account.Username || a.Email == account.Email {
			return repository.ErrAccountExists
		}
	}
	account.ID = m.id()
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *memStore) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, repository.ErrAccountNotFound
}

func (m *memStore) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (m *memStore) GetAccountByUsernameOrEmail(ctx context.Context, username, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Username == username || a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (m *memStore) UpdateAccount(ctx context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	for id, a := range m.accounts {
		if id != account.ID && (a.Username == account.Username || a.Email == account.Email) {
			return repository.ErrAccountExists
		}
	}
	account.UpdatedAt = time.Now().UTC()
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *memStore) DeleteAccount(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *memStore) CreateNovelist(ctx context.Context, novelist *model.Novelist) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range m.novelists {
		if n.Name == novelist.Name {
			return repository.ErrNovelistExists
		}
	}
	novelist.ID = m.id()
	novelist.CreatedAt = time.Now().UTC()
	novelist.UpdatedAt = novelist.CreatedAt
	cp := *novelist
	m.novelists[novelist.ID] = &cp
	return nil
}

func (m *memStore) GetNovelistByID(ctx context.Context, id int64) (*model.Novelist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n, ok := m.novelists[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, repository.ErrNovelistNotFound
}

func (m *memStore) GetNovelistByName(ctx context.Context, name string) (*model.Novelist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range m.novelists {
		if n.Name == name {
			cp := *n
			return &cp, nil
		}
	}
	return nil, repository.ErrNovelistNotFound
}

func (m *memStore) ListNovelists(ctx context.Context, nameFilter string, offset, limit int) ([]*model.Novelist, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*model.Novelist
	for _, n := range m.novelists {
		if nameFilter == "" || strings.Contains(strings.ToLower(n.Name), strings.ToLower(nameFilter)) {
			cp := *n
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return slicePage(matched, offset, limit), int64(len(matched)), nil
}

func (m *memStore) UpdateNovelist(ctx context.Context, novelist *model.Novelist) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.novelists[novelist.ID]; !ok {
		return repository.ErrNovelistNotFound
	}
	for id, n := range m.novelists {
		if id != novelist.ID && n.Name == novelist.Name {
			return repository.ErrNovelistExists
		}
	}
	novelist.UpdatedAt = time.Now().UTC()
	cp := *novelist
	m.novelists[novelist.ID] = &cp
	return nil
}

func (m *memStore) DeleteNovelist(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.novelists[id]; !ok {
		return repository.ErrNovelistNotFound
	}
	delete(m.novelists, id)
	return nil
}

func (m *memStore) CreateBook(ctx context.Context, book *model.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.books {
		if b.Title == book.Title {
			return repository.ErrBookExists
		}
	}
	book.ID = m.id()
	book.CreatedAt = time.Now().UTC()
	book.UpdatedAt = book.CreatedAt
	cp := *book
	m.books[book.ID] = &cp
	return nil
}

func (m *memStore) GetBookByID(ctx context.Context, id int64) (*model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b, ok := m.books[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, repository.ErrBookNotFound
}

func (m *memStore) GetBookByTitle(ctx context.Context, title string) (*model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.books {
		if b.Title == title {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repository.ErrBookNotFound
}

func (m *memStore) ListBooks(ctx context.Context, titleFilter, year string, offset, limit int) ([]*model.Book, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*model.Book
	for _, b := range m.books {
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
	return slicePage(matched, offset, limit), int64(len(matched)), nil
}

func (m *memStore) UpdateBook(ctx context.Context, book *model.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[book.ID]; !ok {
		return repository.ErrBookNotFound
	}
	for id, b := range m.books {
		if id != book.ID && b.Title == book.Title {
			return repository.ErrBookExists
		}
	}
	book.UpdatedAt = time.Now().UTC()
	cp := *book
	m.books[book.ID] = &cp
	return nil
}

func (m *memStore) DeleteBook(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[id]; !ok {
		return repository.ErrBookNotFound
	}
	delete(m.books, id)
	return nil
}

func slicePage[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
