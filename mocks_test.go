package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	auth "github.com/aegeanlabs/go-userauth"
)

// memStore is an in-memory UserStore with document-style semantics:
// reads hand out copies, writes go through UpdateRefreshTokens.
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*auth.User
}

func newMemStore() *memStore {
	return &memStore{users: map[uuid.UUID]*auth.User{}}
}

func (s *memStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, auth.ErrIdentityNotFound
}

func (s *memStore) FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}
	return copyUser(u), nil
}

func (s *memStore) Register(ctx context.Context, user *auth.User) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, auth.ErrDuplicateEmail
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = copyUser(user)

	return copyUser(user), nil
}

func (s *memStore) UpdateRefreshTokens(ctx context.Context, id uuid.UUID, tokens []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return auth.ErrIdentityNotFound
	}
	u.RefreshTokens = append([]string(nil), tokens...)
	return nil
}

func (s *memStore) delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *memStore) ledger(id uuid.UUID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return append([]string(nil), u.RefreshTokens...)
}

func copyUser(u *auth.User) *auth.User {
	out := *u
	out.RefreshTokens = append([]string(nil), u.RefreshTokens...)
	return &out
}

var _ auth.UserStore = (*memStore)(nil)

// MockUserStore implements auth.UserStore for error-path assertions
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUserStore) FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUserStore) Register(ctx context.Context, user *auth.User) (*auth.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*auth.User)
	return created, args.Error(1)
}

func (m *MockUserStore) UpdateRefreshTokens(ctx context.Context, id uuid.UUID, tokens []string) error {
	args := m.Called(ctx, id, tokens)
	return args.Error(0)
}

// testIdentity implements auth.Identity
type testIdentity struct {
	id    string
	name  string
	email string
	role  string
}

func (t testIdentity) ID() string    { return t.id }
func (t testIdentity) Name() string  { return t.name }
func (t testIdentity) Email() string { return t.email }
func (t testIdentity) Role() string  { return t.role }

func testConfig() auth.Config {
	return auth.Config{
		AccessSigningKey:  "access-secret-key",
		RefreshSigningKey: "refresh-secret-key",
		AccessTokenTTL:    15 * time.Minute,
		RefreshTokenTTL:   720 * time.Hour,
		MaxRefreshTokens:  5,
		Issuer:            "userauth-test",
	}
}
