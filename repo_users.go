package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the persistence surface for accounts. It satisfies UserStore
// and adds transactional variants for callers composing larger writes.
type Users interface {
	UserStore
	repository.Repository[*User]

	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	UpdateRefreshTokensTx(ctx context.Context, tx bun.IDB, id uuid.UUID, tokens []string) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users     = (*users)(nil)
	_ UserStore = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	prepareUserDefaults(user)

	record, err := a.Repository.CreateTx(ctx, tx, user)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return record, nil
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}

	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", strings.TrimSpace(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	return record, nil
}

// FindByID is the uuid-typed lookup the authenticator consumes. The
// embedded generic repository keeps its own string-keyed GetByID.
func (a *users) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	record := &User{}

	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	return record, nil
}

func (a *users) UpdateRefreshTokens(ctx context.Context, id uuid.UUID, tokens []string) error {
	return a.UpdateRefreshTokensTx(ctx, a.db, id, tokens)
}

// UpdateRefreshTokensTx replaces the whole ledger column in one write,
// which is the only atomicity the design relies on.
func (a *users) UpdateRefreshTokensTx(ctx context.Context, tx bun.IDB, id uuid.UUID, tokens []string) error {
	if tokens == nil {
		tokens = []string{}
	}

	now := time.Now()
	record := &User{
		ID:            id,
		RefreshTokens: tokens,
		UpdatedAt:     &now,
	}

	res, err := tx.NewUpdate().
		Model(record).
		Column("refresh_tokens", "updated_at").
		WherePK().
		Where("?TableAlias.deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrIdentityNotFound
	}

	return nil
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleUser
	}

	if record.RefreshTokens == nil {
		record.RefreshTokens = []string{}
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
