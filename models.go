package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account model. RefreshTokens is the refresh token ledger:
// the ordered set of refresh tokens currently honored for this account,
// oldest first.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	RefreshTokens []string   `bun:"refresh_tokens" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Public returns a copy safe to hand to callers: no password digest, no
// refresh token ledger.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}

	out := *u
	out.PasswordHash = ""
	out.RefreshTokens = nil
	return &out
}

// Identity projects the user into the Identity interface
func (u *User) Identity() Identity {
	return authIdentity{
		id:    u.ID.String(),
		name:  u.Name,
		email: u.Email,
		role:  u.Role,
	}
}

type authIdentity struct {
	id    string
	name  string
	email string
	role  string
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) Name() string {
	return a.name
}

func (a authIdentity) Email() string {
	return a.email
}

func (a authIdentity) Role() string {
	return a.role
}

var _ Identity = authIdentity{}
