package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for admin operations.
var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrDuplicateAdmin     = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Admin roles. Role is stored and returned but not used for authorization
// beyond requiring a valid admin token.
const (
	RoleAdmin   = "admin"
	RoleCoAdmin = "co-admin"
)

// Admin represents a platform administrator account.
// swagger:model Admin
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the set of claims a verified bearer token proves.
type Identity struct {
	ID    int64
	Email string
}

// PasswordHasher hashes and verifies admin passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues signed tokens for an authenticated admin.
type TokenIssuer interface {
	Issue(id int64, email string) (string, error)
}

// TokenVerifier verifies a token and returns the identity it encodes.
// Signature mismatch and expiry both fail with ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// AdminRepository defines the interface for admin storage.
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByEmail(ctx context.Context, email string) (*Admin, error)
}

// BroadcastResult summarizes a newsletter broadcast to all subscribers.
// swagger:model BroadcastResult
type BroadcastResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// AdminService defines the business logic for admin accounts and the
// newsletter broadcast.
type AdminService interface {
	Register(ctx context.Context, username, email, password, role string) (*Admin, error)
	Login(ctx context.Context, email, password string) (token string, admin *Admin, err error)
	SendNewsletter(ctx context.Context) (*BroadcastResult, error)
}
