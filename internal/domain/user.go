package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for profile operations.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrInvalidLogin      = errors.New("invalid email or password")
)

// Application roles. Role gates the admin-only routes; club-scoped
// permissions live in the membership junction tables.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile represents a registered user.
// swagger:model Profile
type Profile struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProfile returns a new Profile with the user role. ID is set by the
// repository on create.
func NewProfile(firstName, lastName, username, email string, createdAt time.Time) *Profile {
	return &Profile{
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		Email:     email,
		Role:      RoleUser,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// ProfilePatch holds a partial update to a profile. Username and role are
// immutable through the owner update path.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// ProfileRepository defines the interface for profile storage.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	Update(ctx context.Context, id string, patch ProfilePatch) (*Profile, error)
}

// SignUpInput carries the signup form fields.
type SignUpInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Username        string
}

// UserService defines the business logic for signup, login, and profiles.
type UserService interface {
	SignUp(ctx context.Context, in SignUpInput) (*Profile, error)
	Login(ctx context.Context, email, password string) (token string, profile *Profile, err error)
	GetByID(ctx context.Context, id string) (*Profile, error)
	UpdateProfile(ctx context.Context, actorID string, patch ProfilePatch) (*Profile, error)
}
