package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/repository"
	pkgAuth "github.com/polkiloo/freshharvest/internal/pkg/auth"
)

// Identity is an authenticated account and its session token.
type Identity struct {
	Session pkgAuth.Session
	Name    string
	Token   string
}

// AuthUseCase handles logins and session checks for staff and customers.
type AuthUseCase struct {
	customers repository.CustomerRepository
	staff     repository.StaffRepository
	hasher    pkgAuth.PasswordHasher
	tokens    pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(customers repository.CustomerRepository, staff repository.StaffRepository,
	hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{customers: customers, staff: staff, hasher: hasher, tokens: strategy}
}

// Login validates credentials for the given role and returns a session token.
func (u *AuthUseCase) Login(ctx context.Context, role pkgAuth.Role, username, password string) (*Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || !role.Valid() {
		return nil, domainErrors.ErrInvalidCredentials
	}

	subject, name, hash, err := u.lookup(ctx, role, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.hasher.Compare(hash, password); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	session := pkgAuth.Session{Subject: subject, Role: role}
	token, err := u.tokens.IssueToken(session)
	if err != nil {
		return nil, err
	}

	return &Identity{Session: session, Name: name, Token: token}, nil
}

func (u *AuthUseCase) lookup(ctx context.Context, role pkgAuth.Role, username string) (id, name, hash string, err error) {
	if role == pkgAuth.RoleStaff {
		s, err := u.staff.GetByUsername(ctx, username)
		if err != nil {
			return "", "", "", err
		}
		return s.ID, s.Name, s.PasswordHash, nil
	}
	c, err := u.customers.GetByUsername(ctx, username)
	if err != nil {
		return "", "", "", err
	}
	return c.ID, c.Name, c.PasswordHash, nil
}

// ParseToken extracts the session from provided token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Session, error) {
	if token == "" {
		return pkgAuth.Session{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// Authorize parses token and requires one of roles.
func (u *AuthUseCase) Authorize(token string, roles ...pkgAuth.Role) (pkgAuth.Session, error) {
	session, err := u.ParseToken(token)
	if err != nil {
		return pkgAuth.Session{}, err
	}
	for _, role := range roles {
		if session.Role == role {
			return session, nil
		}
	}
	return pkgAuth.Session{}, domainErrors.ErrForbidden
}
