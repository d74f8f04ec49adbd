// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login, issuing a signed session
// token on successful authentication.
package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"github.com/dmitrijs2005/supportcase/internal/common"
	"github.com/dmitrijs2005/supportcase/internal/dbx"
	"github.com/dmitrijs2005/supportcase/internal/server/auth"
	"github.com/dmitrijs2005/supportcase/internal/server/config"
	"github.com/dmitrijs2005/supportcase/internal/server/models"
	"github.com/dmitrijs2005/supportcase/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// emailRe accepts "local@domain.tld"; matching is intentionally loose,
// uniqueness is what actually guards the namespace.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dummyDigest is a valid bcrypt digest of a throwaway password. Login runs a
// compare against it when the email is unknown, so the unknown-email and
// wrong-password paths both cost one bcrypt check.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserService provides authentication-related operations:
// - Register: create accounts
// - Login: verify credentials and mint a session token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register validates the email and password, hashes the password, and creates
// a new account inside a transaction. A taken email surfaces as
// common.ErrorEmailTaken, malformed input as common.ErrorValidation. The
// plaintext password is never stored.
func (s *UserService) Register(ctx context.Context, email string, password []byte) (*models.User, error) {
	if !emailRe.MatchString(email) || len(password) == 0 {
		return nil, common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{ID: uuid.NewString(), Email: email, PasswordHash: hash}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.repomanager.Users(tx).Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			return nil, common.ErrorEmailTaken
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Login verifies the credentials and, on success, returns a signed session
// token. An unknown email and a wrong password are indistinguishable to the
// caller: both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email string, password []byte) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(password, dummyDigest)
			return "", common.ErrorInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// GetByID re-resolves an account from its token claim. Used by the HTTP
// auth middleware: a token for a deleted account must not authenticate.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}
