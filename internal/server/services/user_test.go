package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/supportcase/internal/common"
	"github.com/dmitrijs2005/supportcase/internal/dbx"
	"github.com/dmitrijs2005/supportcase/internal/server/auth"
	"github.com/dmitrijs2005/supportcase/internal/server/config"
	"github.com/dmitrijs2005/supportcase/internal/server/models"
	casesrepo "github.com/dmitrijs2005/supportcase/internal/server/repositories/cases"
	"github.com/dmitrijs2005/supportcase/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/supportcase/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

type fakeUsersRepo struct {
	created   []*models.User
	createErr error

	byEmail    map[string]*models.User
	byEmailErr error

	byID    map[string]*models.User
	byIDErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeCasesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Cases(db dbx.DBTX) casesrepo.Repository       { return m.c }

// --- Register ---

func TestRegister_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := newUserService(t, db, rm)

	u, err := s.Register(context.Background(), "a@x.com", []byte("pw1"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("insert must run inside a committed transaction: %v", err)
	}
	if u.ID == "" || u.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash == "pw1" || u.PasswordHash == "" {
		t.Fatalf("password must be stored hashed, got %q", u.PasswordHash)
	}
	if !auth.CheckPassword([]byte("pw1"), u.PasswordHash) {
		t.Fatalf("stored hash does not verify the original password")
	}
}

func TestRegister_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := newUserService(t, db, rm)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "pw"},
		{name: "no at sign", email: "ax.com", password: "pw"},
		{name: "no domain", email: "a@", password: "pw"},
		{name: "empty password", email: "a@x.com", password: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tc.email, []byte(tc.password))
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("want common.ErrorValidation, got %v", err)
			}
		})
	}
	if len(rm.u.created) != 0 {
		t.Fatalf("no user should have been created, got %d", len(rm.u.created))
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{u: &fakeUsersRepo{createErr: common.ErrorEmailTaken}}
	s := newUserService(t, db, rm)

	_, err := s.Register(context.Background(), "a@x.com", []byte("pw1"))
	if !errors.Is(err, common.ErrorEmailTaken) {
		t.Fatalf("want common.ErrorEmailTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("failed insert must roll the transaction back: %v", err)
	}
}

func TestRegister_RepoError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{u: &fakeUsersRepo{createErr: errors.New("db down")}}
	s := newUserService(t, db, rm)

	_, err := s.Register(context.Background(), "a@x.com", []byte("pw1"))
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("failed insert must roll the transaction back: %v", err)
	}
}

// --- Login ---

func registeredUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword([]byte(password))
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return &models.User{ID: "u-1", Email: email, PasswordHash: hash}
}

func TestLogin_Success_TokenResolvesToUser(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	u := registeredUser(t, "a@x.com", "pw1")
	rm := &fakeRepoManager{u: &fakeUsersRepo{byEmail: map[string]*models.User{"a@x.com": u}}}
	s := newUserService(t, db, rm)

	token, err := s.Login(context.Background(), "a@x.com", []byte("pw1"))
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	gotID, err := auth.GetUserIDFromToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if gotID != u.ID {
		t.Fatalf("token subject mismatch: got %q want %q", gotID, u.ID)
	}
}

func TestLogin_WrongPasswordAndUnknownEmail_Indistinguishable(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	u := registeredUser(t, "a@x.com", "pw1")
	rm := &fakeRepoManager{u: &fakeUsersRepo{byEmail: map[string]*models.User{"a@x.com": u}}}
	s := newUserService(t, db, rm)

	_, errWrongPw := s.Login(context.Background(), "a@x.com", []byte("nope"))
	_, errNoUser := s.Login(context.Background(), "ghost@x.com", []byte("pw1"))

	if !errors.Is(errWrongPw, common.ErrorInvalidCredentials) {
		t.Fatalf("wrong password: want common.ErrorInvalidCredentials, got %v", errWrongPw)
	}
	if !errors.Is(errNoUser, common.ErrorInvalidCredentials) {
		t.Fatalf("unknown email: want common.ErrorInvalidCredentials, got %v", errNoUser)
	}
	if errWrongPw.Error() != errNoUser.Error() {
		t.Fatalf("errors must be identical to the caller: %q vs %q", errWrongPw, errNoUser)
	}
}

func TestLogin_RepoError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{byEmailErr: errors.New("db down")}}
	s := newUserService(t, db, rm)

	_, err := s.Login(context.Background(), "a@x.com", []byte("pw1"))
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

// --- GetByID ---

func TestGetByID_Found(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	u := &models.User{ID: "u-1", Email: "a@x.com"}
	rm := &fakeRepoManager{u: &fakeUsersRepo{byID: map[string]*models.User{"u-1": u}}}
	s := newUserService(t, db, rm)

	got, err := s.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_Gone(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := newUserService(t, db, rm)

	_, err := s.GetByID(context.Background(), "deleted")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
