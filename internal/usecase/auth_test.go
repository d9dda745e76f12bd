package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
	pkgAuth "github.com/washmart/washmart/internal/pkg/auth"
)

type stubUserRepository struct {
	createFn     func(context.Context, string, string, *int64) (*model.User, error)
	getByLoginFn func(context.Context, string) (*model.User, error)
	getByIDFn    func(context.Context, int64) (*model.User, error)
}

func (s stubUserRepository) Create(ctx context.Context, login, hash string, storeID *int64) (*model.User, error) {
	if s.createFn != nil {
		return s.createFn(ctx, login, hash, storeID)
	}
	return &model.User{ID: 1, Login: login, PasswordHash: hash, StoreID: storeID}, nil
}

func (s stubUserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.getByLoginFn != nil {
		return s.getByLoginFn(ctx, login)
	}
	return nil, domainErrors.ErrNotFound
}

func (s stubUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }
func (plainHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func testStrategy() pkgAuth.Strategy {
	return pkgAuth.NewHMACStrategy("test-secret", pkgAuth.Options{})
}

func TestAuthRegisterIssuesToken(t *testing.T) {
	uc := NewAuthUseCase(stubUserRepository{}, plainHasher{}, testStrategy())

	usr, token, err := uc.Register(context.Background(), "shopper", "pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usr.Login != "shopper" {
		t.Fatalf("unexpected login %q", usr.Login)
	}
	if usr.StoreID != nil {
		t.Fatal("registered shoppers must not carry a store binding")
	}

	userID, err := uc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if userID != usr.ID {
		t.Fatalf("token user mismatch: %d vs %d", userID, usr.ID)
	}
}

func TestAuthRegisterRejectsEmptyCredentials(t *testing.T) {
	uc := NewAuthUseCase(stubUserRepository{}, plainHasher{}, testStrategy())

	if _, _, err := uc.Register(context.Background(), "  ", "pass"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "shopper", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthRegisterDuplicateLogin(t *testing.T) {
	uc := NewAuthUseCase(stubUserRepository{createFn: func(context.Context, string, string, *int64) (*model.User, error) {
		return nil, domainErrors.ErrAlreadyExists
	}}, plainHasher{}, testStrategy())

	if _, _, err := uc.Register(context.Background(), "shopper", "pass"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestAuthAuthenticate(t *testing.T) {
	repo := stubUserRepository{getByLoginFn: func(ctx context.Context, login string) (*model.User, error) {
		return &model.User{ID: 9, Login: login, PasswordHash: "hash:pass"}, nil
	}}
	uc := NewAuthUseCase(repo, plainHasher{}, testStrategy())

	usr, token, err := uc.Authenticate(context.Background(), "shopper", "pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usr.ID != 9 || token == "" {
		t.Fatalf("unexpected result user=%d token=%q", usr.ID, token)
	}

	if _, _, err := uc.Authenticate(context.Background(), "shopper", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for wrong password, got %v", err)
	}
}

func TestAuthAuthenticateUnknownLogin(t *testing.T) {
	uc := NewAuthUseCase(stubUserRepository{}, plainHasher{}, testStrategy())

	if _, _, err := uc.Authenticate(context.Background(), "ghost", "pass"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown login, got %v", err)
	}
}

func TestAuthParseTokenEmpty(t *testing.T) {
	uc := NewAuthUseCase(stubUserRepository{}, plainHasher{}, testStrategy())

	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
