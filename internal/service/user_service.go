// internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"moneytrack/internal/domain"
	"moneytrack/internal/repository"
	"moneytrack/internal/util"
	"moneytrack/pkg/db"
)

const minPasswordLength = 8

// UserService handles registration and authentication.
type UserService interface {
	// Register creates a user and seeds their default categories in one
	// database transaction.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// userService implements the UserService interface.
type userService struct {
	dbBeginner   db.DBTxBeginner
	dbExecutor   repository.DBExecutor
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
	jwtSecret    string
	jwtTTL       time.Duration
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	jwtSecret string,
	jwtTTL time.Duration,
) UserService {
	return &userService{
		dbBeginner:   dbBeginner,
		dbExecutor:   dbExecutor,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		beginTx:      beginTx,
		commitTx:     commitTx,
		rollbackTx:   rollbackTx,
		jwtSecret:    jwtSecret,
		jwtTTL:       jwtTTL,
	}
}

// Register creates a new user with a bcrypt password hash and seeds the
// default category set. User row and categories commit together.
func (s *userService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || len(password) < minPasswordLength {
		return nil, util.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: failed to hash password: %w", err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("register: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("register: transaction controller does not implement DBExecutor")
	}

	user := domain.NewUser(username, email, string(hash))
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := s.categoryRepo.CreateCategories(ctx, txExecutor, domain.DefaultCategories(user.ID)); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("register: failed to commit transaction: %w", err)
	}
	return user, nil
}

// Login verifies the username and password and returns a session token.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return "", nil, util.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, util.ErrUnauthorized
	}

	token, err := util.GenerateToken(s.jwtSecret, user.ID, s.jwtTTL)
	if err != nil {
		return "", nil, fmt.Errorf("login: failed to sign token: %w", err)
	}
	return token, user, nil
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.GetUserByID(ctx, s.dbExecutor, id)
}
