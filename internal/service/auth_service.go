package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mehrabhossain1/midwife-backend/internal/apperror"
	"github.com/mehrabhossain1/midwife-backend/internal/logger"
	"github.com/mehrabhossain1/midwife-backend/internal/models"
	"github.com/mehrabhossain1/midwife-backend/internal/repository"
	"github.com/mehrabhossain1/midwife-backend/internal/validation"
)

// AuthRepository describes what AuthService needs from the storage layer.
type AuthRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService encapsulates registration and authentication rules.
type AuthService struct {
	repo       AuthRepository
	tokens     *TokenManager
	bcryptCost int
}

// RegisterInput carries the registration candidate.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Location        models.GeoLocation
	Institution     string
	Designation     *string
	MobileNumber    string
}

// LoginResult is the outcome of a successful authentication.
type LoginResult struct {
	Token  string
	Claims Claims
}

// NewAuthService creates the authentication service.
func NewAuthService(repo AuthRepository, tokens *TokenManager, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new unverified, unblocked account with role "user".
// Checks run in a fixed order: field validity, password confirmation,
// email uniqueness. The plaintext password is hashed and discarded.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateNonEmpty("name", in.Name); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNonEmpty("institution", in.Institution); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateMobileNumber(in.MobileNumber); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	if in.Password != in.ConfirmPassword {
		return nil, apperror.New(apperror.ErrCodeValidation, "passwords do not match")
	}

	// Friendlier message for the common case; the unique index remains the
	// authoritative guard under concurrent registrations.
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.ErrUserExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "storage unavailable")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "failed to hash password")
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: string(passHash),
		Location:     in.Location,
		Institution:  strings.TrimSpace(in.Institution),
		Designation:  in.Designation,
		MobileNumber: in.MobileNumber,
		Role:         models.RoleUser,
		IsVerified:   false,
		IsBlocked:    false,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperror.ErrUserExists
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "storage unavailable")
	}

	return user, nil
}

// Authenticate verifies the credentials and returns the signed claim set.
// Unknown email and wrong password produce the same error. The blocked
// check runs only after the credentials are confirmed.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "storage unavailable")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if user.IsBlocked {
		if logger.Log != nil {
			logger.Log.WithField("email", user.Email).Warn("auth service: login attempt on blocked account")
		}
		return nil, apperror.ErrAccountBlocked
	}

	claims := Claims{
		Email:      user.Email,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		IsBlocked:  user.IsBlocked,
	}

	token, err := s.tokens.Generate(claims)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "failed to issue token")
	}

	return &LoginResult{Token: token, Claims: claims}, nil
}
