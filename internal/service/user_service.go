package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mehrabhossain1/midwife-backend/internal/apperror"
	"github.com/mehrabhossain1/midwife-backend/internal/models"
	"github.com/mehrabhossain1/midwife-backend/internal/repository"
)

// Recent-window sizes for the admin dashboard.
const (
	RecentShortWindow = 30 * time.Minute
	RecentLongWindow  = 24 * time.Hour
)

// UserAdminRepository describes what UserService needs from the storage layer.
type UserAdminRepository interface {
	SetVerification(ctx context.Context, email string, isVerified bool) error
	SetBlockedAndVerified(ctx context.Context, email string, isBlocked, isVerified bool) error
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]models.User, error)
	CreatedSince(ctx context.Context, since time.Time) ([]models.User, error)
}

// UserService holds the administrative account lifecycle operations.
type UserService struct {
	repo UserAdminRepository
}

// RecentWindows holds accounts created within the short and long windows,
// both measured against the same reference instant.
type RecentWindows struct {
	Last30Minutes []models.User `json:"last30Minutes"`
	Last24Hours   []models.User `json:"last24Hours"`
}

// NewUserService creates the admin user service.
func NewUserService(repo UserAdminRepository) *UserService {
	return &UserService{repo: repo}
}

// SetVerification sets the isVerified flag. Idempotent.
func (s *UserService) SetVerification(ctx context.Context, email string, isVerified bool) error {
	if err := s.repo.SetVerification(ctx, email, isVerified); err != nil {
		return mapUserStorageError(err)
	}
	return nil
}

// SetBlockedAndVerified sets both lifecycle flags in one atomic update.
func (s *UserService) SetBlockedAndVerified(ctx context.Context, email string, isBlocked, isVerified bool) error {
	if err := s.repo.SetBlockedAndVerified(ctx, email, isBlocked, isVerified); err != nil {
		return mapUserStorageError(err)
	}
	return nil
}

// Delete removes the account permanently.
func (s *UserService) Delete(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return apperror.New(apperror.ErrCodeValidation, "email is required")
	}
	if err := s.repo.Delete(ctx, email); err != nil {
		return mapUserStorageError(err)
	}
	return nil
}

// List returns all accounts newest first with the password hash stripped.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "storage unavailable")
	}
	return users, nil
}

// RecentWindows returns the 30-minute and 24-hour creation windows. Both
// are derived from one query so they share a snapshot and a single "now".
func (s *UserService) RecentWindows(ctx context.Context, now time.Time) (*RecentWindows, error) {
	last24, err := s.repo.CreatedSince(ctx, now.Add(-RecentLongWindow))
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "storage unavailable")
	}

	cutoff := now.Add(-RecentShortWindow)
	last30 := []models.User{}
	for _, u := range last24 {
		if !u.CreatedAt.Before(cutoff) {
			last30 = append(last30, u)
		}
	}

	return &RecentWindows{
		Last30Minutes: last30,
		Last24Hours:   last24,
	}, nil
}

// mapUserStorageError converts repository sentinels into the typed taxonomy.
func mapUserStorageError(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return apperror.ErrUserNotFound
	}
	return apperror.Wrap(err, apperror.ErrCodeStorage, "storage unavailable")
}
