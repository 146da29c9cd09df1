package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mehrabhossain1/midwife-backend/internal/apperror"
	"github.com/mehrabhossain1/midwife-backend/internal/models"
	"github.com/mehrabhossain1/midwife-backend/internal/repository"
	"github.com/mehrabhossain1/midwife-backend/internal/validation"
)

// ReportStorage describes what ReportService needs from the storage layer.
type ReportStorage interface {
	Create(ctx context.Context, report *models.Report) error
	List(ctx context.Context) ([]models.Report, error)
	Resolve(ctx context.Context, id primitive.ObjectID, solution, solverName string, solvedAt time.Time) (*models.Report, error)
}

// ReportService holds the report lifecycle rules.
type ReportService struct {
	repo ReportStorage
}

// SubmitInput carries a report candidate.
type SubmitInput struct {
	Name         string
	MobileNumber string
	Address      string
	Location     models.GeoLocation
	Cause        string
	OtherCause   *string
	CreatedAt    *time.Time
}

// ResolveInput carries the resolution of a report. All three fields are
// required; a resolve never applies partially.
type ResolveInput struct {
	IsSolved   bool
	Solution   string
	SolverName string
}

// ListResult is the report listing: the full set newest first, the subset
// created within the last 24 hours, and the total count. The subset is
// filtered from the fetched set, so it is a literal subset of the same
// snapshot.
type ListResult struct {
	Count       int             `json:"count"`
	Reports     []models.Report `json:"reports"`
	Last24Hours []models.Report `json:"last24Hours"`
}

// NewReportService creates the report service.
func NewReportService(repo ReportStorage) *ReportService {
	return &ReportService{repo: repo}
}

// Submit validates and stores a new open report. CreatedAt defaults to the
// submission instant when the client does not supply one.
func (s *ReportService) Submit(ctx context.Context, in SubmitInput) (*models.Report, error) {
	if err := validation.ValidateNonEmpty("name", in.Name); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateMobileNumber(in.MobileNumber); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNonEmpty("address", in.Address); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNonEmpty("cause", in.Cause); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	createdAt := time.Now().UTC()
	if in.CreatedAt != nil {
		createdAt = *in.CreatedAt
	}

	report := &models.Report{
		Name:         strings.TrimSpace(in.Name),
		MobileNumber: in.MobileNumber,
		Address:      strings.TrimSpace(in.Address),
		Location:     in.Location,
		Cause:        in.Cause,
		OtherCause:   in.OtherCause,
		IsSolved:     false,
		CreatedAt:    createdAt,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "storage unavailable")
	}

	return report, nil
}

// List returns all reports with the precomputed 24-hour subset and count.
func (s *ReportService) List(ctx context.Context) (*ListResult, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "storage unavailable")
	}

	cutoff := time.Now().Add(-RecentLongWindow)
	last24 := []models.Report{}
	for _, r := range reports {
		if !r.CreatedAt.Before(cutoff) {
			last24 = append(last24, r)
		}
	}

	return &ListResult{
		Count:       len(reports),
		Reports:     reports,
		Last24Hours: last24,
	}, nil
}

// Resolve applies the open→solved transition and returns the updated
// record. Calling it on an already solved report overwrites the resolution
// fields; the update is still a single atomic write.
func (s *ReportService) Resolve(ctx context.Context, reportID string, in ResolveInput) (*models.Report, error) {
	if !in.IsSolved {
		return nil, apperror.New(apperror.ErrCodeValidation, "isSolved is required")
	}
	if err := validation.ValidateNonEmpty("solution", in.Solution); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNonEmpty("solverName", in.SolverName); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	id, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "invalid report id")
	}

	report, err := s.repo.Resolve(ctx, id, strings.TrimSpace(in.Solution), strings.TrimSpace(in.SolverName), time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, apperror.ErrReportNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "storage unavailable")
	}

	return report, nil
}
