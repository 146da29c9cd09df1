package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mehrabhossain1/midwife-backend/internal/db"
	"github.com/mehrabhossain1/midwife-backend/internal/models"
)

// ErrReportNotFound is returned when no report matches the given id.
var ErrReportNotFound = errors.New("report not found")

// ReportRepository owns the reports collection.
type ReportRepository struct {
	col *mongo.Collection
}

// NewReportRepository creates the repository instance.
func NewReportRepository(database *mongo.Database) *ReportRepository {
	return &ReportRepository{col: database.Collection(db.ReportsCollection)}
}

// Create inserts a new report.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	res, err := r.col.InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("report repository: create %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return nil
}

// List returns all reports newest first.
func (r *ReportRepository) List(ctx context.Context) ([]models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("report repository: list %w", err)
	}
	defer cur.Close(ctx)

	reports := []models.Report{}
	if err := cur.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("report repository: list decode %w", err)
	}
	return reports, nil
}

// Resolve marks the report solved and writes the resolution fields in one
// atomic update, returning the updated record. A partial resolution state
// is never persisted.
func (r *ReportRepository) Resolve(ctx context.Context, id primitive.ObjectID, solution, solverName string, solvedAt time.Time) (*models.Report, error) {
	update := bson.M{"$set": bson.M{
		"isSolved":   true,
		"solution":   solution,
		"solverName": solverName,
		"solvedAt":   solvedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var report models.Report
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&report); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("report repository: resolve %w", err)
	}
	return &report, nil
}
