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

// ErrUserNotFound is returned when no user record matches.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when an insert hits the unique email index.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository owns the users collection. All account state transitions
// go through single atomic update operations on this collection.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates the repository instance.
func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{col: database.Collection(db.UsersCollection)}
}

// Create inserts a new account. The unique index on email is the
// authoritative guard against duplicate registrations.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("user repository: create %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// GetByEmail returns the account with the given email, hash included.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by email %w", err)
	}
	return &user, nil
}

// SetVerification flips the isVerified flag in one update.
func (r *UserRepository) SetVerification(ctx context.Context, email string, isVerified bool) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{"isVerified": isVerified},
	})
	if err != nil {
		return fmt.Errorf("user repository: set verification %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetBlockedAndVerified writes both flags in a single update, so no reader
// can observe one flag changed and not the other.
func (r *UserRepository) SetBlockedAndVerified(ctx context.Context, email string, isBlocked, isVerified bool) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{"isBlocked": isBlocked, "isVerified": isVerified},
	})
	if err != nil {
		return fmt.Errorf("user repository: set blocked and verified %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the account permanently. Repeat calls after a successful
// delete report ErrUserNotFound.
func (r *UserRepository) Delete(ctx context.Context, email string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("user repository: delete %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// List returns all accounts newest first. The password hash is excluded by
// projection so it never leaves the storage layer.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"password": 0})

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("user repository: list %w", err)
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("user repository: list decode %w", err)
	}
	return users, nil
}

// CreatedSince returns accounts created at or after the given instant,
// newest first, with the password hash stripped.
func (r *UserRepository) CreatedSince(ctx context.Context, since time.Time) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"password": 0})

	cur, err := r.col.Find(ctx, bson.M{"createdAt": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, fmt.Errorf("user repository: created since %w", err)
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("user repository: created since decode %w", err)
	}
	return users, nil
}
