package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CauseOther marks a report whose cause is described in OtherCause.
const CauseOther = "other"

// Report is a submitted incident record. Solution, SolverName and SolvedAt
// stay unset while IsSolved is false and are always written together.
type Report struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	MobileNumber string             `bson:"mobileNumber" json:"mobileNumber"`
	Address      string             `bson:"address" json:"address"`
	Location     GeoLocation        `bson:"location" json:"location"`
	Cause        string             `bson:"cause" json:"cause"`
	OtherCause   *string            `bson:"otherCause,omitempty" json:"otherCause,omitempty"`
	IsSolved     bool               `bson:"isSolved" json:"isSolved"`
	Solution     *string            `bson:"solution,omitempty" json:"solution,omitempty"`
	SolverName   *string            `bson:"solverName,omitempty" json:"solverName,omitempty"`
	SolvedAt     *time.Time         `bson:"solvedAt,omitempty" json:"solvedAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
