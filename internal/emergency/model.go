package emergency

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

// Request lifecycle: pending → accepted → completed. There is no
// cancellation or reassignment; completed is terminal.
const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusCompleted:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted
}

type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Request is a patient's call for first-aid assistance. UserName is a
// snapshot taken at creation so listings never need a join; responder
// fields are set exactly once, when a responder accepts.
type Request struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"user_id" json:"user_id"`
	UserName      string             `bson:"user_name" json:"user_name"`
	EmergencyType string             `bson:"emergency_type" json:"emergency_type"`
	Message       string             `bson:"message" json:"message"`
	Location      Location           `bson:"location" json:"location"`
	Status        Status             `bson:"status" json:"status"`
	ResponderID   string             `bson:"responder_id,omitempty" json:"responder_id,omitempty"`
	ResponderName string             `bson:"responder_name,omitempty" json:"responder_name,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
	CompletedAt   *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}
