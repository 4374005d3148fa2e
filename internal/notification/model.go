package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeviceToken maps an FCM registration token to the user who registered
// it. UserRole is snapshotted so "notify all responders" never needs a
// join against the user collection. Tokens expire via a TTL index;
// re-registering refreshes CreatedAt and with it the expiry.
type DeviceToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token     string             `bson:"token" json:"token"`
	UserID    string             `bson:"user_id" json:"user_id"`
	UserRole  string             `bson:"user_role" json:"user_role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type RegisterTokenRequest struct {
	Token string `json:"token"`
}
