package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a document from the "notifications" collection, created
// by an external alerting process. The application only flips WasOpened.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Message   string             `bson:"message" json:"message"`
	Crypto    string             `bson:"crypto" json:"crypto"`
	Date      time.Time          `bson:"date" json:"date"`
	WasOpened bool               `bson:"wasOpened" json:"was_opened"`
}
