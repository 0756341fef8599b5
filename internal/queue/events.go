package queue

import "go.mongodb.org/mongo-driver/bson/primitive"

// Routing keys on the topic exchange.
const (
	KeyEmailRequested = "email.requested"
	KeyUserLoggedIn   = "user.loggedin"
)

// EmailRequested asks the notifier to deliver one rendered email.
type EmailRequested struct {
	To         []string `json:"to"`
	Subject    string   `json:"subject"`
	HTML       string   `json:"html"`
	Collection string   `json:"collection"`
}

type UserLoggedIn struct {
	UserID     primitive.ObjectID `json:"user_id"`
	Email      string             `json:"email"`
	Collection string             `json:"collection"`
}
