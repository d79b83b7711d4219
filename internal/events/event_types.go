package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventUserActivated          EventType = "user_activated"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventProfileLiked           EventType = "profile_liked"
	EventProfileUpdated         EventType = "profile_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LinkPayload carries a signed link that must be mailed to the user.
type LinkPayload struct {
	Username string        `json:"username"`
	Email    string        `json:"email"`
	URL      string        `json:"url"`
	ValidFor time.Duration `json:"valid_for"`
}

// ProfileLikedPayload payload.
type ProfileLikedPayload struct {
	Likes int `json:"likes"`
}
