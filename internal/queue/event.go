// Package queue defines the lifecycle events exchanged over RabbitMQ and the
// publisher and consumer that move them.
package queue

import (
    "fmt"
    "time"
)

// LifecycleQueue is the durable queue every user event is routed to.
const LifecycleQueue = "user.lifecycle"

// EventType names a user lifecycle transition.
type EventType string

const (
    UserCreated     EventType = "user.created"
    UserUpdated     EventType = "user.updated"
    UserDeactivated EventType = "user.deactivated" // active -> inactive
    UserDeleted     EventType = "user.deleted"     // inactive -> gone
    UserReactivated EventType = "user.reactivated"
)

// UserEvent is published after a successful transition.  It carries only
// identifiers and state; personal data and passwords stay in the database.
type UserEvent struct {
    Type       EventType `json:"type"`
    UserID     string    `json:"user_id"`
    Email      string    `json:"email,omitempty"`
    IsActive   bool      `json:"is_active"`
    OccurredAt string    `json:"occurred_at"` // RFC 3339, UTC
}

// NewUserEvent stamps an event with the current UTC time.
func NewUserEvent(typ EventType, userID, email string, active bool) UserEvent {
    return UserEvent{
        Type:       typ,
        UserID:     userID,
        Email:      email,
        IsActive:   active,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    }
}

// Line renders the event as one line of the audit log.
func (e UserEvent) Line() string {
    email := e.Email
    if email == "" {
        email = "-"
    }
    return fmt.Sprintf("[%s] %s | user_id=%s | email=%s | active=%t\n",
        e.OccurredAt, e.Type, e.UserID, email, e.IsActive)
}
