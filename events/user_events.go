package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicUserCreated is the logical event name carried in the envelope.
const TopicUserCreated = "app/user.created"

// TaskUserCreated is the task name the event travels under on the broker.
// Producer signatures and consumer handler registrations must agree on it.
const TaskUserCreated = "user.created"

// UserEvent is the envelope for user lifecycle events. The ID is assigned
// once at publish time and keys the workflow's step memoization, so it must
// survive broker redeliveries unchanged.
type UserEvent struct {
	ID        string           `json:"id"`
	Event     string           `json:"event"`
	Version   string           `json:"version"`
	Timestamp time.Time        `json:"timestamp"`
	Data      UserCreatedEvent `json:"data"`
}

// UserCreatedEvent carries the sign-up profile consumed by the welcome
// workflow. Produced exactly once per successful sign-up.
type UserCreatedEvent struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Country           string `json:"country"`
	InvestmentGoals   string `json:"investmentGoals"`
	RiskTolerance     string `json:"riskTolerance"`
	PreferredIndustry string `json:"preferredIndustry"`
}

// NewUserCreated wraps sign-up profile data in a versioned envelope.
func NewUserCreated(data UserCreatedEvent) UserEvent {
	return UserEvent{
		ID:        uuid.NewString(),
		Event:     TopicUserCreated,
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
