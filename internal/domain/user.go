package domain

import "time"

// User is a dashboard account with optional exchange API credentials and a
// set of assigned strategies. Email is the unique key.
type User struct {
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Password           string    `json:"-"` // stored opaque, never serialized
	APIKey             string    `json:"api_key,omitempty"`
	APISecret          string    `json:"-"`
	AssignedStrategies []string  `json:"assigned_strategies"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
