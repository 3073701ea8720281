// Package queue defines message payloads exchanged over the message broker.
package queue

// PasswordResetEvent is published when a user requests a password reset.
// It contains everything the mail worker needs to compose the message
// without querying the primary database.
type PasswordResetEvent struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	ResetURL    string `json:"reset_url"`
	ExpiresAt   string `json:"expires_at"`
	RequestedAt string `json:"requested_at"`
}
