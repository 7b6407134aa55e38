package server

import "github.com/google/uuid"

// GeneratePlayerID creates the seat token a phone keeps across reconnects.
func GeneratePlayerID() string {
	return uuid.NewString()
}
