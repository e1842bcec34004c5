package utils

import (
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key and response header carrying the request ID
const RequestIDKey = "X-Request-ID"

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// RequestID returns the caller supplied request ID when it is a valid UUID,
// otherwise a fresh one
func RequestID(header string) string {
	if _, err := uuid.Parse(header); err == nil {
		return header
	}
	return GenerateID()
}
