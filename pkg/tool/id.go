package tool

import "github.com/google/uuid"

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// GenerateTraceID returns a random id for requests arriving without X-Request-ID.
func GenerateTraceID() string {
	return uuid.New().String()
}
