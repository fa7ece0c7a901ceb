package model

import (
	"time"

	"github.com/gofrs/uuid"
)

// Invocation is the repository layer model for an admitted command.
type Invocation struct {
	ID         uuid.UUID
	Kind       int
	TraceID    string
	WorkingDir string
	StartTime  time.Time
}
