package stage

import (
	"context"
	"time"

	"triagem/internal/speech"
	"triagem/internal/videoanalysis"
)

// Handler describes the contract the runner needs from each analysis stage.
type Handler interface {
	Name() string
	Prepare(context.Context, *Run) error
	Execute(context.Context, *Run) error
	HealthCheck(context.Context) Health
}

// Run carries one analysis through the stages. Each stage fills in its own
// result and leaves the other untouched.
type Run struct {
	ID         string
	Video      string
	Transcript string
	StartedAt  time.Time

	Visual *videoanalysis.Result
	Speech *speech.Result
}
