package vision

import (
	"fmt"
	"image"

	"triagem/internal/services"
)

// DetectedFace is a face box and the number of eyes found inside it.
type DetectedFace struct {
	Box  image.Rectangle
	Eyes int
}

// Detector finds faces in a frame and counts the eyes inside each one.
type Detector interface {
	Detect(img image.Image) ([]DetectedFace, error)
	Close() error
}

var _ Detector = (*CascadeDetector)(nil)

// ErrDetectorUnavailable reports that no cascade backend was compiled in or
// that the cascade files could not be loaded.
var ErrDetectorUnavailable = fmt.Errorf("%w: face detector unavailable", services.ErrUnavailable)

// Haar cascade parameters.
const (
	cascadeScale     = 1.3
	cascadeNeighbors = 5
)
