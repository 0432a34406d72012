//go:build !opencv

package vision

import (
	"fmt"
	"image"
)

// CascadeDetector is a placeholder for builds without OpenCV.
type CascadeDetector struct{}

// NewCascadeDetector always fails; rebuild with -tags opencv for Haar cascades.
func NewCascadeDetector(faceCascade, eyeCascade string) (*CascadeDetector, error) {
	return nil, fmt.Errorf("%w: built without opencv support", ErrDetectorUnavailable)
}

func (d *CascadeDetector) Detect(image.Image) ([]DetectedFace, error) {
	return nil, ErrDetectorUnavailable
}

func (d *CascadeDetector) Close() error { return nil }
