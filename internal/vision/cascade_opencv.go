//go:build opencv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// CascadeDetector wraps OpenCV Haar cascades for faces and eyes.
type CascadeDetector struct {
	face gocv.CascadeClassifier
	eyes gocv.CascadeClassifier
}

// NewCascadeDetector loads the face and eye cascade files.
func NewCascadeDetector(faceCascade, eyeCascade string) (*CascadeDetector, error) {
	face := gocv.NewCascadeClassifier()
	if !face.Load(faceCascade) {
		face.Close()
		return nil, fmt.Errorf("%w: load face cascade %s", ErrDetectorUnavailable, faceCascade)
	}
	eyes := gocv.NewCascadeClassifier()
	if !eyes.Load(eyeCascade) {
		face.Close()
		eyes.Close()
		return nil, fmt.Errorf("%w: load eye cascade %s", ErrDetectorUnavailable, eyeCascade)
	}
	return &CascadeDetector{face: face, eyes: eyes}, nil
}

// Detect converts the frame to grayscale once, finds faces and counts the
// eyes inside each face box.
func (d *CascadeDetector) Detect(img image.Image) ([]DetectedFace, error) {
	gray, err := grayMat(img)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	frame := image.Rect(0, 0, gray.Cols(), gray.Rows())
	boxes := d.face.DetectMultiScaleWithParams(gray, cascadeScale, cascadeNeighbors, 0, image.Point{}, image.Point{})
	faces := make([]DetectedFace, 0, len(boxes))
	for _, box := range boxes {
		faces = append(faces, DetectedFace{Box: box, Eyes: d.countEyes(gray, box.Intersect(frame))})
	}
	return faces, nil
}

func (d *CascadeDetector) countEyes(gray gocv.Mat, face image.Rectangle) int {
	if face.Empty() {
		return 0
	}
	roi := gray.Region(face)
	defer roi.Close()
	return len(d.eyes.DetectMultiScale(roi))
}

// Close releases both classifiers.
func (d *CascadeDetector) Close() error {
	if err := d.face.Close(); err != nil {
		return err
	}
	return d.eyes.Close()
}

func grayMat(img image.Image) (gocv.Mat, error) {
	bgr, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("convert frame: %w", err)
	}
	defer bgr.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)
	return gray, nil
}
