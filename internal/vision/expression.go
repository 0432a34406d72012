package vision

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Indicator strings emitted by the expression heuristics.
const (
	IndicatorTiredEyes   = "Olhos com aparência cansada"
	IndicatorFlatMouth   = "Expressão facial neutra/triste"
	IndicatorMissingEyes = "Dificuldade em detectar ambos os olhos (possível cansaço ou expressão fechada)"
	IndicatorDimFace     = `Expressão com baixa luminosidade (pode indicar rosto "apagado")`
)

const (
	tiredEyeOpenness = 8.0
	flatMouthRatio   = 0.08
	dimBrightness    = 80.0
)

// Face-mesh landmark indices used by MeshExpression.
const (
	leftEyeTop     = 159
	leftEyeBottom  = 145
	rightEyeTop    = 386
	rightEyeBottom = 374
	mouthLeft      = 61
	mouthRight     = 291
	mouthTop       = 13
	mouthBottom    = 14

	// MinMeshLandmarks is the smallest mesh that carries every index above.
	MinMeshLandmarks = rightEyeTop + 1
)

// Landmark is a face-mesh point in normalized image coordinates.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Mesh is the ordered landmark list for one face.
type Mesh []Landmark

// Expression is the per-face result of the depression heuristics.
type Expression struct {
	EyeOpenness  float64
	MouthRatio   float64
	EyesDetected int
	Brightness   float64
	Score        int
	Indicators   []string
}

// MeshExpression scores eye openness and mouth shape from a face mesh on a
// w x h frame.
func MeshExpression(mesh Mesh, w, h int) (Expression, error) {
	if len(mesh) < MinMeshLandmarks {
		return Expression{}, fmt.Errorf("mesh has %d landmarks, need %d", len(mesh), MinMeshLandmarks)
	}
	fw, fh := float64(w), float64(h)

	left := math.Abs(mesh[leftEyeTop].Y-mesh[leftEyeBottom].Y) * fh
	right := math.Abs(mesh[rightEyeTop].Y-mesh[rightEyeBottom].Y) * fh
	openness := (left + right) / 2

	mouthWidth := math.Abs(mesh[mouthLeft].X-mesh[mouthRight].X) * fw
	mouthHeight := math.Abs(mesh[mouthTop].Y-mesh[mouthBottom].Y) * fh
	ratio := 0.0
	if mouthWidth > 0 {
		ratio = mouthHeight / mouthWidth
	}

	expr := Expression{EyeOpenness: openness, MouthRatio: ratio}
	if openness < tiredEyeOpenness {
		expr.Indicators = append(expr.Indicators, IndicatorTiredEyes)
		expr.Score += 2
	}
	if ratio < flatMouthRatio {
		expr.Indicators = append(expr.Indicators, IndicatorFlatMouth)
		expr.Score += 2
	}
	return expr, nil
}

// CascadeExpression scores a cascade-detected face from its eye count and
// mean grayscale brightness.
func CascadeExpression(eyes int, brightness float64) Expression {
	expr := Expression{EyesDetected: eyes, Brightness: brightness}
	if eyes < 2 {
		expr.Indicators = append(expr.Indicators, IndicatorMissingEyes)
		expr.Score++
	}
	if brightness < dimBrightness {
		expr.Indicators = append(expr.Indicators, IndicatorDimFace)
		expr.Score++
	}
	return expr
}

// MeshBounds returns the pixel box spanned by the mesh on a w x h frame.
func MeshBounds(mesh Mesh, w, h int) image.Rectangle {
	if len(mesh) == 0 {
		return image.Rectangle{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, lm := range mesh {
		x, y := lm.X*float64(w), lm.Y*float64(h)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return image.Rect(int(minX), int(minY), int(maxX), int(maxY))
}

// MeanBrightness averages the luma of img inside rect.
func MeanBrightness(img image.Image, rect image.Rectangle) float64 {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return 0
	}
	gray := imaging.Grayscale(imaging.Crop(img, rect))
	b := gray.Bounds()
	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := gray.Pix[(y-b.Min.Y)*gray.Stride:]
		for x := 0; x < b.Dx(); x++ {
			sum += float64(row[x*4])
		}
	}
	return sum / float64(b.Dx()*b.Dy())
}
