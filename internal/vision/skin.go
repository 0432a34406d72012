package vision

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Finding types.
const (
	FindingBruise  = "hematoma_possivel"
	FindingRedMark = "marca_vermelha"
)

// BruiseRiskWeight is added to the visual risk score for each bruise.
const BruiseRiskWeight = 3

// morphRadius gives bild a 5x5 structuring element.
const morphRadius = 2

// Finding is one skin blob detected around a face.
type Finding struct {
	Type     string
	Area     int
	Location string
	// Box is relative to the analyzed region.
	Box image.Rectangle
}

// hsvRange is an inclusive bound in OpenCV 8-bit HSV units (H 0-180, S/V 0-255).
type hsvRange struct {
	lo, hi [3]int
}

func (r hsvRange) contains(h, s, v int) bool {
	return h >= r.lo[0] && h <= r.hi[0] &&
		s >= r.lo[1] && s <= r.hi[1] &&
		v >= r.lo[2] && v <= r.hi[2]
}

var (
	bruiseRanges = []hsvRange{
		{lo: [3]int{120, 30, 30}, hi: [3]int{160, 255, 200}}, // purple
		{lo: [3]int{20, 40, 40}, hi: [3]int{40, 255, 200}},   // yellow
		{lo: [3]int{0, 0, 0}, hi: [3]int{180, 255, 80}},      // dark
	}
	redRanges = []hsvRange{
		{lo: [3]int{0, 50, 50}, hi: [3]int{10, 255, 255}},
		{lo: [3]int{170, 50, 50}, hi: [3]int{180, 255, 255}},
	}
)

type areaBounds struct{ min, max int }

var (
	bruiseArea = areaBounds{min: 100, max: 5000}
	redArea    = areaBounds{min: 80, max: 3000}
)

// SkinRegion grows face by int(face height * margin) on every side and
// clamps the result to bounds.
func SkinRegion(face image.Rectangle, bounds image.Rectangle, margin float64) image.Rectangle {
	m := int(float64(face.Dy()) * margin)
	grown := image.Rect(face.Min.X-m, face.Min.Y-m, face.Max.X+m, face.Max.Y+m)
	return grown.Intersect(bounds)
}

// DetectSkinFindings looks for bruise-colored and red blobs in the skin region
// around face. Bruise masks are opened then closed; red masks are opened only.
func DetectSkinFindings(img image.Image, face image.Rectangle, margin float64) (bruises, marks []Finding) {
	region := SkinRegion(face, img.Bounds(), margin)
	if region.Empty() {
		return nil, nil
	}
	crop := imaging.Crop(img, region)
	hsv := toOpenCVHSV(crop)

	bruiseMask := closeMask(openMask(buildMask(hsv, bruiseRanges)))
	redMask := openMask(buildMask(hsv, redRanges))

	bruises = findings(bruiseMask, bruiseArea, FindingBruise)
	marks = findings(redMask, redArea, FindingRedMark)
	return bruises, marks
}

type hsvImage struct {
	w, h int
	pix  [][3]int
}

// toOpenCVHSV converts to OpenCV's 8-bit HSV scale: H is degrees/2, S and V
// are scaled to 0-255.
func toOpenCVHSV(img *image.NRGBA) hsvImage {
	b := img.Bounds()
	out := hsvImage{w: b.Dx(), h: b.Dy(), pix: make([][3]int, b.Dx()*b.Dy())}
	for y := 0; y < out.h; y++ {
		for x := 0; x < out.w; x++ {
			c := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
			h, s, v := cf.Hsv()
			out.pix[y*out.w+x] = [3]int{
				int(math.Round(h / 2)),
				int(math.Round(s * 255)),
				int(math.Round(v * 255)),
			}
		}
	}
	return out
}

func buildMask(hsv hsvImage, ranges []hsvRange) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, hsv.w, hsv.h))
	for i, px := range hsv.pix {
		for _, r := range ranges {
			if r.contains(px[0], px[1], px[2]) {
				mask.Pix[i] = 255
				break
			}
		}
	}
	return mask
}

// openMask removes specks smaller than the structuring element.
func openMask(mask *image.Gray) *image.Gray {
	return binarize(effect.Dilate(effect.Erode(mask, morphRadius), morphRadius))
}

// closeMask fills gaps smaller than the structuring element.
func closeMask(mask *image.Gray) *image.Gray {
	return binarize(effect.Erode(effect.Dilate(mask, morphRadius), morphRadius))
}

func binarize(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y > 127 {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

type component struct {
	area int
	box  image.Rectangle
}

// components labels 8-connected foreground blobs with their pixel area and
// bounding box.
func components(mask *image.Gray) []component {
	w, h := mask.Bounds().Dx(), mask.Bounds().Dy()
	visited := make([]bool, w*h)
	var out []component
	stack := make([]image.Point, 0, 64)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || mask.Pix[y*mask.Stride+x] == 0 {
				continue
			}
			comp := component{box: image.Rect(x, y, x+1, y+1)}
			stack = append(stack[:0], image.Pt(x, y))
			visited[idx] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				comp.area++
				comp.box = comp.box.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						n := ny*w + nx
						if visited[n] || mask.Pix[ny*mask.Stride+nx] == 0 {
							continue
						}
						visited[n] = true
						stack = append(stack, image.Pt(nx, ny))
					}
				}
			}
			out = append(out, comp)
		}
	}
	return out
}

func findings(mask *image.Gray, bounds areaBounds, kind string) []Finding {
	w := float64(mask.Bounds().Dx())
	h := float64(mask.Bounds().Dy())
	var out []Finding
	for _, comp := range components(mask) {
		if comp.area <= bounds.min || comp.area >= bounds.max {
			continue
		}
		relX := (float64(comp.box.Min.X) + float64(comp.box.Dx())/2) / w
		relY := (float64(comp.box.Min.Y) + float64(comp.box.Dy())/2) / h
		out = append(out, Finding{
			Type:     kind,
			Area:     comp.area,
			Location: FaceLocationLabel(relX, relY),
			Box:      comp.box,
		})
	}
	return out
}
