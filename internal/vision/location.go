package vision

// Face location buckets, relative to the analyzed skin region.
const (
	LocationLeft   = "esquerda"
	LocationCenter = "centro"
	LocationRight  = "direita"
	LocationUpper  = "testa/superior"
	LocationMiddle = "meio"
	LocationLower  = "inferior/queixo"
)

// FaceLocationLabel buckets a point given as fractions of the region width
// and height into one of nine "<horizontal> - <vertical>" labels.
func FaceLocationLabel(relX, relY float64) string {
	var horizontal string
	switch {
	case relX < 0.35:
		horizontal = LocationLeft
	case relX > 0.65:
		horizontal = LocationRight
	default:
		horizontal = LocationCenter
	}

	var vertical string
	switch {
	case relY < 0.33:
		vertical = LocationUpper
	case relY < 0.66:
		vertical = LocationMiddle
	default:
		vertical = LocationLower
	}
	return horizontal + " - " + vertical
}

// LocationLabels lists every label FaceLocationLabel can produce.
func LocationLabels() []string {
	labels := make([]string, 0, 9)
	for _, h := range []string{LocationLeft, LocationCenter, LocationRight} {
		for _, v := range []string{LocationUpper, LocationMiddle, LocationLower} {
			labels = append(labels, h+" - "+v)
		}
	}
	return labels
}
