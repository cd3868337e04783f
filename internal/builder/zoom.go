package builder

// Preview zoom bounds, in percent
const (
	ZoomMin     = 50
	ZoomMax     = 150
	ZoomStep    = 10
	ZoomDefault = 100
)

// zoomBy moves the zoom level by delta percent, clamped to [ZoomMin, ZoomMax].
func zoomBy(current, delta int) int {
	next := current + delta
	if next < ZoomMin {
		return ZoomMin
	}
	if next > ZoomMax {
		return ZoomMax
	}
	return next
}
