package render

// Easing maps animation progress in [0, 1] onto reveal progress in [0, 1].
type Easing func(t float64) float64

// QuadInOut accelerates through the first half and decelerates through the
// second.
func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// Linear reveals at constant speed.
func Linear(t float64) float64 { return t }

// Instant reveals everything on the first frame.
func Instant(float64) float64 { return 1 }
