package game

import (
	"math"
	"time"
)

// timeToPoints converts answer latency into a score. A correct answer at the
// moment the window opens is worth 1000 points, decaying linearly to 500 at
// the end of the window and clamped at 0 for anything slower.
func timeToPoints(startedAt time.Time, windowSeconds int, now time.Time) int {
	if windowSeconds <= 0 {
		return 0
	}
	elapsed := now.Sub(startedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	points := math.Round((1 - elapsed/(float64(windowSeconds)*2)) * 1000)
	if points < 0 {
		points = 0
	}
	return int(points)
}
