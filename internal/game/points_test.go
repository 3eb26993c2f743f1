package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeToPoints(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("full points at the moment the window opens", func(t *testing.T) {
		assert.Equal(t, 1000, timeToPoints(start, 10, start))
	})

	t.Run("half decay at the end of the window", func(t *testing.T) {
		assert.Equal(t, 500, timeToPoints(start, 10, start.Add(10*time.Second)))
	})

	t.Run("monotonically decreasing in elapsed time", func(t *testing.T) {
		prev := timeToPoints(start, 10, start)
		for elapsed := 1; elapsed <= 30; elapsed++ {
			points := timeToPoints(start, 10, start.Add(time.Duration(elapsed)*time.Second))
			assert.LessOrEqual(t, points, prev, "elapsed %ds", elapsed)
			prev = points
		}
	})

	t.Run("faster answers beat slower ones", func(t *testing.T) {
		fast := timeToPoints(start, 10, start.Add(2*time.Second))
		slow := timeToPoints(start, 10, start.Add(9*time.Second))
		assert.Greater(t, fast, slow)
	})

	t.Run("never negative", func(t *testing.T) {
		assert.Equal(t, 0, timeToPoints(start, 10, start.Add(time.Hour)))
	})

	t.Run("clock skew before the window opens is treated as zero", func(t *testing.T) {
		assert.Equal(t, 1000, timeToPoints(start, 10, start.Add(-time.Second)))
	})

	t.Run("zero window yields nothing", func(t *testing.T) {
		assert.Equal(t, 0, timeToPoints(start, 0, start))
	})
}
