package game

import (
	"fmt"
	"math/rand"
)

// generateRoomID returns a 6-character invite code, short enough to type
// from a projected screen.
func generateRoomID() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
