package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFloodLimiter_BlocksOverTheWindowLimit(t *testing.T) {
	req := require.New(t)
	rl := NewFloodLimiter(3, time.Minute)

	req.True(rl.Allow("c1"))
	req.True(rl.Allow("c1"))
	req.True(rl.Allow("c1"))
	req.False(rl.Allow("c1"))

	// Other connections have their own window
	req.True(rl.Allow("c2"))
}

func TestFloodLimiter_WindowSlides(t *testing.T) {
	req := require.New(t)
	rl := NewFloodLimiter(2, 20*time.Millisecond)

	req.True(rl.Allow("c1"))
	req.True(rl.Allow("c1"))
	req.False(rl.Allow("c1"))

	time.Sleep(30 * time.Millisecond)
	req.True(rl.Allow("c1"))
}

func TestFloodLimiter_Forget(t *testing.T) {
	req := require.New(t)
	rl := NewFloodLimiter(1, time.Minute)

	req.True(rl.Allow("c1"))
	req.False(rl.Allow("c1"))

	rl.Forget("c1")
	req.True(rl.Allow("c1"))
}
