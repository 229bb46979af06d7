package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJoinRateLimiterBlocksAfterLimit(t *testing.T) {
	rl := NewJoinRateLimiter(3, time.Minute)

	require.True(t, rl.Allow("A"))
	require.True(t, rl.Allow("A"))
	require.True(t, rl.Allow("A"))
	require.False(t, rl.Allow("A"))

	// Other connections are counted independently.
	require.True(t, rl.Allow("B"))
}

func TestJoinRateLimiterWindowExpires(t *testing.T) {
	rl := NewJoinRateLimiter(1, 10*time.Millisecond)

	require.True(t, rl.Allow("A"))
	require.False(t, rl.Allow("A"))
	time.Sleep(20 * time.Millisecond)
	require.True(t, rl.Allow("A"))
}

func TestJoinRateLimiterForget(t *testing.T) {
	rl := NewJoinRateLimiter(1, time.Minute)

	require.True(t, rl.Allow("A"))
	require.False(t, rl.Allow("A"))
	rl.Forget("A")
	require.True(t, rl.Allow("A"))
}
