package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openclass/classroom/internal/domain"
)

type countingSource struct {
	calls int
	names map[string]string
}

func (s *countingSource) GetDisplayName(ctx context.Context, userID string) (string, error) {
	s.calls++
	name, ok := s.names[userID]
	if !ok {
		return "", fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return name, nil
}

func TestCachedUserSourceMemoizes(t *testing.T) {
	inner := &countingSource{names: map[string]string{"U1": "Alice"}}
	cached := NewCachedUserSource(inner, time.Minute)

	for i := 0; i < 3; i++ {
		name, err := cached.GetDisplayName(context.Background(), "U1")
		require.NoError(t, err)
		require.Equal(t, "Alice", name)
	}
	require.Equal(t, 1, inner.calls)
}

func TestCachedUserSourceDoesNotCacheErrors(t *testing.T) {
	inner := &countingSource{names: map[string]string{}}
	cached := NewCachedUserSource(inner, time.Minute)

	_, err := cached.GetDisplayName(context.Background(), "U1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = cached.GetDisplayName(context.Background(), "U1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, 2, inner.calls)
}
