package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestMTSource(t *testing.T) {
	t.Run("same seed gives the same stream", func(t *testing.T) {
		a, b := rand.New(newMTSource(7)), rand.New(newMTSource(7))
		for i := 0; i < 100; i++ {
			require.Equal(t, a.Uint64(), b.Uint64())
		}
	})

	t.Run("reseeding restarts the stream", func(t *testing.T) {
		s := newMTSource(7)
		first := s.Uint64()
		s.Uint64()
		s.Seed(7)
		require.Equal(t, first, s.Uint64())
	})

	t.Run("workers get distinct seeds", func(t *testing.T) {
		p := newTestPlayer(WithThreads(2))
		require.NotEqual(t, p.workers[0].rng.Uint64(), p.workers[1].rng.Uint64())
	})
}
