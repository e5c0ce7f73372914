package util

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettle(t *testing.T) {
	t.Run("should keep every outcome in submission order", func(t *testing.T) {
		g := Settle[string](2)
		g.Go(func() (string, error) {
			time.Sleep(5 * time.Millisecond)
			return "a", nil
		})
		g.Go(func() (string, error) { return "", errors.New("b failed") })
		g.Go(func() (string, error) { return "c", nil })

		outcomes := g.Wait()
		require.Len(t, outcomes, 3)
		assert.Equal(t, "a", outcomes[0].Value)
		assert.NoError(t, outcomes[0].Err)
		assert.EqualError(t, outcomes[1].Err, "b failed")
		assert.Equal(t, "c", outcomes[2].Value)
	})

	t.Run("should not run more than the limit at once", func(t *testing.T) {
		var running, peak int32
		g := Settle[struct{}](2)
		for i := 0; i < 8; i++ {
			g.Go(func() (struct{}, error) {
				n := atomic.AddInt32(&running, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return struct{}{}, nil
			})
		}
		assert.Len(t, g.Wait(), 8)
		assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	})

	t.Run("should not limit below one", func(t *testing.T) {
		g := Settle[int](0)
		for i := 0; i < 5; i++ {
			g.Go(func() (int, error) { return i, nil })
		}
		outcomes := g.Wait()
		require.Len(t, outcomes, 5)
		assert.Equal(t, 4, outcomes[4].Value)
	})
}
