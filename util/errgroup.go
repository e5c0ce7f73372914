// Package util provides version, package URL and concurrency helpers shared by the changelog packages.
//
//revive:disable-next-line:var-naming
package util

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// Outcome is the value or the error one unit of a SettledGroup produced.
type Outcome[T any] struct {
	Value T
	Err   error
}

// SettledGroup runs functions returning a value on a bounded number of
// goroutines. A failing function does not hide the results of the others and
// outcomes keep submission order.
type SettledGroup[T any] struct {
	group    errgroup.Group
	mu       sync.Mutex
	outcomes []Outcome[T]
}

// Settle returns a SettledGroup that runs at most limit functions at once.
// A limit below one means no limit.
func Settle[T any](limit int) *SettledGroup[T] {
	g := &SettledGroup[T]{}
	if limit > 0 {
		g.group.SetLimit(limit)
	}
	return g
}

// Go schedules f in the next outcome slot. It blocks while the limit is reached.
func (g *SettledGroup[T]) Go(f func() (T, error)) {
	g.mu.Lock()
	slot := len(g.outcomes)
	g.outcomes = append(g.outcomes, Outcome[T]{})
	g.mu.Unlock()

	g.group.Go(func() error {
		v, err := f()
		g.mu.Lock()
		g.outcomes[slot] = Outcome[T]{Value: v, Err: err}
		g.mu.Unlock()
		return nil
	})
}

// Wait blocks until every scheduled function returned.
func (g *SettledGroup[T]) Wait() []Outcome[T] {
	_ = g.group.Wait()
	return g.outcomes
}
