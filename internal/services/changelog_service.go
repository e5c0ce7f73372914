// Package services provides internal service implementations for the changelog worker.
package services

import (
	"context"
	"time"

	changelogevents "github.com/ortelius/pdvd-changelog/events/modules/changelog"
	"github.com/ortelius/pdvd-changelog/internal/changelog"
	"go.uber.org/zap"
)

// ChangelogServiceWrapper implements changelogevents.ChangelogService on top
// of the changelog engine, bounding every computation by Timeout.
type ChangelogServiceWrapper struct {
	Service *changelog.Service
	Timeout time.Duration
	Logger  *zap.Logger
}

// Ensure compile-time interface check
var _ changelogevents.ChangelogService = (*ChangelogServiceWrapper)(nil)

func (w *ChangelogServiceWrapper) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, w.Timeout)
}

func (w *ChangelogServiceWrapper) done(what string, start time.Time, err error) {
	if w.Logger == nil {
		return
	}
	w.Logger.Info("Worker: changelog computed",
		zap.String("operation", what),
		zap.Duration("took", time.Since(start)),
		zap.Bool("success", err == nil))
}

// ComponentChangelog compares two releases.
func (w *ChangelogServiceWrapper) ComponentChangelog(ctx context.Context, req changelog.ReleasePairRequest) (changelog.ComponentChangelog, error) {
	ctx, cancel := w.bounded(ctx)
	defer cancel()
	start := time.Now()
	result, err := w.Service.ComponentChangelog(ctx, req)
	w.done("releases", start, err)
	return result, err
}

// ComponentChangelogByDate reports the changes of a component within a date range.
func (w *ChangelogServiceWrapper) ComponentChangelogByDate(ctx context.Context, req changelog.ComponentDateRequest) (changelog.ComponentChangelog, error) {
	ctx, cancel := w.bounded(ctx)
	defer cancel()
	start := time.Now()
	result, err := w.Service.ComponentChangelogByDate(ctx, req)
	w.done("component", start, err)
	return result, err
}

// OrganizationChangelogByDate reports the changes of an organization within a date range.
func (w *ChangelogServiceWrapper) OrganizationChangelogByDate(ctx context.Context, req changelog.OrganizationDateRequest) (changelog.OrganizationChangelog, error) {
	ctx, cancel := w.bounded(ctx)
	defer cancel()
	start := time.Now()
	result, err := w.Service.OrganizationChangelogByDate(ctx, req)
	w.done("organization", start, err)
	return result, err
}
