package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/internal/changelog"
	"github.com/ortelius/pdvd-changelog/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestChangelogServiceWrapper(t *testing.T) {
	t.Run("should cancel computations that exceed the timeout", func(t *testing.T) {
		component := uuid.New()
		repo := mocks.NewChangelogRepository(t)
		repo.On("GetComponent", mock.Anything, component).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(nil, context.DeadlineExceeded).Once()

		w := &ChangelogServiceWrapper{
			Service: changelog.NewService(repo, zap.NewNop()),
			Timeout: 20 * time.Millisecond,
			Logger:  zap.NewNop(),
		}
		_, err := w.ComponentChangelogByDate(context.Background(), changelog.ComponentDateRequest{
			ComponentUUID: component,
			OrgUUID:       uuid.New(),
			Mode:          changelog.ModeNone,
			DateFrom:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			DateTo:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		})
		assert.Equal(t, changelog.CodeCancelled, changelog.CodeOf(err))
	})

	t.Run("should pass engine errors through", func(t *testing.T) {
		w := &ChangelogServiceWrapper{Service: changelog.NewService(mocks.NewChangelogRepository(t), nil)}
		id := uuid.New()
		_, err := w.ComponentChangelog(context.Background(), changelog.ReleasePairRequest{
			Release1: id, Release2: id, OrgUUID: uuid.New(), Mode: changelog.ModeNone,
		})
		assert.Equal(t, changelog.CodeInvalidArgument, changelog.CodeOf(err))
	})
}
