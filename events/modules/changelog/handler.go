// Package changelog handles Kafka event processing for changelog requests.
package changelog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	core "github.com/ortelius/pdvd-changelog/internal/changelog"
	"github.com/ortelius/pdvd-changelog/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ChangelogService defines the changelog operations the worker can run.
type ChangelogService interface {
	ComponentChangelog(ctx context.Context, req core.ReleasePairRequest) (core.ComponentChangelog, error)
	ComponentChangelogByDate(ctx context.Context, req core.ComponentDateRequest) (core.ComponentChangelog, error)
	OrganizationChangelogByDate(ctx context.Context, req core.OrganizationDateRequest) (core.OrganizationChangelog, error)
}

// ResultPublisher defines how computed changelogs leave the worker.
type ResultPublisher interface {
	PublishChangelogComputed(ctx context.Context, event ChangelogComputedEvent) error
}

// HandleChangelogRequested processes a changelog request event and publishes
// its outcome. Engine errors are published as unsuccessful results; only
// undecodable messages and publish failures are returned.
func HandleChangelogRequested(
	ctx context.Context,
	msg []byte,
	service ChangelogService,
	publisher ResultPublisher,
	logger *zap.Logger,
) error {
	var event ChangelogRequestedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return errors.Wrap(err, "failed to unmarshal ChangelogRequestedEvent")
	}
	if event.EventID == "" {
		return errors.New("invalid event: missing event_id")
	}

	logger.Info("processing changelog request",
		zap.String("event_id", event.EventID),
		zap.String("scope", string(event.Scope)),
		zap.String("org_uuid", event.OrgUUID))

	result := newComputedEvent(event.EventID)
	changelog, err := compute(ctx, event, service)
	if err == nil {
		result.Changelog, err = json.Marshal(changelog)
	}
	if err != nil {
		logger.Warn("changelog request failed", zap.String("event_id", event.EventID), zap.Error(err))
		result.ErrorCode = string(core.CodeOf(err))
		result.ErrorMessage = err.Error()
	} else {
		result.Success = true
	}

	if err := publisher.PublishChangelogComputed(ctx, result); err != nil {
		return errors.Wrapf(err, "failed to publish result for %s", event.EventID)
	}
	return nil
}

func compute(ctx context.Context, event ChangelogRequestedEvent, service ChangelogService) (interface{}, error) {
	mode := core.Mode(event.Mode)
	if mode == "" {
		mode = core.ModeNone
	}
	org, err := parseUUID("org_uuid", event.OrgUUID)
	if err != nil {
		return nil, err
	}

	switch event.Scope {
	case ScopeReleases:
		req := core.ReleasePairRequest{OrgUUID: org, Mode: mode, TimeZone: event.TimeZone}
		if req.Release1, err = parseUUID("release1", event.Release1); err != nil {
			return nil, err
		}
		if req.Release2, err = parseUUID("release2", event.Release2); err != nil {
			return nil, err
		}
		return service.ComponentChangelog(ctx, req)

	case ScopeComponent:
		req := core.ComponentDateRequest{OrgUUID: org, Mode: mode, TimeZone: event.TimeZone}
		if req.ComponentUUID, err = parseUUID("component_uuid", event.ComponentUUID); err != nil {
			return nil, err
		}
		if req.BranchUUID, err = parseOptionalUUID("branch_uuid", event.BranchUUID); err != nil {
			return nil, err
		}
		if err := parseRange(event, &req.DateFrom, &req.DateTo); err != nil {
			return nil, err
		}
		return service.ComponentChangelogByDate(ctx, req)

	case ScopeOrganization:
		req := core.OrganizationDateRequest{OrgUUID: org, Mode: mode, TimeZone: event.TimeZone}
		if req.PerspectiveUUID, err = parseOptionalUUID("perspective_uuid", event.PerspectiveUUID); err != nil {
			return nil, err
		}
		if err := parseRange(event, &req.DateFrom, &req.DateTo); err != nil {
			return nil, err
		}
		return service.OrganizationChangelogByDate(ctx, req)
	}

	return nil, invalid("scope", string(event.Scope), "unknown scope")
}

func invalid(field, value, message string) error {
	return &core.Error{Code: core.CodeInvalidArgument, Message: message, Details: map[string]string{field: value}}
}

func parseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, invalid(field, value, field+" is not a valid uuid")
	}
	return id, nil
}

func parseOptionalUUID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseUUID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseRange(event ChangelogRequestedEvent, from, to *time.Time) error {
	var err error
	if *from, err = util.ParseTimestamp(event.DateFrom); err != nil {
		return invalid("date_from", event.DateFrom, "date_from is not an ISO-8601 timestamp")
	}
	if *to, err = util.ParseTimestamp(event.DateTo); err != nil {
		return invalid("date_to", event.DateTo, "date_to is not an ISO-8601 timestamp")
	}
	return nil
}
