// Package changelog computes what changed between releases of a component,
// or across an organization over a date range, and which release of which
// component and branch caused each change.
//
// The engine reads releases through a Repository and never writes.
package changelog

import (
	"context"
	"time"
	_ "time/tzdata" // time zones must resolve without a system zoneinfo

	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/model"
	"github.com/ortelius/pdvd-changelog/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultWorkers bounds the organization fan-out when no option overrides it.
const DefaultWorkers = 10

// ReleasePairRequest compares two releases of one component.
type ReleasePairRequest struct {
	Release1 uuid.UUID
	Release2 uuid.UUID
	OrgUUID  uuid.UUID
	Mode     Mode
	TimeZone string
}

// ComponentDateRequest covers the releases of a component, or of one of its
// branches, created within [DateFrom, DateTo].
type ComponentDateRequest struct {
	ComponentUUID uuid.UUID
	BranchUUID    *uuid.UUID
	OrgUUID       uuid.UUID
	Mode          Mode
	TimeZone      string
	DateFrom      time.Time
	DateTo        time.Time
}

// OrganizationDateRequest covers every component of an organization visible
// from PerspectiveUUID (all components when nil).
type OrganizationDateRequest struct {
	OrgUUID         uuid.UUID
	PerspectiveUUID *uuid.UUID
	DateFrom        time.Time
	DateTo          time.Time
	Mode            Mode
	TimeZone        string
}

// Service answers changelog requests.
type Service struct {
	repo     Repository
	logger   *zap.Logger
	workers  int
	timeZone string
}

// Option configures a Service.
type Option func(*Service)

// WithWorkers bounds how many components are computed at once.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithDefaultTimeZone sets the zone used to render dates when a request names none.
func WithDefaultTimeZone(name string) Option {
	return func(s *Service) {
		s.timeZone = name
	}
}

// NewService creates a Service reading from repo.
func NewService(repo Repository, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{repo: repo, logger: logger, workers: DefaultWorkers}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComponentChangelog compares two releases of the same component.
func (s *Service) ComponentChangelog(ctx context.Context, req ReleasePairRequest) (ComponentChangelog, error) {
	asm, err := s.newAssembler(req.Mode, req.TimeZone)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("component changelog requested",
		zap.String("release1", req.Release1.String()),
		zap.String("release2", req.Release2.String()),
		zap.String("mode", string(req.Mode)))

	scope, err := s.sequencePair(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, cancelled(ctx, err)
	}
	return asm.component(req.Mode, scope), nil
}

// ComponentChangelogByDate reports the changes of one component within a date range.
func (s *Service) ComponentChangelogByDate(ctx context.Context, req ComponentDateRequest) (ComponentChangelog, error) {
	asm, err := s.newAssembler(req.Mode, req.TimeZone)
	if err != nil {
		return nil, err
	}
	if err := validateRange(req.DateFrom, req.DateTo); err != nil {
		return nil, err
	}

	component, err := s.repo.GetComponent(ctx, req.ComponentUUID)
	if err != nil {
		return nil, cancelled(ctx, err)
	}
	if req.OrgUUID != uuid.Nil && component.Org != req.OrgUUID {
		return nil, newError(CodePermissionDenied,
			map[string]string{"component": component.UUID.String(), "org": req.OrgUUID.String()},
			"component does not belong to the requested organization")
	}

	scope, err := s.sequenceComponent(ctx, *component, req.BranchUUID, req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, cancelled(ctx, err)
	}
	return asm.component(req.Mode, scope), nil
}

// OrganizationChangelogByDate reports the changes of every in-scope component
// of an organization within a date range. Components are computed
// concurrently; a failing component is left out with a warning unless every
// component fails.
func (s *Service) OrganizationChangelogByDate(ctx context.Context, req OrganizationDateRequest) (OrganizationChangelog, error) {
	asm, err := s.newAssembler(req.Mode, req.TimeZone)
	if err != nil {
		return nil, err
	}
	if err := validateRange(req.DateFrom, req.DateTo); err != nil {
		return nil, err
	}

	listed, err := s.repo.ListComponentsOfOrg(ctx, req.OrgUUID, req.PerspectiveUUID)
	if err != nil {
		return nil, cancelled(ctx, errors.Wrapf(err, "could not list components of org %s", req.OrgUUID))
	}
	components := make([]model.Component, 0, len(listed))
	for _, c := range listed {
		if c.InPerspective(req.PerspectiveUUID) {
			components = append(components, c)
		}
	}
	sortComponents(components)

	group := util.Settle[componentUnit](s.workers)
	for _, c := range components {
		group.Go(func() (componentUnit, error) {
			if err := ctx.Err(); err != nil {
				return componentUnit{}, err
			}
			if c.Org != req.OrgUUID {
				return componentUnit{}, newError(CodePermissionDenied,
					map[string]string{"component": c.UUID.String(), "org": req.OrgUUID.String()},
					"component does not belong to the requested organization")
			}
			scope, err := s.sequenceComponent(ctx, c, nil, req.DateFrom, req.DateTo)
			if err != nil {
				return componentUnit{}, err
			}
			return asm.unit(req.Mode, scope), nil
		})
	}
	outcomes := group.Wait()

	if err := ctx.Err(); err != nil {
		return nil, cancelled(ctx, err)
	}

	units := make([]componentUnit, 0, len(outcomes))
	var warnings []Warning
	var firstErr error
	for i, o := range outcomes {
		if o.Err == nil {
			units = append(units, o.Value)
			continue
		}
		c := components[i]
		if firstErr == nil {
			firstErr = o.Err
		}
		s.logger.Warn("excluding component from organization changelog",
			zap.String("org_uuid", req.OrgUUID.String()),
			zap.String("component_uuid", c.UUID.String()),
			zap.Error(o.Err))
		warnings = append(warnings, Warning{
			ComponentUUID: c.UUID,
			ComponentName: c.Name,
			Code:          CodePartialComponentFailure,
			Message:       o.Err.Error(),
		})
	}
	if len(components) > 0 && len(units) == 0 {
		return nil, errors.Wrapf(firstErr, "all %d components of org %s failed", len(components), req.OrgUUID)
	}

	s.logger.Sugar().Infof("organization changelog for %s: %d components, %d excluded",
		req.OrgUUID, len(units), len(warnings))
	return asm.organization(req.Mode, req.OrgUUID, req.DateFrom, req.DateTo, units, warnings), nil
}

func (s *Service) newAssembler(mode Mode, timeZone string) (assembler, error) {
	if timeZone == "" {
		timeZone = s.timeZone
	}
	if mode != ModeNone && mode != ModeAggregated {
		return assembler{}, newError(CodeInvalidArgument, map[string]string{"mode": string(mode)}, "unknown mode")
	}
	loc := time.UTC
	if timeZone != "" {
		l, err := time.LoadLocation(timeZone)
		if err != nil {
			return assembler{}, newError(CodeInvalidArgument, map[string]string{"timeZone": timeZone}, "unknown time zone")
		}
		loc = l
	}
	return assembler{loc: loc}, nil
}

func validateRange(from, to time.Time) error {
	if from.After(to) {
		return newError(CodeInvalidArgument,
			map[string]string{"dateFrom": from.Format(time.RFC3339), "dateTo": to.Format(time.RFC3339)},
			"dateFrom is after dateTo")
	}
	return nil
}
