// Package changelog implements the GraphQL resolvers for changelog queries.
package changelog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	core "github.com/ortelius/pdvd-changelog/internal/changelog"
	"github.com/ortelius/pdvd-changelog/util"
)

// ResolveComponentChangelog compares two releases.
func ResolveComponentChangelog(ctx context.Context, svc *core.Service, args map[string]interface{}) (interface{}, error) {
	req := core.ReleasePairRequest{
		Mode:     core.Mode(stringArg(args, "mode")),
		TimeZone: stringArg(args, "timeZone"),
	}
	var err error
	if req.Release1, err = uuidArg(args, "release1"); err != nil {
		return nil, err
	}
	if req.Release2, err = uuidArg(args, "release2"); err != nil {
		return nil, err
	}
	if req.OrgUUID, err = uuidArg(args, "orgUuid"); err != nil {
		return nil, err
	}

	result, err := svc.ComponentChangelog(ensureContext(ctx), req)
	if err != nil {
		return nil, err
	}
	return toSource(result)
}

// ResolveComponentChangelogByDate reports the changes of a component within a date range.
func ResolveComponentChangelogByDate(ctx context.Context, svc *core.Service, args map[string]interface{}) (interface{}, error) {
	req := core.ComponentDateRequest{
		Mode:     core.Mode(stringArg(args, "mode")),
		TimeZone: stringArg(args, "timeZone"),
	}
	var err error
	if req.ComponentUUID, err = uuidArg(args, "componentUuid"); err != nil {
		return nil, err
	}
	if req.OrgUUID, err = uuidArg(args, "orgUuid"); err != nil {
		return nil, err
	}
	if req.BranchUUID, err = optionalUUIDArg(args, "branchUuid"); err != nil {
		return nil, err
	}
	if req.DateFrom, err = timeArg(args, "dateFrom"); err != nil {
		return nil, err
	}
	if req.DateTo, err = timeArg(args, "dateTo"); err != nil {
		return nil, err
	}

	result, err := svc.ComponentChangelogByDate(ensureContext(ctx), req)
	if err != nil {
		return nil, err
	}
	return toSource(result)
}

// ResolveOrganizationChangelogByDate reports the changes of an organization within a date range.
func ResolveOrganizationChangelogByDate(ctx context.Context, svc *core.Service, args map[string]interface{}) (interface{}, error) {
	req := core.OrganizationDateRequest{
		Mode:     core.Mode(stringArg(args, "mode")),
		TimeZone: stringArg(args, "timeZone"),
	}
	var err error
	if req.OrgUUID, err = uuidArg(args, "orgUuid"); err != nil {
		return nil, err
	}
	if req.PerspectiveUUID, err = optionalUUIDArg(args, "perspectiveUuid"); err != nil {
		return nil, err
	}
	if req.DateFrom, err = timeArg(args, "dateFrom"); err != nil {
		return nil, err
	}
	if req.DateTo, err = timeArg(args, "dateTo"); err != nil {
		return nil, err
	}

	result, err := svc.OrganizationChangelogByDate(ensureContext(ctx), req)
	if err != nil {
		return nil, err
	}
	return toSource(result)
}

// toSource converts a result into the map form the default field resolvers
// and the union type resolvers read. The "__typename" key survives.
func toSource(result interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	var source map[string]interface{}
	if err := json.Unmarshal(data, &source); err != nil {
		return nil, err
	}
	return source, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func uuidArg(args map[string]interface{}, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(stringArg(args, name))
	if err != nil {
		return uuid.Nil, &core.Error{Code: core.CodeInvalidArgument, Message: name + " is not a valid uuid",
			Details: map[string]string{name: stringArg(args, name)}}
	}
	return id, nil
}

func optionalUUIDArg(args map[string]interface{}, name string) (*uuid.UUID, error) {
	if stringArg(args, name) == "" {
		return nil, nil
	}
	id, err := uuidArg(args, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func timeArg(args map[string]interface{}, name string) (time.Time, error) {
	t, err := util.ParseTimestamp(stringArg(args, name))
	if err != nil {
		return time.Time{}, &core.Error{Code: core.CodeInvalidArgument, Message: name + " is not an ISO-8601 timestamp",
			Details: map[string]string{name: stringArg(args, name)}}
	}
	return t, nil
}
