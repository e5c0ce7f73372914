// Package changelog implements the REST API handlers for release and organization changelogs.
package changelog

import (
	"github.com/gofiber/fiber/v2"
	core "github.com/ortelius/pdvd-changelog/internal/changelog"
)

// GetComponentChangelog compares two releases.
// GET /api/v1/changelog/releases?release1=&release2=&orgUuid=&mode=&timeZone=
func GetComponentChangelog(svc *core.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := core.ReleasePairRequest{Mode: modeQuery(c), TimeZone: c.Query("timeZone")}
		var err error
		if req.Release1, err = uuidValue("release1", c.Query("release1")); err != nil {
			return respondError(c, err)
		}
		if req.Release2, err = uuidValue("release2", c.Query("release2")); err != nil {
			return respondError(c, err)
		}
		if req.OrgUUID, err = uuidValue("orgUuid", c.Query("orgUuid")); err != nil {
			return respondError(c, err)
		}

		result, err := svc.ComponentChangelog(c.UserContext(), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	}
}

// GetComponentChangelogByDate reports the changes of a component within a date range.
// GET /api/v1/changelog/components/:componentUuid?orgUuid=&dateFrom=&dateTo=&branchUuid=&mode=&timeZone=
func GetComponentChangelogByDate(svc *core.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := core.ComponentDateRequest{Mode: modeQuery(c), TimeZone: c.Query("timeZone")}
		var err error
		if req.ComponentUUID, err = uuidValue("componentUuid", c.Params("componentUuid")); err != nil {
			return respondError(c, err)
		}
		if req.OrgUUID, err = uuidValue("orgUuid", c.Query("orgUuid")); err != nil {
			return respondError(c, err)
		}
		if branch := c.Query("branchUuid"); branch != "" {
			id, err := uuidValue("branchUuid", branch)
			if err != nil {
				return respondError(c, err)
			}
			req.BranchUUID = &id
		}
		if req.DateFrom, req.DateTo, err = dateRange(c); err != nil {
			return respondError(c, err)
		}

		result, err := svc.ComponentChangelogByDate(c.UserContext(), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	}
}

// GetOrganizationChangelogByDate reports the changes of an organization within a date range.
// GET /api/v1/changelog/orgs/:orgUuid?dateFrom=&dateTo=&perspectiveUuid=&mode=&timeZone=
func GetOrganizationChangelogByDate(svc *core.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := core.OrganizationDateRequest{Mode: modeQuery(c), TimeZone: c.Query("timeZone")}
		var err error
		if req.OrgUUID, err = uuidValue("orgUuid", c.Params("orgUuid")); err != nil {
			return respondError(c, err)
		}
		if perspective := c.Query("perspectiveUuid"); perspective != "" {
			id, err := uuidValue("perspectiveUuid", perspective)
			if err != nil {
				return respondError(c, err)
			}
			req.PerspectiveUUID = &id
		}
		if req.DateFrom, req.DateTo, err = dateRange(c); err != nil {
			return respondError(c, err)
		}

		result, err := svc.OrganizationChangelogByDate(c.UserContext(), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	}
}
