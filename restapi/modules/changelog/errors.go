package changelog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	core "github.com/ortelius/pdvd-changelog/internal/changelog"
	"github.com/ortelius/pdvd-changelog/util"
)

var statusByCode = map[core.Code]int{
	core.CodeNotFound:         fiber.StatusNotFound,
	core.CodePermissionDenied: fiber.StatusForbidden,
	core.CodeInvalidArgument:  fiber.StatusBadRequest,
	core.CodeCancelled:        fiber.StatusRequestTimeout,
}

// StatusOf maps an engine error to its HTTP status.
func StatusOf(err error) int {
	if status, ok := statusByCode[core.CodeOf(err)]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(StatusOf(err)).JSON(fiber.Map{
		"success": false,
		"code":    core.CodeOf(err),
		"message": err.Error(),
	})
}

func modeQuery(c *fiber.Ctx) core.Mode {
	return core.Mode(c.Query("mode", string(core.ModeNone)))
}

func uuidValue(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, &core.Error{Code: core.CodeInvalidArgument, Message: name + " is not a valid uuid",
			Details: map[string]string{name: value}}
	}
	return id, nil
}

func dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := timeValue("dateFrom", c.Query("dateFrom"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := timeValue("dateTo", c.Query("dateTo"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func timeValue(name, value string) (time.Time, error) {
	t, err := util.ParseTimestamp(value)
	if err != nil {
		return time.Time{}, &core.Error{Code: core.CodeInvalidArgument, Message: name + " is not an ISO-8601 timestamp",
			Details: map[string]string{name: value}}
	}
	return t, nil
}
