package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/medisite/cms/internal/pkg/category"
	"github.com/medisite/cms/internal/pkg/usercontext"
)

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	if username := usercontext.GetUsername(c); username != "" {
		return username
	}
	if userNameValue := c.Locals(usercontext.KeyUsername); userNameValue != nil {
		if userName, ok := userNameValue.(string); ok {
			return userName
		}
	}
	return ""
}

// actorFrom returns the acting user of the request
func actorFrom(c *fiber.Ctx) category.Actor {
	return category.Actor{Name: ExtractUsername(c)}
}

// parseID reads a positive numeric route parameter
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// parseOptionalUint reads an optional numeric value; blank means nil
func parseOptionalUint(raw string) (*uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseOptionalInt reads an optional integer; blank means nil
func parseOptionalInt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseOptionalBool reads an optional checkbox-like value; blank means nil
func parseOptionalBool(raw string) *bool {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return nil
	}
	v := raw == "1" || raw == "true" || raw == "on" || raw == "yes"
	return &v
}

// isChecked reports whether a checkbox value is set
func isChecked(raw string) bool {
	v := parseOptionalBool(raw)
	return v != nil && *v
}

func optionalString(raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return &raw
}

// errorStatus maps a category service error to an HTTP status code
func errorStatus(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, category.ErrNotFound):
		return fiber.StatusNotFound
	case category.IsDependencyBlock(err), errors.Is(err, category.ErrSlugTaken):
		return fiber.StatusConflict
	case category.IsRejection(err):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// errorMessage returns the message shown to the client for err. Store
// failures are not exposed.
func errorMessage(err error) string {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Message
	case category.IsRejection(err), errors.Is(err, category.ErrCycleDetected):
		return err.Error()
	default:
		return "internal error"
	}
}
