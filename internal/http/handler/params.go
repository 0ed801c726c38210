package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramID parses a positive int64 path parameter. The bool reports
// whether parsing succeeded; on failure the INVALID_ID response has
// already been written.
func paramID(c *fiber.Ctx, name string) (int64, bool, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	return id, true, nil
}

// pageParams parses limit and offset query parameters with the
// documented defaults. The bool reports success; on failure the
// error response has already been written.
func pageParams(c *fiber.Ctx) (limit, offset int, ok bool, err error) {
	limit, err = strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, true, nil
}
