package server

import (
	"strconv"

	"critiq/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// paginatedResponse is the list envelope: total count plus the current page.
type paginatedResponse struct {
	Count   int64 `json:"count"`
	Results any   `json:"results"`
}

// pagination reads page/page_size query parameters and converts them to a
// limit/offset pair. Out-of-range values fall back to defaults.
func pagination(c *fiber.Ctx) (limit, offset int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.Query("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return size, (page - 1) * size
}

// pathID parses a numeric path parameter. A non-numeric value is reported
// as not found so probing /titles/abc behaves like /titles/999999.
func pathID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, models.NewNotFoundError("Resource", raw)
	}
	return uint(id), nil
}

// respondError maps an application error to its HTTP status and writes the
// standard error envelope.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

func respondList(c *fiber.Ctx, count int64, results any) error {
	return c.JSON(paginatedResponse{Count: count, Results: results})
}
