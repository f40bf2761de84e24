package apierror

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medscience/medscience/internal/platform/store"
)

// IDParam parses the named path parameter as an integer id. Zero and
// negative ids parse fine and simply match nothing.
func IDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, BadRequest("Invalid ID format")
	}
	return id, nil
}

// Lookup maps a repository error from a point lookup: store.ErrNotFound
// becomes a 404 with notFound, anything else a 500 with failure.
func Lookup(err error, notFound, failure string) error {
	if store.IsNotFound(err) {
		return NotFound(notFound)
	}
	return Internal(failure, err)
}
