package resource

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medscience/medscience/internal/platform/apierror"
	"github.com/medscience/medscience/internal/platform/store"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/resources/:type", h.ListByType)
	api.GET("/resources/:type/:id", h.GetResource)
}

func (h *Handler) ListByType(c echo.Context) error {
	items, err := h.svc.ListByType(c.Request().Context(), c.Param("type"), c.QueryParam("category"))
	if err != nil {
		return apierror.Internal("Failed to fetch resources", err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetResource answers 404 when the resource exists under a different type,
// so /resources/journal/3 never returns a hospital.
func (h *Handler) GetResource(c echo.Context) error {
	id, err := apierror.IDParam(c, "id")
	if err != nil {
		return err
	}
	res, err := h.svc.GetResource(c.Request().Context(), id)
	if err == nil && c.Param("type") != TypeAll && res.Type != c.Param("type") {
		err = store.ErrNotFound
	}
	if err != nil {
		return apierror.Lookup(err, "Resource not found", "Failed to fetch resource")
	}
	return c.JSON(http.StatusOK, res)
}
