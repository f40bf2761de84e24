package catalog

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medscience/medscience/internal/platform/apierror"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/body-systems", h.ListBodySystems)
	api.GET("/body-systems/:id", h.GetBodySystem)

	api.GET("/diseases/by-system/:systemId", h.ListDiseasesBySystem)
	api.GET("/diseases/search", h.SearchDiseases)
	api.GET("/diseases/:id", h.GetDisease)

	api.GET("/symptoms", h.ListSymptoms)
	api.GET("/symptoms/:id", h.GetSymptom)
}

func (h *Handler) ListBodySystems(c echo.Context) error {
	items, err := h.svc.ListBodySystems(c.Request().Context())
	if err != nil {
		return apierror.Internal("Failed to fetch body systems", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetBodySystem(c echo.Context) error {
	id, err := apierror.IDParam(c, "id")
	if err != nil {
		return err
	}
	b, err := h.svc.GetBodySystem(c.Request().Context(), id)
	if err != nil {
		return apierror.Lookup(err, "Body system not found", "Failed to fetch body system")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListDiseasesBySystem(c echo.Context) error {
	id, err := apierror.IDParam(c, "systemId")
	if err != nil {
		return apierror.BadRequest("Invalid system ID format")
	}
	items, err := h.svc.ListDiseasesByBodySystem(c.Request().Context(), id)
	if err != nil {
		return apierror.Internal("Failed to fetch diseases", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetDisease(c echo.Context) error {
	id, err := apierror.IDParam(c, "id")
	if err != nil {
		return err
	}
	d, err := h.svc.GetDisease(c.Request().Context(), id)
	if err != nil {
		return apierror.Lookup(err, "Disease not found", "Failed to fetch disease")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) SearchDiseases(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return apierror.BadRequest("Search query is required")
	}
	items, err := h.svc.SearchDiseases(c.Request().Context(), q)
	if err != nil {
		return apierror.Internal("Failed to search diseases", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListSymptoms(c echo.Context) error {
	items, err := h.svc.ListSymptoms(c.Request().Context())
	if err != nil {
		return apierror.Internal("Failed to fetch symptoms", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetSymptom(c echo.Context) error {
	id, err := apierror.IDParam(c, "id")
	if err != nil {
		return err
	}
	s, err := h.svc.GetSymptom(c.Request().Context(), id)
	if err != nil {
		return apierror.Lookup(err, "Symptom not found", "Failed to fetch symptom")
	}
	return c.JSON(http.StatusOK, s)
}
