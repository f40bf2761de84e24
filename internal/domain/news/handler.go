package news

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medscience/medscience/internal/platform/apierror"
	"github.com/medscience/medscience/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/news", h.ListLatest)
	api.GET("/news/categories", h.ListCategories)
	api.GET("/news/category/:category", h.ListByCategory)
	api.GET("/news/:id", h.GetArticle)
}

func (h *Handler) ListLatest(c echo.Context) error {
	items, err := h.svc.LatestArticles(c.Request().Context(), pagination.FromContext(c))
	if err != nil {
		return apierror.Internal("Failed to fetch medical news", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListByCategory(c echo.Context) error {
	items, err := h.svc.ArticlesByCategory(c.Request().Context(), c.Param("category"), pagination.FromContext(c))
	if err != nil {
		return apierror.Internal("Failed to fetch medical news by category", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListCategories(c echo.Context) error {
	items, err := h.svc.Categories(c.Request().Context())
	if err != nil {
		return apierror.Internal("Failed to fetch news categories", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetArticle(c echo.Context) error {
	id, err := apierror.IDParam(c, "id")
	if err != nil {
		return err
	}
	a, err := h.svc.GetArticle(c.Request().Context(), id)
	if err != nil {
		return apierror.Lookup(err, "Article not found", "Failed to fetch article")
	}
	return c.JSON(http.StatusOK, a)
}
