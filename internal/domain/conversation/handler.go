package conversation

import (
	"net/http"

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
	api.GET("/chat/history/:userId", h.ListHistory)
}

func (h *Handler) ListHistory(c echo.Context) error {
	userID, err := apierror.IDParam(c, "userId")
	if err != nil {
		return apierror.BadRequest("Invalid user ID format")
	}
	items, err := h.svc.History(c.Request().Context(), userID)
	if err != nil {
		return apierror.Internal("Failed to fetch chat history", err)
	}
	return c.JSON(http.StatusOK, items)
}
