package assistant

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medscience/medscience/internal/domain/conversation"
	"github.com/medscience/medscience/internal/platform/apierror"
	"github.com/medscience/medscience/internal/platform/completion"
	"github.com/medscience/medscience/internal/platform/validation"
)

// HistoryRecorder stores a finished chat exchange for a user.
type HistoryRecorder interface {
	Record(ctx context.Context, userID int64, messages []conversation.Message) (*conversation.ChatHistory, error)
}

type SymptomCheckRequest struct {
	Symptoms []string  `json:"symptoms" validate:"required,min=1,dive,required"`
	UserInfo *UserInfo `json:"userInfo,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
	UserID   *int64        `json:"userId,omitempty" validate:"omitempty,gte=1"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type Handler struct {
	svc     *Service
	history HistoryRecorder
	logger  zerolog.Logger
}

// NewHandler wires the assistant endpoints. history may be nil, in which
// case chat exchanges are never stored.
func NewHandler(svc *Service, history HistoryRecorder, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, history: history, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/symptom-check", h.CheckSymptoms)
	api.POST("/chat", h.Chat)
	api.GET("/disease-detailed/:name", h.DiseaseDetail)
	api.GET("/ai/news", h.News)
	api.GET("/ai/providers", h.Providers)
}

// bindAndValidate decodes the body into req and runs the echo validator.
func bindAndValidate(c echo.Context, req interface{}, normalize func()) error {
	if err := c.Bind(req); err != nil {
		return apierror.Malformed(err)
	}
	if normalize != nil {
		normalize()
	}
	if err := c.Validate(req); err != nil {
		var fields validation.FieldErrors
		if errors.As(err, &fields) {
			return apierror.Invalid(fields)
		}
		return apierror.Malformed(err)
	}
	return nil
}

func (h *Handler) CheckSymptoms(c echo.Context) error {
	var req SymptomCheckRequest
	err := bindAndValidate(c, &req, func() {
		for i, s := range req.Symptoms {
			req.Symptoms[i] = strings.TrimSpace(s)
		}
	})
	if err != nil {
		return err
	}
	result := h.svc.AnalyzeSymptoms(c.Request().Context(), req.Symptoms, req.UserInfo)
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	err := bindAndValidate(c, &req, func() {
		for i := range req.Messages {
			req.Messages[i].Role = strings.ToLower(strings.TrimSpace(req.Messages[i].Role))
			req.Messages[i].Content = strings.TrimSpace(req.Messages[i].Content)
		}
	})
	if err != nil {
		return err
	}

	turns := make([]completion.Message, len(req.Messages))
	for i, m := range req.Messages {
		turns[i] = completion.Message{Role: m.Role, Content: m.Content}
	}
	reply := h.svc.Chat(c.Request().Context(), turns)

	if req.UserID != nil && h.history != nil {
		h.recordExchange(c, *req.UserID, req.Messages, reply)
	}
	return c.JSON(http.StatusOK, ChatResponse{Response: reply})
}

func (h *Handler) recordExchange(c echo.Context, userID int64, sent []ChatMessage, reply string) {
	messages := make([]conversation.Message, 0, len(sent)+1)
	for _, m := range sent {
		messages = append(messages, conversation.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, conversation.Message{Role: completion.RoleAssistant, Content: reply})

	if _, err := h.history.Record(c.Request().Context(), userID, messages); err != nil {
		h.logger.Warn().Err(err).
			Int64("user_id", userID).
			Interface("request_id", c.Get("request_id")).
			Msg("failed to store chat history")
	}
}

func (h *Handler) DiseaseDetail(c echo.Context) error {
	name := c.Param("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apierror.BadRequest("Disease name is required")
	}
	return c.JSON(http.StatusOK, h.svc.DiseaseInformation(c.Request().Context(), name))
}

func (h *Handler) News(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.MedicalNews(c.Request().Context(), c.QueryParam("category")))
}

func (h *Handler) Providers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return apierror.BadRequest("Search query is required")
	}
	dir := h.svc.HealthcareProviders(c.Request().Context(), query, c.QueryParam("location"), c.QueryParam("specialty"))
	return c.JSON(http.StatusOK, dir)
}
