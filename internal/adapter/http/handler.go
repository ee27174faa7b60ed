// Package http provides the HTTP handler layer for the hotel search API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/hotel-search/hotel-search-assistant/internal/adapter/http/response"
	"github.com/hotel-search/hotel-search-assistant/internal/domain"
	"github.com/hotel-search/hotel-search-assistant/internal/usecase"
)

// HotelHandler handles HTTP requests for hotel search and conversation endpoints.
type HotelHandler struct {
	search       usecase.HotelSearchUseCase
	conversation usecase.ConversationUseCase
}

// NewHotelHandler creates a new HotelHandler with the given use cases.
func NewHotelHandler(search usecase.HotelSearchUseCase, conversation usecase.ConversationUseCase) *HotelHandler {
	return &HotelHandler{
		search:       search,
		conversation: conversation,
	}
}

// SearchHotels handles POST /api/v1/hotels/search
//
// @Summary Search for hotels
// @Description Search for hotels matching fully specified criteria
// @Tags hotels
// @Accept json
// @Produce json
// @Param request body SearchHotelsRequest true "Search criteria"
// @Success 200 {object} domain.SearchResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "Service unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/hotels/search [post]
func (h *HotelHandler) SearchHotels(c echo.Context) error {
	var req SearchHotelsRequest

	// Bind request body
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	// Validate request
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	// Convert to domain types
	criteria := ToDomainCriteria(&req)

	// Call use case with request context
	result, err := h.search.Search(c.Request().Context(), criteria)
	if err != nil {
		return h.handleError(c, err)
	}

	// Return successful response
	return response.SearchResults(c, result)
}

// StartConversation handles POST /api/v1/conversations/messages
//
// @Summary Start a conversation
// @Description Start a new conversation with an initial user message
// @Tags conversations
// @Accept json
// @Produce json
// @Param request body MessageRequest true "User message"
// @Success 200 {object} usecase.TurnResult
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 502 {object} response.ErrorDetail "Upstream error"
// @Failure 503 {object} response.ErrorDetail "Service unavailable"
// @Router /api/v1/conversations/messages [post]
func (h *HotelHandler) StartConversation(c echo.Context) error {
	return h.handleMessage(c, "")
}

// PostMessage handles POST /api/v1/conversations/:id/messages
//
// @Summary Send a message
// @Description Send a user message to an existing conversation
// @Tags conversations
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body MessageRequest true "User message"
// @Success 200 {object} usecase.TurnResult
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 502 {object} response.ErrorDetail "Upstream error"
// @Failure 503 {object} response.ErrorDetail "Service unavailable"
// @Router /api/v1/conversations/{id}/messages [post]
func (h *HotelHandler) PostMessage(c echo.Context) error {
	return h.handleMessage(c, c.Param("id"))
}

// handleMessage binds, validates, and dispatches one conversational turn.
func (h *HotelHandler) handleMessage(c echo.Context, conversationID string) error {
	var req MessageRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.conversation.HandleTurn(c.Request().Context(), ToTurnRequest(conversationID, &req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, result)
}

// EndConversation handles DELETE /api/v1/conversations/:id
//
// @Summary End a conversation
// @Description Discard the conversation's session state
// @Tags conversations
// @Param id path string true "Conversation ID"
// @Success 204 "No content"
// @Failure 404 {object} response.ErrorDetail "Conversation not found"
// @Router /api/v1/conversations/{id} [delete]
func (h *HotelHandler) EndConversation(c echo.Context) error {
	if err := h.conversation.EndConversation(c.Request().Context(), c.Param("id")); err != nil {
		return h.handleError(c, err)
	}
	return response.NoContent(c)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *HotelHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *HotelHandler) handleError(c echo.Context, err error) error {
	// Check for provider unavailability
	if errors.Is(err, domain.ErrSearchUnavailable) {
		return response.ServiceUnavailable(c)
	}

	// Check for reasoner failure
	if errors.Is(err, domain.ErrReasoner) {
		return response.BadGateway(c, response.MsgUpstreamError)
	}

	// Check for unknown conversation
	if errors.Is(err, domain.ErrConversationNotFound) {
		return response.NotFound(c, "Conversation not found")
	}

	// Check for context deadline exceeded (timeout)
	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}

	// Check for context cancelled
	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	// Check for criteria validation failures surfaced by the use case
	if errors.Is(err, domain.ErrInvalidFormat) ||
		errors.Is(err, domain.ErrOutOfRange) ||
		errors.Is(err, domain.ErrInconsistent) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	// Default to internal server error
	return response.InternalServerError(c)
}

// Health handles GET /health
// Simple health check endpoint.
func (h *HotelHandler) Health(c echo.Context) error {
	return response.Health(c)
}
