// Package integration provides helpers and integration tests for the hotel
// search assistant. Integration tests verify that components work together
// correctly, including HTTP handlers, use cases, and mock collaborators.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	httpAdapter "github.com/hotel-search/hotel-search-assistant/internal/adapter/http"
	"github.com/hotel-search/hotel-search-assistant/internal/domain"
	"github.com/hotel-search/hotel-search-assistant/internal/infrastructure/timeutil"
	"github.com/hotel-search/hotel-search-assistant/internal/reasoner"
	"github.com/hotel-search/hotel-search-assistant/internal/storage/history"
	"github.com/hotel-search/hotel-search-assistant/internal/usecase"
)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.HotelHandler
	Store   history.Store
}

// NewTestServer creates a new test server over the given provider and reasoner,
// backed by an in-memory history store.
func NewTestServer(provider domain.HotelProvider, r reasoner.Reasoner) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	log := zerolog.Nop()
	store := history.NewMemoryStore()

	searchUseCase := usecase.NewHotelSearchUseCase(provider, nil, log)
	conversationUseCase := usecase.NewConversationUseCase(
		r, searchUseCase, store, timeutil.NewRealClock(), log)

	handler := httpAdapter.NewHotelHandler(searchUseCase, conversationUseCase)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
		Store:   store,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest makes a direct hotel search request.
func (ts *TestServer) SearchRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/hotels/search",
		Body:   body,
	})
}

// StartConversation sends the first message of a new conversation.
func (ts *TestServer) StartConversation(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/conversations/messages",
		Body:   body,
	})
}

// SendMessage sends a message to an existing conversation.
func (ts *TestServer) SendMessage(conversationID string, body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/conversations/" + conversationID + "/messages",
		Body:   body,
	})
}

// EndConversation deletes a conversation.
func (ts *TestServer) EndConversation(conversationID string) Response {
	return ts.Do(Request{
		Method: http.MethodDelete,
		Path:   "/api/v1/conversations/" + conversationID,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseSearchResponse parses the response body as a SearchResponse.
func (r *Response) ParseSearchResponse() (*domain.SearchResponse, error) {
	var resp domain.SearchResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseTurnResult parses the response body as a TurnResult.
func (r *Response) ParseTurnResult() (*usecase.TurnResult, error) {
	var result usecase.TurnResult
	if err := json.Unmarshal(r.Body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

// SearchRequestBody is a helper struct for building search request bodies.
type SearchRequestBody struct {
	Location     string `json:"location"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Adults       int    `json:"adults,omitempty"`
	Children     int    `json:"children,omitempty"`
	ChildrenAges []int  `json:"children_ages,omitempty"`
	Rooms        int    `json:"rooms,omitempty"`
}

// MessageBody is a helper struct for building conversation message bodies.
type MessageBody struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// DefaultSearchRequest returns a valid search request body for testing.
func DefaultSearchRequest() SearchRequestBody {
	return SearchRequestBody{
		Location:     "Paris",
		CheckInDate:  "2026-09-10",
		CheckOutDate: "2026-09-12",
		Adults:       2,
	}
}

// DefaultSearchCriteria returns valid search criteria for driving use cases directly.
func DefaultSearchCriteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Location:     "Paris",
		CheckInDate:  "2026-09-10",
		CheckOutDate: "2026-09-12",
		Adults:       2,
	}
}
