// Package http provides the HTTP handler layer for the hotel search API.
package http

import (
	"github.com/hotel-search/hotel-search-assistant/internal/domain"
	"github.com/hotel-search/hotel-search-assistant/internal/usecase"
)

// ToDomainCriteria converts a SearchHotelsRequest to domain.SearchCriteria.
// Zero-valued occupancy fields are left for the use case to default.
func ToDomainCriteria(req *SearchHotelsRequest) domain.SearchCriteria {
	return domain.SearchCriteria{
		Location:     req.Location,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Adults:       req.Adults,
		Children:     req.Children,
		ChildrenAges: req.ChildrenAges,
		Rooms:        req.Rooms,
	}
}

// ToTurnRequest converts a MessageRequest to a usecase.TurnRequest bound to
// the given conversation ID. An empty ID starts a new conversation.
func ToTurnRequest(conversationID string, req *MessageRequest) usecase.TurnRequest {
	return usecase.TurnRequest{
		ConversationID: conversationID,
		UserID:         req.UserID,
		Message:        req.Message,
	}
}
