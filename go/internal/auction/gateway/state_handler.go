package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/kpatel744/auctioneer/go/internal/auction/registry"
	"github.com/kpatel744/auctioneer/go/internal/auction/room"
)

// StateProvider interface defines methods for retrieving room state
type StateProvider interface {
	GetRoomState(ctx context.Context, roomID string) (*RoomStateResponse, error)
	GetActiveRooms(ctx context.Context) ([]registry.RoomSummary, error)
}

// RoomStateResponse represents the snapshot a client needs to render a room.
// Clients fetch it once on connect and apply WebSocket events on top.
type RoomStateResponse struct {
	RoomID       string                 `json:"room_id"`
	AuctionState string                 `json:"auction_state"`
	AuctionMode  string                 `json:"auction_mode"`
	Teams        []TeamStateInfo        `json:"teams"`
	CurrentLot   *CurrentLotInfo        `json:"current_lot,omitempty"`
	SoldCount    int                    `json:"sold_count"`
	UnsoldCount  int                    `json:"unsold_count"`
	PoolCount    int                    `json:"pool_count"`
	Metadata     map[string]interface{} `json:"metadata"`
	FetchedAt    time.Time              `json:"fetched_at"`
}

// TeamStateInfo represents one team's standing in the room
type TeamStateInfo struct {
	Name        string `json:"name"`
	Theme       string `json:"theme,omitempty"`
	Purse       int64  `json:"purse"`
	PlayerCount int    `json:"player_count"`
	Bidding     bool   `json:"bidding"`
}

// CurrentLotInfo represents the player on the block
type CurrentLotInfo struct {
	PlayerID       string  `json:"player_id"`
	PlayerName     string  `json:"player_name"`
	PlayerSet      string  `json:"player_set"`
	BasePrice      int64   `json:"base_price"`
	CurrentBid     *int64  `json:"current_bid,omitempty"`
	CurrentBidTeam *string `json:"current_bid_team,omitempty"`
	NextBid        int64   `json:"next_bid"`
	Status         string  `json:"status,omitempty"`
}

// StateHandler handles HTTP requests for room state
type StateHandler struct {
	stateProvider StateProvider
}

// NewStateHandler creates a new state handler
func NewStateHandler(provider StateProvider) *StateHandler {
	return &StateHandler{
		stateProvider: provider,
	}
}

// HandleGetRoomState handles GET /api/rooms/{roomID}/state
func (h *StateHandler) HandleGetRoomState(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomID"]
	if roomID == "" {
		http.Error(w, "room ID is required", http.StatusBadRequest)
		return
	}

	state, err := h.stateProvider.GetRoomState(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to get room state")
		http.Error(w, "failed to get room state", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		log.Error().Err(err).Msg("failed to encode room state response")
	}
}

// HandleGetActiveRooms handles GET /api/rooms/active
func (h *StateHandler) HandleGetActiveRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.stateProvider.GetActiveRooms(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get active rooms")
		http.Error(w, "failed to get active rooms", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rooms); err != nil {
		log.Error().Err(err).Msg("failed to encode active rooms response")
	}
}

// RegisterStateRoutes registers state-related HTTP routes
func (h *StateHandler) RegisterStateRoutes(r *mux.Router) {
	r.HandleFunc("/api/rooms/active", h.HandleGetActiveRooms).Methods(http.MethodGet)
	r.HandleFunc("/api/rooms/{roomID}/state", h.HandleGetRoomState).Methods(http.MethodGet)
}
