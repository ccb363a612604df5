package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/kpatel744/auctioneer/go/internal/auction/bidengine"
	"github.com/kpatel744/auctioneer/go/internal/auction/lot"
	"github.com/kpatel744/auctioneer/go/internal/auction/registry"
	"github.com/kpatel744/auctioneer/go/internal/auction/room"
	"github.com/kpatel744/auctioneer/go/internal/auction/session"
	"github.com/kpatel744/auctioneer/go/internal/models"
	"github.com/kpatel744/auctioneer/go/internal/players"
	"github.com/kpatel744/auctioneer/go/internal/store"
)

// deviceIDHeader identifies the calling device on every authenticated route.
const deviceIDHeader = "X-Device-ID"

// Handler contains HTTP request handlers for the auction API
type Handler struct {
	rooms    *room.App
	pool     *players.App
	sessions *session.App
	registry *registry.App
}

// NewHandler creates a new HTTP handler
func NewHandler(rooms *room.App, pool *players.App, sessions *session.App, reg *registry.App) *Handler {
	return &Handler{
		rooms:    rooms,
		pool:     pool,
		sessions: sessions,
		registry: reg,
	}
}

// RegisterRoutes configures all HTTP routes on the router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Rooms
	api.HandleFunc("/rooms", h.CreateRoom).Methods(http.MethodPost)
	api.HandleFunc("/rooms", h.ListRooms).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomID}", h.GetRoom).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomID}", h.DeleteRoom).Methods(http.MethodDelete)
	api.HandleFunc("/rooms/{roomID}/teams", h.JoinTeam).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomID}/teams/{teamName}", h.RemoveTeam).Methods(http.MethodDelete)
	api.HandleFunc("/rooms/{roomID}/config", h.UpdateConfig).Methods(http.MethodPatch)
	api.HandleFunc("/rooms/{roomID}/end", h.EndAuction).Methods(http.MethodPost)

	// Lot lifecycle
	api.HandleFunc("/rooms/{roomID}/lot/select", h.SelectPlayer).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomID}/lot/sold", h.ResolveSold).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomID}/lot/unsold", h.ResolveUnsold).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomID}/lot/reset", h.ResetLot).Methods(http.MethodPost)

	// Bidding
	api.HandleFunc("/rooms/{roomID}/bids", h.SubmitAutoBid).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomID}/bids/jump", h.SubmitJumpBid).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomID}/bids/manual", h.HostSetManualBid).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomID}/bids/adjust", h.HostAdjustBid).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomID}/bidders/enter", h.EnterBidding).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomID}/bidders/exit", h.ExitBidding).Methods(http.MethodPost)

	// Player pool
	api.HandleFunc("/rooms/{roomID}/players", h.CreatePlayer).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomID}/players/import", h.ImportPlayers).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomID}/players", h.ListPlayers).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomID}/players/{playerID}", h.GetPlayer).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomID}/players/{playerID}", h.UpdatePlayer).Methods(http.MethodPatch)
	api.HandleFunc("/rooms/{roomID}/players/{playerID}", h.DeletePlayer).Methods(http.MethodDelete)

	// Device sessions
	api.HandleFunc("/sessions/join", h.SessionJoin).Methods(http.MethodPost)
	api.HandleFunc("/sessions", h.SessionResume).Methods(http.MethodGet)
	api.HandleFunc("/sessions", h.SessionLeave).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/bid", h.SessionBid).Methods(http.MethodPost)
	api.HandleFunc("/sessions/jump", h.SessionJumpBid).Methods(http.MethodPost)
	api.HandleFunc("/sessions/enter", h.SessionEnter).Methods(http.MethodPost)
	api.HandleFunc("/sessions/exit", h.SessionExit).Methods(http.MethodPost)
	api.HandleFunc("/sessions/eligibility", h.SessionEligibility).Methods(http.MethodGet)

	router.Use(loggingMiddleware)
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "auctioneer",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// CreateRoom handles POST /api/v1/rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req room.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if deviceID := r.Header.Get(deviceIDHeader); deviceID != "" {
		req.DeviceID = deviceID
	}

	rm, err := h.rooms.CreateRoom(r.Context(), req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rm)
}

// ListRooms handles GET /api/v1/rooms
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.registry.ListSummaries(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

// GetRoom handles GET /api/v1/rooms/{roomID}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	rm, err := h.rooms.GetRoom(r.Context(), mux.Vars(r)["roomID"])
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rm)
}

// DeleteRoom handles DELETE /api/v1/rooms/{roomID}
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.rooms.DeleteRoom(r.Context(), mux.Vars(r)["roomID"], r.Header.Get(deviceIDHeader)); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// JoinTeam handles POST /api/v1/rooms/{roomID}/teams
func (h *Handler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	var req room.JoinTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.RoomID = mux.Vars(r)["roomID"]
	if req.TeamName == "" {
		respondError(w, http.StatusBadRequest, "teamName is required")
		return
	}

	rm, err := h.rooms.JoinTeam(r.Context(), req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rm)
}

// RemoveTeam handles DELETE /api/v1/rooms/{roomID}/teams/{teamName}
func (h *Handler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rm, err := h.rooms.RemoveTeam(r.Context(), vars["roomID"], r.Header.Get(deviceIDHeader), vars["teamName"])
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rm)
}

// UpdateConfig handles PATCH /api/v1/rooms/{roomID}/config
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req room.ConfigUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.RoomID = mux.Vars(r)["roomID"]
	req.DeviceID = r.Header.Get(deviceIDHeader)

	rm, err := h.rooms.UpdateConfig(r.Context(), req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rm)
}

// EndAuction handles POST /api/v1/rooms/{roomID}/end
func (h *Handler) EndAuction(w http.ResponseWriter, r *http.Request) {
	rm, err := h.rooms.EndAuction(r.Context(), mux.Vars(r)["roomID"], r.Header.Get(deviceIDHeader))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rm)
}

// SelectPlayer handles POST /api/v1/rooms/{roomID}/lot/select
func (h *Handler) SelectPlayer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PlayerID uuid.UUID `json:"playerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rm, err := h.rooms.SelectPlayer(r.Context(), room.SelectPlayerRequest{
		RoomID:   mux.Vars(r)["roomID"],
		DeviceID: r.Header.Get(deviceIDHeader),
		PlayerID: body.PlayerID,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rm)
}

// ResolveSold handles POST /api/v1/rooms/{roomID}/lot/sold
func (h *Handler) ResolveSold(w http.ResponseWriter, r *http.Request) {
	rm, err := h.rooms.ResolveSold(r.Context(), mux.Vars(r)["roomID"], r.Header.Get(deviceIDHeader))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rm)
}

// ResolveUnsold handles POST /api/v1/rooms/{roomID}/lot/unsold
func (h *Handler) ResolveUnsold(w http.ResponseWriter, r *http.Request) {
	rm, err := h.rooms.ResolveUnsold(r.Context(), mux.Vars(r)["roomID"], r.Header.Get(deviceIDHeader))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rm)
}

// ResetLot handles POST /api/v1/rooms/{roomID}/lot/reset
func (h *Handler) ResetLot(w http.ResponseWriter, r *http.Request) {
	rm, err := h.rooms.ResetLot(r.Context(), mux.Vars(r)["roomID"], r.Header.Get(deviceIDHeader))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rm)
}

// SubmitAutoBid handles POST /api/v1/rooms/{roomID}/bids
func (h *Handler) SubmitAutoBid(w http.ResponseWriter, r *http.Request) {
	var req room.AutoBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.RoomID = mux.Vars(r)["roomID"]
	if req.TeamName == "" {
		respondError(w, http.StatusBadRequest, "teamName is required")
		return
	}

	rm, err := h.rooms.SubmitAutoBid(r.Context(), req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rm)
}

// SubmitJumpBid handles POST /api/v1/rooms/{roomID}/bids/jump
func (h *Handler) SubmitJumpBid(w http.ResponseWriter, r *http.Request) {
	var req room.JumpBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.RoomID = mux.Vars(r)["roomID"]
	if req.TeamName == "" {
		respondError(w, http.StatusBadRequest, "teamName is required")
		return
	}

	rm, err := h.rooms.SubmitJumpBid(r.Context(), req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rm)
}

// HostSetManualBid handles POST /api/v1/rooms/{roomID}/bids/manual
func (h *Handler) HostSetManualBid(w http.ResponseWriter, r *http.Request) {
	var req room.ManualBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.RoomID = mux.Vars(r)["roomID"]
	req.DeviceID = r.Header.Get(deviceIDHeader)

	rm, err := h.rooms.HostSetManualBid(r.Context(), req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rm)
}

// HostAdjustBid handles POST /api/v1/rooms/{roomID}/bids/adjust
func (h *Handler) HostAdjustBid(w http.ResponseWriter, r *http.Request) {
	var req room.AdjustBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.RoomID = mux.Vars(r)["roomID"]
	req.DeviceID = r.Header.Get(deviceIDHeader)

	rm, err := h.rooms.HostAdjustBid(r.Context(), req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rm)
}

// EnterBidding handles POST /api/v1/rooms/{roomID}/bidders/enter
func (h *Handler) EnterBidding(w http.ResponseWriter, r *http.Request) {
	h.handlePresence(w, r, h.rooms.EnterBidding)
}

// ExitBidding handles POST /api/v1/rooms/{roomID}/bidders/exit
func (h *Handler) ExitBidding(w http.ResponseWriter, r *http.Request) {
	h.handlePresence(w, r, h.rooms.ExitBidding)
}

func (h *Handler) handlePresence(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, roomID, teamName string) (*models.Room, error)) {
	var body struct {
		TeamName string `json:"teamName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.TeamName == "" {
		respondError(w, http.StatusBadRequest, "teamName is required")
		return
	}

	rm, err := op(r.Context(), mux.Vars(r)["roomID"], body.TeamName)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rm)
}

// CreatePlayer handles POST /api/v1/rooms/{roomID}/players
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req players.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.RoomID = mux.Vars(r)["roomID"]

	player, err := h.pool.CreatePlayer(r.Context(), req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, player)
}

// ImportPlayers handles POST /api/v1/rooms/{roomID}/players/import
func (h *Handler) ImportPlayers(w http.ResponseWriter, r *http.Request) {
	var reqs []players.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.pool.CreatePlayers(r.Context(), mux.Vars(r)["roomID"], reqs)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListPlayers handles GET /api/v1/rooms/{roomID}/players
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomID"]

	var (
		list []*models.Player
		err  error
	)
	if set := r.URL.Query().Get("set"); set != "" {
		list, err = h.pool.ListPlayersBySet(r.Context(), roomID, set)
	} else {
		list, err = h.pool.ListPlayers(r.Context(), roomID)
	}
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// GetPlayer handles GET /api/v1/rooms/{roomID}/players/{playerID}
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	roomID, playerID, ok := playerVars(w, r)
	if !ok {
		return
	}

	player, err := h.pool.GetPlayer(r.Context(), roomID, playerID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, player)
}

// UpdatePlayer handles PATCH /api/v1/rooms/{roomID}/players/{playerID}
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	roomID, playerID, ok := playerVars(w, r)
	if !ok {
		return
	}

	var req players.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := h.pool.UpdatePlayer(r.Context(), roomID, playerID, req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, player)
}

// DeletePlayer handles DELETE /api/v1/rooms/{roomID}/players/{playerID}
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	roomID, playerID, ok := playerVars(w, r)
	if !ok {
		return
	}

	if err := h.pool.DeletePlayer(r.Context(), roomID, playerID); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SessionJoin handles POST /api/v1/sessions/join
func (h *Handler) SessionJoin(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}

	var req room.JoinTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RoomID == "" || req.TeamName == "" {
		respondError(w, http.StatusBadRequest, "roomId and teamName are required")
		return
	}

	sess, rm, err := h.sessions.Join(r.Context(), deviceID, req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sessionEnvelope{Session: sess, Room: rm})
}

// SessionResume handles GET /api/v1/sessions
func (h *Handler) SessionResume(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}

	sess, rm, err := h.sessions.Resume(r.Context(), deviceID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionEnvelope{Session: sess, Room: rm})
}

// SessionLeave handles DELETE /api/v1/sessions
func (h *Handler) SessionLeave(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Leave(r.Context(), deviceID); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SessionBid handles POST /api/v1/sessions/bid
func (h *Handler) SessionBid(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}

	var body struct {
		ObservedBid *int64 `json:"observedBid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rm, err := h.sessions.Bid(r.Context(), deviceID, body.ObservedBid)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rm)
}

// SessionJumpBid handles POST /api/v1/sessions/jump
func (h *Handler) SessionJumpBid(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}

	var body struct {
		Amount      int64  `json:"amount"`
		ObservedBid *int64 `json:"observedBid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rm, err := h.sessions.JumpBid(r.Context(), deviceID, body.Amount, body.ObservedBid)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rm)
}

// SessionEnter handles POST /api/v1/sessions/enter
func (h *Handler) SessionEnter(w http.ResponseWriter, r *http.Request) {
	h.handleSessionPresence(w, r, h.sessions.Enter)
}

// SessionExit handles POST /api/v1/sessions/exit
func (h *Handler) SessionExit(w http.ResponseWriter, r *http.Request) {
	h.handleSessionPresence(w, r, h.sessions.Exit)
}

func (h *Handler) handleSessionPresence(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, deviceID string) (*models.Room, error)) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}

	rm, err := op(r.Context(), deviceID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rm)
}

// SessionEligibility handles GET /api/v1/sessions/eligibility
func (h *Handler) SessionEligibility(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}

	eligibility, err := h.sessions.Eligibility(r.Context(), deviceID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, eligibility)
}

type sessionEnvelope struct {
	Session *models.DeviceSession `json:"session"`
	Room    *models.Room          `json:"room"`
}

func playerVars(w http.ResponseWriter, r *http.Request) (string, uuid.UUID, bool) {
	vars := mux.Vars(r)
	playerID, err := uuid.Parse(vars["playerID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid player ID")
		return "", uuid.Nil, false
	}
	return vars["roomID"], playerID, true
}

func requireDevice(w http.ResponseWriter, r *http.Request) (string, bool) {
	deviceID := r.Header.Get(deviceIDHeader)
	if deviceID == "" {
		respondError(w, http.StatusBadRequest, deviceIDHeader+" header is required")
		return "", false
	}
	return deviceID, true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondAppError maps an application error to its HTTP status
func respondAppError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		respondError(w, status, "internal error")
		return
	}
	respondError(w, status, err.Error())
}

// statusForError translates domain sentinels into HTTP status codes.
// Rule violations on an otherwise well-formed request map to 422 so
// clients can distinguish them from malformed input.
func statusForError(err error) int {
	switch {
	case errors.Is(err, room.ErrValidation),
		errors.Is(err, players.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, room.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, room.ErrRoomNotFound),
		errors.Is(err, players.ErrPlayerNotFound),
		errors.Is(err, session.ErrNoSession),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrRemovedParticipant):
		return http.StatusGone
	case errors.Is(err, room.ErrRoomExists),
		errors.Is(err, room.ErrRoomFull),
		errors.Is(err, room.ErrDuplicateTeam),
		errors.Is(err, room.ErrBidConflict),
		errors.Is(err, store.ErrConflict),
		errors.Is(err, store.ErrExists):
		return http.StatusConflict
	case errors.Is(err, room.ErrAuctionEnded),
		errors.Is(err, room.ErrJumpBidDisabled),
		errors.Is(err, room.ErrWrongMode),
		errors.Is(err, bidengine.ErrJumpBidRejected),
		errors.Is(err, lot.ErrNoPlayerSelected),
		errors.Is(err, lot.ErrLotNotOpen),
		errors.Is(err, lot.ErrLotResolved),
		errors.Is(err, lot.ErrManualMode),
		errors.Is(err, lot.ErrBidTooLow),
		errors.Is(err, lot.ErrInsufficientPurse),
		errors.Is(err, lot.ErrSelfOutbid),
		errors.Is(err, lot.ErrRosterFull),
		errors.Is(err, lot.ErrOverseasFull),
		errors.Is(err, lot.ErrTeamNotFound),
		errors.Is(err, lot.ErrNoBid),
		errors.Is(err, lot.ErrBidPresent),
		errors.Is(err, lot.ErrNothingToReset):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// loggingMiddleware logs all HTTP requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}
