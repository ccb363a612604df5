package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpatel744/auctioneer/go/internal/auction/bidengine"
	"github.com/kpatel744/auctioneer/go/internal/auction/registry"
	"github.com/kpatel744/auctioneer/go/internal/auction/room"
	"github.com/kpatel744/auctioneer/go/internal/auction/session"
	"github.com/kpatel744/auctioneer/go/internal/models"
	"github.com/kpatel744/auctioneer/go/internal/players"
	"github.com/kpatel744/auctioneer/go/internal/store/memory"
)

type testServer struct {
	router *mux.Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := memory.NewStore()
	ladder := bidengine.DefaultLadder()
	rooms := room.NewApp(s.Rooms(), s.Players(), nil, ladder)
	pool := players.NewApp(s.Players())
	sessions := session.NewApp(session.NewMemoryStorage(), rooms, ladder)
	reg := registry.NewApp(s.Rooms(), s.Players())

	router := mux.NewRouter()
	NewHandler(rooms, pool, sessions, reg).RegisterRoutes(router)
	return &testServer{router: router}
}

func (ts *testServer) do(t *testing.T, method, path, deviceID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if deviceID != "" {
		req.Header.Set(deviceIDHeader, deviceID)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) createRoom(t *testing.T, roomID string) {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/v1/rooms", "host-device", map[string]interface{}{
		"roomId": roomID, "numTeams": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (ts *testServer) importPlayers(t *testing.T, roomID string) []models.Player {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/v1/rooms/"+roomID+"/players/import", "", []map[string]interface{}{
		{"name": "S Gill", "basePrice": 50},
		{"name": "J Root", "basePrice": 75, "country": "England", "playerSet": "Set 2"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created []models.Player
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(t, created, 2)
	return created
}

func decodeRoom(t *testing.T, rec *httptest.ResponseRecorder) models.Room {
	t.Helper()
	var rm models.Room
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rm))
	return rm
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestCreateRoomAndFetch(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "room-1")

	rec := ts.do(t, http.MethodGet, "/api/v1/rooms/room-1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rm := decodeRoom(t, rec)
	assert.Equal(t, "room-1", rm.RoomID)
	assert.Equal(t, int64(room.DefaultBudget), rm.Budget)

	rec = ts.do(t, http.MethodGet, "/api/v1/rooms", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []registry.RoomSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "room-1", summaries[0].RoomID)
}

func TestCreateRoomConflict(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "room-1")

	rec := ts.do(t, http.MethodPost, "/api/v1/rooms", "other-device", map[string]interface{}{
		"roomId": "room-1", "numTeams": 2,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetRoomNotFound(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/v1/rooms/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJoinTeamValidationAndConflicts(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "room-1")

	rec := ts.do(t, http.MethodPost, "/api/v1/rooms/room-1/teams", "", map[string]string{"teamName": "Strikers"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/rooms/room-1/teams", "", map[string]string{"teamName": "Strikers"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/rooms/room-1/teams", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLotFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	// Private room so host controls are bound to the creating device.
	rec := ts.do(t, http.MethodPost, "/api/v1/rooms", "host-device", map[string]interface{}{
		"roomId": "room-1", "numTeams": 2, "accessType": "private",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := ts.importPlayers(t, "room-1")

	rec = ts.do(t, http.MethodPost, "/api/v1/rooms/room-1/teams", "", map[string]string{"teamName": "Strikers"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/rooms/room-1/lot/select", "host-device", map[string]string{
		"playerId": created[0].ID.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Not the creating device.
	rec = ts.do(t, http.MethodPost, "/api/v1/rooms/room-1/lot/sold", "other-device", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/rooms/room-1/bids", "", map[string]interface{}{
		"teamName": "Strikers",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rm := decodeRoom(t, rec)
	require.NotNil(t, rm.CurrentBid)
	assert.Equal(t, int64(50), *rm.CurrentBid)

	// A device that never saw the opening bid loses the race
	rec = ts.do(t, http.MethodPost, "/api/v1/rooms/room-1/bids", "", map[string]interface{}{
		"teamName": "Strikers", "observedBid": nil,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/rooms/room-1/lot/sold", "host-device", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/rooms/room-1/players/%s", created[0].ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var player models.Player
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &player))
	require.NotNil(t, player.Team)
	assert.Equal(t, "Strikers", *player.Team)
	require.NotNil(t, player.SoldPrice)
	assert.Equal(t, int64(50), *player.SoldPrice)
}

func TestBidWithoutOpenLot(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "room-1")
	rec := ts.do(t, http.MethodPost, "/api/v1/rooms/room-1/teams", "", map[string]string{"teamName": "Strikers"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/rooms/room-1/bids", "", map[string]interface{}{
		"teamName": "Strikers",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListPlayersBySet(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "room-1")
	ts.importPlayers(t, "room-1")

	rec := ts.do(t, http.MethodGet, "/api/v1/rooms/room-1/players?set=Set+2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Player
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "J Root", list[0].Name)
}

func TestPlayerIDValidation(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "room-1")

	rec := ts.do(t, http.MethodGet, "/api/v1/rooms/room-1/players/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/rooms/room-1/players/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "room-1")
	created := ts.importPlayers(t, "room-1")

	rec := ts.do(t, http.MethodPost, "/api/v1/sessions/join", "device-1", map[string]string{
		"roomId": "room-1", "teamName": "Strikers",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/v1/sessions", "device-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var envelope sessionEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Session)
	assert.Equal(t, "Strikers", envelope.Session.TeamName)

	rec = ts.do(t, http.MethodPost, "/api/v1/rooms/room-1/lot/select", "host-device", map[string]string{
		"playerId": created[0].ID.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/sessions/eligibility", "device-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var elig session.Eligibility
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &elig))
	assert.True(t, elig.CanBid)
	assert.Equal(t, int64(50), elig.NextBid)

	rec = ts.do(t, http.MethodPost, "/api/v1/sessions/bid", "device-1", map[string]interface{}{})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rm := decodeRoom(t, rec)
	require.NotNil(t, rm.CurrentBidTeam)
	assert.Equal(t, "Strikers", *rm.CurrentBidTeam)

	rec = ts.do(t, http.MethodDelete, "/api/v1/sessions", "device-1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/sessions", "device-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionRequiresDeviceHeader(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/v1/sessions", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
