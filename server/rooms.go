// handlers for room creation, join-next, and per-room actions
package server

import (
	"net/http"

	"github.com/bena618/Armageddon-Chess-Backend/errs"
	"github.com/bena618/Armageddon-Chess-Backend/room"
	"github.com/labstack/echo/v4"
)

type createRoomRequest struct {
	RoomID           string `json:"roomId"`
	MaxPlayers       int    `json:"maxPlayers"`
	BidDurationMs    int64  `json:"bidDurationMs"`
	ChoiceDurationMs int64  `json:"choiceDurationMs"`
	MainTimeMs       int64  `json:"mainTimeMs"`
	Private          bool   `json:"private"`
}

type createRoomResponse struct {
	OK     bool       `json:"ok"`
	RoomID string     `json:"roomId"`
	Meta   room.State `json:"meta"`
}

// CreateRoom handles POST /rooms: allocate a roomId, instantiate its
// Actor, and initialize it.
func (s *Server) CreateRoom(c echo.Context) error {
	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}

	roomID := req.RoomID
	if roomID == "" {
		roomID = room.NewRoomID()
	}

	cfg := room.Config{
		RoomID:           roomID,
		MaxPlayers:       req.MaxPlayers,
		BidDurationMs:    withDefault(req.BidDurationMs, s.Config.BidDurationMs),
		ChoiceDurationMs: withDefault(req.ChoiceDurationMs, s.Config.ChoiceDurationMs),
		MainTimeMs:       withDefault(req.MainTimeMs, s.Config.MainTimeMs),
		Private:          req.Private,
	}

	a := s.Rooms.Create(s.ctx, roomID)
	st, err := a.Init(c.Request().Context(), cfg)
	if err != nil {
		s.Rooms.Remove(roomID)
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, createRoomResponse{OK: true, RoomID: roomID, Meta: st})
}

func withDefault(v, fallback int64) int64 {
	if v == 0 {
		return fallback
	}
	return v
}

// AvailableCount handles GET /rooms/available-count.
func (s *Server) AvailableCount(c echo.Context) error {
	entries, err := s.Index.List()
	if err != nil {
		return writeErr(c, err)
	}
	count := 0
	for _, e := range entries {
		if !e.Private && e.Phase == room.Lobby {
			count++
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "count": count})
}

type joinNextRequest struct {
	PlayerID   string `json:"playerId"`
	Name       string `json:"name"`
	MainTimeMs int64  `json:"mainTimeMs"`
}

// JoinNext handles POST /rooms/join-next: the legacy flow that lists the
// directory, filters public LOBBY rooms with a free slot and matching
// time control, and forwards a join to the first one found.
func (s *Server) JoinNext(c echo.Context) error {
	var req joinNextRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	if req.PlayerID == "" {
		return writeErr(c, errs.New(errs.PlayerIDRequired))
	}
	mainTimeMs := withDefault(req.MainTimeMs, s.Config.MainTimeMs)

	entries, err := s.Index.List()
	if err != nil {
		return writeErr(c, err)
	}
	for _, e := range entries {
		if e.Private || e.Phase != room.Lobby || e.MainTimeMs != mainTimeMs {
			continue
		}
		if len(e.Players) >= 2 {
			continue
		}
		a, ok := s.Rooms.Get(e.RoomID)
		if !ok {
			continue
		}
		st, err := a.Join(c.Request().Context(), req.PlayerID, req.Name)
		if err != nil {
			continue
		}
		return c.JSON(http.StatusOK, map[string]any{"ok": true, "roomId": e.RoomID, "room": st})
	}
	return writeErr(c, errs.New(errs.NotFound))
}

// lookupRoom resolves the {id} path param to its actor, loading from
// storage if it isn't in memory, and renders a 404 if neither exists.
func (s *Server) lookupRoom(c echo.Context) (*room.Actor, error) {
	id := c.Param("id")
	a, ok, err := s.Rooms.GetOrLoad(s.ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.New(errs.NotFound)
	}
	return a, nil
}

// GetRoom handles GET /rooms/{id}.
func (s *Server) GetRoom(c echo.Context) error {
	a, err := s.lookupRoom(c)
	if err != nil {
		return writeErr(c, err)
	}
	st, err := a.GetState(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

type playerIDRequest struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// JoinRoom handles POST /rooms/{id}/join.
func (s *Server) JoinRoom(c echo.Context) error {
	var req playerIDRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	a, err := s.lookupRoom(c)
	if err != nil {
		return writeErr(c, err)
	}
	st, err := a.Join(c.Request().Context(), req.PlayerID, req.Name)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// StartBidding handles POST /rooms/{id}/start-bidding.
func (s *Server) StartBidding(c echo.Context) error {
	var req playerIDRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	a, err := s.lookupRoom(c)
	if err != nil {
		return writeErr(c, err)
	}
	st, err := a.StartBidding(c.Request().Context(), req.PlayerID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

type submitBidRequest struct {
	PlayerID string `json:"playerId"`
	AmountMs int64  `json:"amountMs"`
}

// SubmitBid handles POST /rooms/{id}/submit-bid.
func (s *Server) SubmitBid(c echo.Context) error {
	var req submitBidRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	if req.PlayerID == "" {
		return writeErr(c, errs.New(errs.PlayerIDAndAmountReq))
	}
	a, err := s.lookupRoom(c)
	if err != nil {
		return writeErr(c, err)
	}
	st, err := a.SubmitBid(c.Request().Context(), req.PlayerID, req.AmountMs)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

type chooseColorRequest struct {
	PlayerID string     `json:"playerId"`
	Color    room.Color `json:"color"`
}

// ChooseColor handles POST /rooms/{id}/choose-color.
func (s *Server) ChooseColor(c echo.Context) error {
	var req chooseColorRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	a, err := s.lookupRoom(c)
	if err != nil {
		return writeErr(c, err)
	}
	st, err := a.ChooseColor(c.Request().Context(), req.PlayerID, req.Color)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

type makeMoveRequest struct {
	PlayerID string `json:"playerId"`
	Move     string `json:"move"`
}

// MakeMove handles POST /rooms/{id}/move.
func (s *Server) MakeMove(c echo.Context) error {
	var req makeMoveRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	a, err := s.lookupRoom(c)
	if err != nil {
		return writeErr(c, err)
	}
	st, err := a.MakeMove(c.Request().Context(), req.PlayerID, req.Move)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// TimeForfeit handles POST /rooms/{id}/time-forfeit.
func (s *Server) TimeForfeit(c echo.Context) error {
	var req playerIDRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	a, err := s.lookupRoom(c)
	if err != nil {
		return writeErr(c, err)
	}
	st, err := a.TimeForfeit(c.Request().Context(), req.PlayerID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

type rematchRequest struct {
	PlayerID string `json:"playerId"`
	Agree    bool   `json:"agree"`
}

// Rematch handles POST /rooms/{id}/rematch.
func (s *Server) Rematch(c echo.Context) error {
	var req rematchRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	a, err := s.lookupRoom(c)
	if err != nil {
		return writeErr(c, err)
	}
	st, err := a.Rematch(c.Request().Context(), req.PlayerID, req.Agree)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// LeaveRoom handles POST /rooms/{id}/leave.
func (s *Server) LeaveRoom(c echo.Context) error {
	var req playerIDRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	a, err := s.lookupRoom(c)
	if err != nil {
		return writeErr(c, err)
	}
	st, err := a.Leave(c.Request().Context(), req.PlayerID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// RoomHeartbeat handles POST /rooms/{id}/heartbeat.
func (s *Server) RoomHeartbeat(c echo.Context) error {
	var req playerIDRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	a, err := s.lookupRoom(c)
	if err != nil {
		return writeErr(c, err)
	}
	st, err := a.Heartbeat(c.Request().Context(), req.PlayerID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, st)
}
