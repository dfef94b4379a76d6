// handlers for the matchmaking queue
package server

import (
	"net/http"

	"github.com/bena618/Armageddon-Chess-Backend/errs"
	"github.com/bena618/Armageddon-Chess-Backend/index"
	"github.com/bena618/Armageddon-Chess-Backend/room"
	"github.com/labstack/echo/v4"
)

type queueJoinRequest struct {
	PlayerID   string `json:"playerId"`
	Name       string `json:"name"`
	MainTimeMs int64  `json:"mainTimeMs"`
}

// QueueJoin handles POST /queue/join: addToQueue, and if that produces a
// match directive, create the room and drain both players from every
// bucket before responding.
func (s *Server) QueueJoin(c echo.Context) error {
	var req queueJoinRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	if req.PlayerID == "" {
		return writeErr(c, errs.New(errs.PlayerIDRequired))
	}
	mainTimeMs := withDefault(req.MainTimeMs, s.Config.MainTimeMs)

	directive, err := s.Index.AddToQueue(req.PlayerID, req.Name, mainTimeMs)
	if err != nil {
		return writeErr(c, err)
	}
	return s.respondToDirective(c, directive, req.PlayerID, mainTimeMs)
}

type queueJoinAllRequest struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// QueueJoinAll handles POST /queue/joinAll.
func (s *Server) QueueJoinAll(c echo.Context) error {
	var req queueJoinAllRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	if req.PlayerID == "" {
		return writeErr(c, errs.New(errs.PlayerIDRequired))
	}

	directive, err := s.Index.JoinAll(req.PlayerID, req.Name)
	if err != nil {
		return writeErr(c, err)
	}
	// joinAll enqueues into every configured bucket at once, so there is no
	// single mainTimeMs to report a position for; the server's default
	// bucket is the representative one, same as queue/join falls back to
	// when the caller doesn't name a time control.
	return s.respondToDirective(c, directive, req.PlayerID, s.Config.MainTimeMs)
}

// respondToDirective implements the Router's composite queue-join flow:
// on a match directive, create a RoomActor seeded with both queued
// players and remove them from every bucket; otherwise report the
// player's position in the named mainTimeMs bucket.
func (s *Server) respondToDirective(c echo.Context, directive *index.MatchDirective, playerID string, mainTimeMs int64) error {
	if directive == nil {
		pos, err := s.Index.QueuePosition(playerID, mainTimeMs)
		if err != nil {
			return writeErr(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"ok": true, "queued": true, "queuePosition": pos})
	}

	roomID := room.NewRoomID()
	seed := []room.Player{
		{ID: directive.QueuedPlayers[0].PlayerID, Name: directive.QueuedPlayers[0].Name, JoinedAt: directive.QueuedPlayers[0].JoinedAt},
		{ID: directive.QueuedPlayers[1].PlayerID, Name: directive.QueuedPlayers[1].Name, JoinedAt: directive.QueuedPlayers[1].JoinedAt},
	}
	cfg := room.Config{
		RoomID:           roomID,
		MainTimeMs:       directive.MainTimeMs,
		BidDurationMs:    s.Config.BidDurationMs,
		ChoiceDurationMs: s.Config.ChoiceDurationMs,
		SeedPlayers:      seed,
	}

	a := s.Rooms.Create(s.ctx, roomID)
	st, err := a.Init(c.Request().Context(), cfg)
	if err != nil {
		s.Rooms.Remove(roomID)
		return writeErr(c, err)
	}

	if err := s.Index.RemoveFromAllQueues(seed[0].ID, seed[1].ID); err != nil {
		return writeErr(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"ok": true, "roomId": roomID, "room": st})
}

type queuePlayerIDRequest struct {
	PlayerID string `json:"playerId"`
}

// QueueLeave handles POST /queue/leave.
func (s *Server) QueueLeave(c echo.Context) error {
	var req queuePlayerIDRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	if err := s.Index.RemoveFromAllQueues(req.PlayerID); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// QueueCheckMatch handles POST /queue/checkMatch.
func (s *Server) QueueCheckMatch(c echo.Context) error {
	var req queuePlayerIDRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	res, err := s.Index.CheckMatch(req.PlayerID)
	if err != nil {
		return writeErr(c, err)
	}
	if res.Matched {
		return c.JSON(http.StatusOK, map[string]any{"ok": true, "matched": true, "roomId": res.RoomID})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "matched": false, "inQueue": res.InQueue})
}

// QueueHeartbeat handles POST /queue/heartbeat.
func (s *Server) QueueHeartbeat(c echo.Context) error {
	var req queuePlayerIDRequest
	if err := c.Bind(&req); err != nil {
		return writeErr(c, errs.New(errs.JSONSyntaxError))
	}
	if err := s.Index.Heartbeat(req.PlayerID); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// QueueStatus handles GET /queue/status.
func (s *Server) QueueStatus(c echo.Context) error {
	estimates, err := s.Index.Estimates()
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "estimates": estimates})
}
