// route registration
package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes registers every route in the spec's external-interfaces
// table onto e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.HTTPErrorHandler = httpErrorHandler
	e.Use(middleware.Recover())
	e.Use(requestLogger())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"ok": true})
	})

	e.POST("/rooms", s.CreateRoom)
	e.POST("/rooms/join-next", s.JoinNext)
	e.GET("/rooms/available-count", s.AvailableCount)

	e.POST("/queue/join", s.QueueJoin)
	e.POST("/queue/joinAll", s.QueueJoinAll)
	e.POST("/queue/leave", s.QueueLeave)
	e.POST("/queue/checkMatch", s.QueueCheckMatch)
	e.POST("/queue/heartbeat", s.QueueHeartbeat)
	e.GET("/queue/status", s.QueueStatus)
	e.GET("/queue/ws", s.QueueWebsocket)

	e.GET("/rooms/:id", s.GetRoom)
	e.GET("/rooms/:id/ws", s.RoomWebsocket)
	e.POST("/rooms/:id/join", s.JoinRoom)
	e.POST("/rooms/:id/start-bidding", s.StartBidding)
	e.POST("/rooms/:id/submit-bid", s.SubmitBid)
	e.POST("/rooms/:id/choose-color", s.ChooseColor)
	e.POST("/rooms/:id/move", s.MakeMove)
	e.POST("/rooms/:id/time-forfeit", s.TimeForfeit)
	e.POST("/rooms/:id/rematch", s.Rematch)
	e.POST("/rooms/:id/leave", s.LeaveRoom)
	e.POST("/rooms/:id/heartbeat", s.RoomHeartbeat)
}
