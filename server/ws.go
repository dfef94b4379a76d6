// websocket upgrade handlers for the per-room subscriber stream and the
// IndexActor's queue-status stream, following the same Client/send-channel/
// WritePump shape as the league-draft server's websocket.Client.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/errs"
	"github.com/bena618/Armageddon-Chess-Backend/index"
	"github.com/bena618/Armageddon-Chess-Backend/room"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// connSink adapts a *websocket.Conn into both room.Sink and index.Sink: a
// buffered send channel plus a writer goroutine, so a slow or dead client
// never blocks the room/index mailbox goroutine that called Send.
type connSink struct {
	conn *websocket.Conn
	send chan []byte
}

func newConnSink(conn *websocket.Conn) *connSink {
	return &connSink{conn: conn, send: make(chan []byte, 16)}
}

// enqueue queues a frame for writePump, backing both Send (room.Sink) and
// SendQueue (index.Sink via indexSink). Returns an error (causing the
// caller to drop this subscriber) if the outbound buffer is full — a
// client that can't keep up is a dead client.
func (c *connSink) enqueue(frame []byte) error {
	select {
	case c.send <- frame:
		return nil
	default:
		return errs.New(errs.InternalError)
	}
}

func (c *connSink) Send(upd room.Update) error {
	blob, err := json.Marshal(upd)
	if err != nil {
		return err
	}
	return c.enqueue(blob)
}

func (c *connSink) SendQueue(upd index.Update) error {
	blob, err := json.Marshal(upd)
	if err != nil {
		return err
	}
	return c.enqueue(blob)
}

// writePump drains the send channel onto the socket until it closes or a
// write fails, and pings on an interval to keep intermediaries from
// timing the connection out.
func (c *connSink) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains and discards inbound frames, just enough to notice the
// client disconnecting (this stream is server→client only).
func (c *connSink) readPump() {
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// indexSink adapts connSink to index.Sink — connSink.Send already
// satisfies room.Sink directly, but index.Update needs its own method
// name (SendQueue) since a single type can't have two Send overloads.
type indexSink struct{ *connSink }

func (c indexSink) Send(upd index.Update) error { return c.connSink.SendQueue(upd) }

// RoomWebsocket handles GET /rooms/{id}/ws?playerId=…: upgrades,
// subscribes, sends an "init" frame with the snapshot taken at subscribe
// time, and pumps updates until the client disconnects.
func (s *Server) RoomWebsocket(c echo.Context) error {
	a, err := s.lookupRoom(c)
	if err != nil {
		return writeErr(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Warn("room websocket upgrade failed", "room_id", c.Param("id"), "error", err)
		return nil
	}
	sink := newConnSink(conn)
	go sink.writePump()

	st, subID, err := a.Subscribe(c.Request().Context(), sink)
	if err != nil {
		slog.Warn("room subscribe failed", "room_id", c.Param("id"), "error", err)
		conn.Close()
		return nil
	}
	defer a.Unsubscribe(c.Request().Context(), subID)

	if initBlob, merr := json.Marshal(room.Update{Type: "init", Room: st}); merr == nil {
		_ = sink.enqueue(initBlob)
	}

	sink.readPump()
	return nil
}

// QueueWebsocket handles the IndexActor's queue-status socket: clients
// receive a queue_update frame whenever any queue or room directory
// entry changes.
func (s *Server) QueueWebsocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Warn("queue websocket upgrade failed", "error", err)
		return nil
	}
	sink := newConnSink(conn)
	go sink.writePump()

	subID, err := s.Index.Subscribe(indexSink{sink})
	if err != nil {
		slog.Warn("queue subscribe failed", "error", err)
		conn.Close()
		return nil
	}
	defer s.Index.Unsubscribe(subID)

	sink.readPump()
	return nil
}
