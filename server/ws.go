package server

import (
	"net/http"
	"time"

	"github.com/InvArch/invarch-bridge-service/bridgeop"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	maxMessageSize = 512
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	statusBuffer   = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// StreamOperation upgrades to a WebSocket and sends the current status of
// the operation followed by every status change. The stream ends after a
// terminal status.
func (s *BridgeService) StreamOperation(c *gin.Context) {
	entry, err := s.Registry.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	// subscribe before reading the current status so no change is lost
	ch := make(chan bridgeop.StatusChange, statusBuffer)
	sub := entry.op.SubscribeStatus(ch)
	defer sub.Unsubscribe()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("failed to upgrade websocket connection: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	// the reader only notices the client going away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(v interface{}) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(v); err != nil {
			log.Debugf("websocket write error: %v", err)
			return false
		}
		return true
	}

	view := entry.view()
	if !send(view) || view.State.Terminal() {
		closeStream(conn)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case change := <-ch:
			if !send(change) {
				return
			}
			if change.Status != bridgeop.StatusPending {
				closeStream(conn)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-sub.Err():
			return
		case <-gone:
			return
		case <-s.ctx.Done():
			closeStream(conn)
			return
		}
	}
}

func closeStream(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
