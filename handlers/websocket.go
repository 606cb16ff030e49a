package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"irrigation-server/usecases"
	"irrigation-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler exposes the live reading feed to dashboard clients.
type WSHandler struct {
	mgr *ws.Manager
}

func NewWSHandler(mgr *ws.Manager) *WSHandler {
	return &WSHandler{mgr: mgr}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleReadingsWS upgrades the connection and keeps it registered
// until the client goes away. The read loop exists only to notice the
// close; all traffic is server -> client.
func (h *WSHandler) HandleReadingsWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	id := h.mgr.Register(conn)
	log.Printf("feed subscriber connected (%d active)", h.mgr.Count())

	defer func() {
		h.mgr.Unregister(id)
		log.Printf("feed subscriber disconnected (%d active)", h.mgr.Count())
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("feed read error: %v", err)
			}
			return
		}
	}
}

// BroadcastReading implements usecases.ReadingBroadcaster.
func (h *WSHandler) BroadcastReading(event usecases.ReadingEvent) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":            "sensor_reading",
		"controllerUid":   event.ControllerUID,
		"subzoneIndex":    event.SubzoneIndex,
		"moisturePercent": event.MoisturePercent,
		"rainDetected":    event.RainDetected,
		"recordedAt":      event.RecordedAt,
	})
	if err != nil {
		log.Printf("failed to encode reading event: %v", err)
		return
	}
	h.mgr.Broadcast(payload)
}
