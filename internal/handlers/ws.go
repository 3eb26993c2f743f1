package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Publisher-notfound/Rahoot/internal/game"
	"github.com/Publisher-notfound/Rahoot/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSHandler is the session gateway: it upgrades connections, assigns them an
// identity, and routes inbound intents into the game engine.
type WSHandler struct {
	hub    *ws.Hub
	engine *game.Engine
}

func NewWSHandler(hub *ws.Hub, engine *game.Engine) *WSHandler {
	return &WSHandler{hub: hub, engine: engine}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// HandleWebSocket godoc
// @Summary      Game event channel
// @Description  Bidirectional JSON event channel for players and managers
// @Tags         websocket
// @Router       /ws [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade error")
		return
	}

	connID := uuid.NewString()
	h.hub.Register(connID, conn)
	log.Info().Str("conn", connID).Msg("user connected")

	defer func() {
		h.hub.Unregister(connID)
		h.engine.Disconnect(connID)
		log.Info().Str("conn", connID).Msg("user disconnected")
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var env inboundEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			h.hub.Emit(connID, game.EventError, "Malformed event")
			continue
		}

		h.engine.Dispatch(connID, env.Event, env.Data)
	}
}
