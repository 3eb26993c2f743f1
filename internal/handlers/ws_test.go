package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Publisher-notfound/Rahoot/internal/game"
	"github.com/Publisher-notfound/Rahoot/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuizSource struct{}

func (stubQuizSource) Lookup(genre, topic, name string) (*game.Quiz, error) {
	return &game.Quiz{Genre: genre, Topic: topic, Name: name}, nil
}

type stubScoreRecorder struct{}

func (stubScoreRecorder) RecordScore(player string, score int, quizLabel string) error {
	return nil
}

func newGatewayServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := ws.NewHub()
	engine := game.NewEngine("PASSWORD", clockwork.NewRealClock(), hub, stubQuizSource{}, stubScoreRecorder{})

	router := gin.New()
	router.GET("/ws", NewWSHandler(hub, engine).HandleWebSocket)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func dialGateway(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

type outboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func sendIntent(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{"event": event, "data": data}))
}

// readEvent drains the connection until the named event arrives.
func readEvent(t *testing.T, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var env outboundEnvelope
		require.NoError(t, conn.ReadJSON(&env), "waiting for %s", event)
		if env.Event == event {
			return env.Data
		}
	}
}

func TestGatewayRejectsMalformedFrames(t *testing.T) {
	srv := newGatewayServer(t)
	conn := dialGateway(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	var msg string
	require.NoError(t, json.Unmarshal(readEvent(t, conn, game.EventError), &msg))
	assert.Equal(t, "Malformed event", msg)
}

func TestGatewayCreateRoom(t *testing.T) {
	srv := newGatewayServer(t)
	conn := dialGateway(t, srv)

	sendIntent(t, conn, game.IntentCreateRoom, "PASSWORD")

	var room string
	require.NoError(t, json.Unmarshal(readEvent(t, conn, game.EventInviteCode), &room))
	assert.Len(t, room, 6)
}

func TestGatewayValidatesInviteCode(t *testing.T) {
	srv := newGatewayServer(t)
	conn := dialGateway(t, srv)

	sendIntent(t, conn, game.IntentCheckRoom, "123")

	var msg string
	require.NoError(t, json.Unmarshal(readEvent(t, conn, game.EventError), &msg))
	assert.Equal(t, "Invalid invite code", msg)
}

func TestGatewayJoinFlow(t *testing.T) {
	srv := newGatewayServer(t)
	manager := dialGateway(t, srv)
	player := dialGateway(t, srv)

	sendIntent(t, manager, game.IntentCreateRoom, "PASSWORD")
	var room string
	require.NoError(t, json.Unmarshal(readEvent(t, manager, game.EventInviteCode), &room))

	sendIntent(t, player, game.IntentJoin, game.JoinIntent{Username: "alice", Room: room})
	readEvent(t, player, game.EventSuccessJoin)

	var joined game.Player
	require.NoError(t, json.Unmarshal(readEvent(t, manager, game.EventNewPlayer), &joined))
	assert.Equal(t, "alice", joined.Username)
	assert.Equal(t, room, joined.Room)
}

func TestGatewayDisconnectResetsManagedRoom(t *testing.T) {
	srv := newGatewayServer(t)
	manager := dialGateway(t, srv)
	player := dialGateway(t, srv)

	sendIntent(t, manager, game.IntentCreateRoom, "PASSWORD")
	var room string
	require.NoError(t, json.Unmarshal(readEvent(t, manager, game.EventInviteCode), &room))

	sendIntent(t, player, game.IntentJoin, game.JoinIntent{Username: "alice", Room: room})
	readEvent(t, player, game.EventSuccessJoin)

	require.NoError(t, manager.Close())

	readEvent(t, player, game.EventReset)
}
