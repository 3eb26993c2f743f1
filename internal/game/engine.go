package game

import (
	"encoding/json"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Emitter is the room fan-out surface the engine drives. The websocket hub
// implements it in production; tests substitute a recorder.
type Emitter interface {
	// Emit sends privately to one connection.
	Emit(connID, event string, data any)
	// Broadcast sends to every member of a room.
	Broadcast(room, event string, data any)
	// BroadcastExcept sends to every room member but the named connection.
	BroadcastExcept(room, exceptID, event string, data any)
	// Join subscribes a connection to a room's broadcasts.
	Join(room, connID string)
	// Leave removes a connection from a room.
	Leave(room, connID string)
}

// QuizSource resolves quiz documents by key for manager:selectQuiz and
// player:createSolo.
type QuizSource interface {
	Lookup(genre, topic, name string) (*Quiz, error)
}

// ScoreRecorder persists finished-game scores to the cross-session
// leaderboard.
type ScoreRecorder interface {
	RecordScore(player string, score int, quizLabel string) error
}

// Engine owns the single live session. All state mutations happen under mu;
// the mutex is released across every timed wait, and each resumption point
// re-checks the session generation and started flag before touching state
// (a reset during a wait must strand the stale continuation).
type Engine struct {
	clock     clockwork.Clock
	emitter   Emitter
	quizzes   QuizSource
	scores    ScoreRecorder
	countdown *Countdown
	password  string

	mu   sync.Mutex
	sess *Session
	gen  uint64
}

func NewEngine(password string, clock clockwork.Clock, emitter Emitter, quizzes QuizSource, scores ScoreRecorder) *Engine {
	return &Engine{
		clock:     clock,
		emitter:   emitter,
		quizzes:   quizzes,
		scores:    scores,
		countdown: NewCountdown(clock),
		password:  password,
		sess:      NewSession(password),
	}
}

// Dispatch routes one inbound intent to its handler. It is the error
// boundary for the whole core: a panicking handler is converted into a
// private error emission instead of taking the session down.
func (e *Engine) Dispatch(connID, event string, data json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("conn", connID).Str("event", event).Any("panic", r).
				Msg("recovered from handler panic")
			e.emitter.Emit(connID, EventError, "Something went wrong")
		}
	}()

	switch event {
	case IntentCheckRoom:
		var roomID string
		if err := json.Unmarshal(data, &roomID); err != nil {
			e.emitter.Emit(connID, EventError, "Invalid invite code")
			return
		}
		e.CheckRoom(connID, roomID)
	case IntentJoin:
		var intent JoinIntent
		if err := json.Unmarshal(data, &intent); err != nil {
			e.emitter.Emit(connID, EventError, "Invalid join request")
			return
		}
		e.Join(connID, intent)
	case IntentCreateSolo:
		var intent QuizIntent
		if err := json.Unmarshal(data, &intent); err != nil {
			e.emitter.Emit(connID, EventError, "Invalid quiz data")
			return
		}
		e.CreateSolo(connID, intent)
	case IntentSelectedAnswer:
		var answer int
		if err := json.Unmarshal(data, &answer); err != nil {
			e.emitter.Emit(connID, EventError, "Invalid answer")
			return
		}
		e.SelectedAnswer(connID, answer)
	case IntentCreateRoom:
		var password string
		if err := json.Unmarshal(data, &password); err != nil {
			e.emitter.Emit(connID, EventError, "Bad Password")
			return
		}
		e.CreateRoom(connID, password)
	case IntentSelectQuiz:
		var intent QuizIntent
		if err := json.Unmarshal(data, &intent); err != nil {
			e.emitter.Emit(connID, EventError, "Invalid quiz data")
			return
		}
		e.SelectQuiz(connID, intent)
	case IntentKickPlayer:
		var playerID string
		if err := json.Unmarshal(data, &playerID); err != nil {
			return
		}
		e.KickPlayer(connID, playerID)
	case IntentStartGame:
		e.StartGame(connID)
	case IntentNextQuestion:
		e.NextQuestion(connID)
	case IntentAbortQuiz:
		e.AbortQuiz(connID)
	case IntentShowLeaderboard:
		e.ShowLeaderboard(connID)
	default:
		log.Debug().Str("conn", connID).Str("event", event).Msg("unknown event")
	}
}

// Disconnect is the teardown transition for a dropped connection: a manager
// leaving resets the whole session, the last solo player leaving does the
// same, and any other player is just removed from the roster.
func (e *Engine) Disconnect(connID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess := e.sess
	if sess.Manager == connID {
		log.Info().Str("room", sess.Room).Msg("manager disconnected, resetting game")
		e.emitter.Broadcast(sess.Room, EventReset, nil)
		e.resetLocked()
		return
	}

	player := sess.findPlayer(connID)
	if player == nil {
		return
	}

	e.removePlayerLocked(connID)

	if sess.Solo() && len(sess.Players) == 0 {
		log.Info().Str("room", sess.Room).Msg("solo player disconnected, resetting game")
		e.resetLocked()
		return
	}

	if sess.Manager != "" {
		e.emitter.Emit(sess.Manager, EventRemovePlayer, player.ID)
	}
}

// resetLocked reinitializes the session to its empty form and bumps the
// generation counter so stale delayed continuations abandon themselves.
// Idempotent: resetting an already-empty session is harmless.
func (e *Engine) resetLocked() {
	e.sess = NewSession(e.password)
	e.gen++
	e.countdown.Abort()
}

// aliveLocked reports whether a continuation started at generation gen may
// still act on the session.
func (e *Engine) aliveLocked(gen uint64) bool {
	return e.gen == gen && e.sess.Started
}

func (e *Engine) removePlayerLocked(connID string) {
	players := e.sess.Players[:0]
	for _, p := range e.sess.Players {
		if p.ID != connID {
			players = append(players, p)
		}
	}
	e.sess.Players = players
}

// installQuizLocked resolves the intent into a quiz document, either from
// the inline questions or through the repository, and installs it.
func (e *Engine) installQuizLocked(intent QuizIntent) error {
	quiz := &Quiz{
		Genre:     intent.Genre,
		Topic:     intent.Topic,
		Name:      intent.Name,
		Questions: intent.Questions,
	}
	if len(quiz.Questions) == 0 {
		resolved, err := e.quizzes.Lookup(intent.Genre, intent.Topic, intent.Name)
		if err != nil {
			return err
		}
		quiz = resolved
	}

	e.sess.Quiz = quiz
	e.sess.Subject = quiz.Genre + " - " + quiz.Name
	e.sess.Questions = quiz.Questions
	return nil
}
