package game

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	minUsernameLen = 4
	maxUsernameLen = 20
	inviteCodeLen  = 6

	soloStartDelay = 500 * time.Millisecond
)

func validateUsername(username string) string {
	switch {
	case username == "":
		return "Username is required"
	case len(username) < minUsernameLen:
		return "Username cannot be less than 4 characters"
	case len(username) > maxUsernameLen:
		return "Username cannot exceed 20 characters"
	}
	return ""
}

func validateInviteCode(code string) string {
	switch {
	case code == "":
		return "Invite code is required"
	case len(code) != inviteCodeLen:
		return "Invalid invite code"
	}
	return ""
}

// CheckRoom answers whether an invite code refers to the live room. The
// result goes to the requesting connection only.
func (e *Engine) CheckRoom(connID, roomID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if msg := validateInviteCode(roomID); msg != "" {
		e.emitter.Emit(connID, EventError, msg)
		return
	}

	if e.sess.Room == "" || roomID != e.sess.Room {
		e.emitter.Emit(connID, EventError, "Room not found")
		return
	}

	e.emitter.Emit(connID, EventSuccessRoom, roomID)
}

// Join adds a connection to the roster. Moderated rooms lock out late joins
// once the game has started; solo sessions never do.
func (e *Engine) Join(connID string, intent JoinIntent) {
	e.mu.Lock()

	if msg := validateUsername(intent.Username); msg != "" {
		e.emitter.Emit(connID, EventError, msg)
		e.mu.Unlock()
		return
	}

	sess := e.sess
	if sess.Room == "" || intent.Room != sess.Room {
		e.emitter.Emit(connID, EventError, "Room not found")
		e.mu.Unlock()
		return
	}

	for _, p := range sess.Players {
		if p.Username == intent.Username {
			e.emitter.Emit(connID, EventError, "Username already exists")
			e.mu.Unlock()
			return
		}
	}

	if !sess.Solo() && sess.Started {
		e.emitter.Emit(connID, EventError, "Game already started")
		e.mu.Unlock()
		return
	}

	player := &Player{
		ID:       connID,
		Username: intent.Username,
		Room:     intent.Room,
	}
	log.Info().Str("username", player.Username).Str("room", player.Room).Msg("new player")

	e.emitter.Join(intent.Room, connID)
	e.emitter.BroadcastExcept(intent.Room, connID, EventNewPlayer, player)
	sess.Players = append(sess.Players, player)
	e.emitter.Emit(connID, EventSuccessJoin, nil)

	autoStart := sess.Solo() && !sess.Started && len(sess.Questions) > 0
	gen := e.gen
	e.mu.Unlock()

	// Solo sessions pace themselves: kick the game off shortly after the
	// sole player lands.
	if autoStart {
		go func() {
			e.clock.Sleep(soloStartDelay)
			e.mu.Lock()
			stale := e.gen != gen || e.sess.Started
			e.mu.Unlock()
			if !stale {
				e.StartGame(connID)
			}
		}()
	}
}

// CreateSolo synthesizes a self-paced room with no manager. Any lingering
// session is torn down first; last writer wins.
func (e *Engine) CreateSolo(connID string, intent QuizIntent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess.Room != "" || e.sess.Started {
		log.Info().Msg("resetting existing game state for new solo room")
		e.resetLocked()
	}

	if err := e.installQuizLocked(intent); err != nil {
		log.Warn().Err(err).Str("genre", intent.Genre).Str("name", intent.Name).
			Msg("solo quiz lookup failed")
		e.emitter.Emit(connID, EventError, "Quiz not found")
		return
	}

	room := generateRoomID()
	e.sess.Room = room
	e.sess.Manager = ""

	e.emitter.Emit(connID, EventSoloRoomCreated, room)
	log.Info().Str("room", room).Str("subject", e.sess.Subject).Msg("solo room created")
}

// SelectedAnswer records a player's submission for the current question.
// Unknown connections and duplicate submissions are silently ignored; when
// the whole roster has answered, the answer window completes early.
func (e *Engine) SelectedAnswer(connID string, answer int) {
	e.mu.Lock()

	sess := e.sess
	player := sess.findPlayer(connID)
	question, ok := sess.currentQuestion()
	if player == nil || !ok || !sess.Started {
		e.mu.Unlock()
		return
	}

	if sess.findPending(connID) != nil {
		e.mu.Unlock()
		return
	}

	now := e.clock.Now()
	timeTaken := now.Sub(sess.RoundStartedAt).Seconds()
	isCorrect := answer == question.Solution
	points := timeToPoints(sess.RoundStartedAt, question.Time, now)

	awarded := 0
	if isCorrect {
		awarded = points
		player.CorrectAnswers++
	}
	player.Answers = append(player.Answers, AnswerEvent{
		QuestionIndex: sess.CurrentQuestion,
		Selected:      answer,
		Correct:       question.Solution,
		IsCorrect:     isCorrect,
		TimeTaken:     timeTaken,
		Points:        awarded,
		Category:      question.Category,
		Difficulty:    question.Difficulty,
	})
	player.TotalTime += timeTaken

	sess.PendingAnswers = append(sess.PendingAnswers, pendingAnswer{
		playerID: connID,
		answer:   answer,
		points:   points,
	})

	waitText := "Waiting for the players to answer"
	if sess.Solo() {
		waitText = "Processing your answer..."
	}
	e.emitter.Emit(connID, EventStatus, Status{Name: StatusWait, Data: waitData{Text: waitText}})
	e.emitter.BroadcastExcept(sess.Room, connID, EventPlayerAnswer, len(sess.PendingAnswers))

	allAnswered := len(sess.PendingAnswers) == len(sess.Players)
	e.mu.Unlock()

	if allAnswered {
		e.countdown.Abort()
	}
}
