package game

import (
	"sort"

	"github.com/rs/zerolog/log"
)

const (
	startAnnounceSeconds = 3
	startCooldownSeconds = 3
	intermediateTopSize  = 5
	podiumSize           = 3
)

// CreateRoom claims the single live room for this connection. Requires the
// shared room-creation secret; rejected while another room exists.
func (e *Engine) CreateRoom(connID, password string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess := e.sess
	if sess.Password != password {
		e.emitter.Emit(connID, EventError, "Bad Password")
		return
	}

	if sess.Manager != "" || sess.Room != "" {
		e.emitter.Emit(connID, EventError, "Already manager")
		return
	}

	room := generateRoomID()
	sess.Room = room
	sess.Manager = connID

	e.emitter.Join(room, connID)
	e.emitter.Emit(connID, EventInviteCode, room)
	log.Info().Str("room", room).Msg("new room created")
}

// KickPlayer removes a roster entry. Manager only; unknown player ids are
// ignored.
func (e *Engine) KickPlayer(connID, playerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess := e.sess
	if sess.Manager != connID {
		return
	}

	player := sess.findPlayer(playerID)
	if player == nil {
		return
	}

	e.removePlayerLocked(playerID)
	e.emitter.Leave(sess.Room, playerID)
	e.emitter.Emit(playerID, EventKick, nil)
	e.emitter.Emit(sess.Manager, EventPlayerKicked, playerID)
}

// SelectQuiz installs a quiz document, resolved by key through the quiz
// repository when no inline questions are sent. Manager only.
func (e *Engine) SelectQuiz(connID string, intent QuizIntent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess.Manager != connID {
		return
	}

	if err := e.installQuizLocked(intent); err != nil {
		log.Warn().Err(err).Str("genre", intent.Genre).Str("name", intent.Name).
			Msg("quiz lookup failed")
		e.emitter.Emit(connID, EventError, "Quiz not found")
		return
	}

	e.emitter.Emit(e.sess.Manager, EventQuizSelected, e.sess.Quiz)
	log.Info().Str("subject", e.sess.Subject).Msg("quiz selected")
}

// StartGame kicks off the announcement sequence and the first round. No-op
// if already started or no room exists; starting without a selected quiz is
// a user-visible error.
func (e *Engine) StartGame(connID string) {
	e.mu.Lock()

	sess := e.sess
	if sess.Started || sess.Room == "" {
		e.mu.Unlock()
		return
	}

	if len(sess.Questions) == 0 {
		e.emitter.Emit(connID, EventError, "Please select a quiz before starting the game")
		e.mu.Unlock()
		return
	}

	sess.Started = true
	room := sess.Room
	gen := e.gen
	e.emitter.Broadcast(room, EventStatus, Status{
		Name: StatusShowStart,
		Data: showStartData{Time: startAnnounceSeconds, Subject: sess.Subject},
	})
	e.mu.Unlock()

	go e.startSequence(gen, room)
}

// startSequence runs the fixed announcement delay and the visible countdown
// before the first round. It holds no lock across waits and abandons itself
// if the session was reset or aborted meanwhile.
func (e *Engine) startSequence(gen uint64, room string) {
	e.sleepSeconds(startAnnounceSeconds)

	e.mu.Lock()
	if !e.aliveLocked(gen) {
		e.mu.Unlock()
		return
	}
	e.emitter.Broadcast(room, EventStartCooldown, nil)
	e.mu.Unlock()

	e.countdown.Run(startCooldownSeconds, func(remaining int) {
		e.emitter.Broadcast(room, EventCooldown, remaining)
	})

	e.runRound(gen)
}

// NextQuestion advances the moderated game to the next round. Manager only;
// guarded against running past the last question.
func (e *Engine) NextQuestion(connID string) {
	e.mu.Lock()

	sess := e.sess
	if !sess.Started || sess.Manager != connID || !sess.hasNextQuestion() {
		e.mu.Unlock()
		return
	}

	sess.CurrentQuestion++
	gen := e.gen
	e.mu.Unlock()

	go e.runRound(gen)
}

// AbortQuiz short-circuits the current round to its settlement phase by
// aborting the active countdown. Manager only, and only while started.
func (e *Engine) AbortQuiz(connID string) {
	e.mu.Lock()
	if !e.sess.Started || e.sess.Manager != connID {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	e.countdown.Abort()
}

// ShowLeaderboard emits the intermediate top-5 while questions remain. After
// the final question it branches: solo sessions get a private performance
// report, moderated rooms get the podium and a full teardown. Finished
// scores are forwarded to the persistent leaderboard either way.
func (e *Engine) ShowLeaderboard(connID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess := e.sess
	if sess.Manager != "" && sess.Manager != connID {
		return
	}

	if sess.hasNextQuestion() {
		sorted := sortedByPoints(sess.Players)
		if len(sorted) > intermediateTopSize {
			sorted = sorted[:intermediateTopSize]
		}
		e.emitter.Broadcast(sess.Room, EventStatus, Status{
			Name: StatusShowLeaderboard,
			Data: leaderboardData{Leaderboard: sorted, IsIntermediate: true},
		})
		return
	}

	if sess.Solo() {
		e.soloReportLocked(connID)
		return
	}

	// Moderated finish: podium, persist scores, tear the session down.
	for _, p := range sess.Players {
		if p.Points > 0 {
			e.recordScore(p.Username, p.Points, e.quizLabelLocked())
		}
	}

	top := sortedByPoints(sess.Players)
	if len(top) > podiumSize {
		top = top[:podiumSize]
	}
	e.emitter.Broadcast(sess.Room, EventStatus, Status{
		Name: StatusFinish,
		Data: finishData{Subject: sess.Subject, Top: top},
	})
	e.resetLocked()
}

// soloReportLocked sends the requesting player their final performance
// report. A missing player record is logged and otherwise ignored.
func (e *Engine) soloReportLocked(connID string) {
	sess := e.sess
	player := sess.findPlayer(connID)
	if player == nil {
		log.Warn().Str("conn", connID).Msg("no player found for performance report")
		return
	}

	e.recordScore(player.Username, player.Points, e.quizLabelLocked())

	report := performanceReportData{
		PlayerStats: playerStats{
			CorrectAnswers: player.CorrectAnswers,
			TotalQuestions: len(sess.Questions),
			TotalTime:      player.TotalTime,
			Answers:        player.Answers,
			FinalScore:     player.Points,
		},
		QuizData: QuizIntent{
			Genre:     quizField(sess.Quiz, func(q *Quiz) string { return q.Genre }, "General"),
			Topic:     quizField(sess.Quiz, func(q *Quiz) string { return q.Topic }, "Knowledge"),
			Name:      quizField(sess.Quiz, func(q *Quiz) string { return q.Name }, "Quiz"),
			Questions: sess.Questions,
		},
	}
	e.emitter.Emit(connID, EventStatus, Status{Name: StatusShowPerformanceReport, Data: report})
}

func (e *Engine) quizLabelLocked() string {
	if e.sess.Quiz != nil && e.sess.Quiz.Name != "" {
		return e.sess.Quiz.Name
	}
	return "Unknown Quiz"
}

func (e *Engine) recordScore(username string, points int, label string) {
	if e.scores == nil {
		return
	}
	if err := e.scores.RecordScore(username, points, label); err != nil {
		log.Error().Err(err).Str("player", username).Msg("failed to record score")
	}
}

func quizField(q *Quiz, get func(*Quiz) string, fallback string) string {
	if q != nil {
		if v := get(q); v != "" {
			return v
		}
	}
	return fallback
}

// sortedByPoints returns the roster ordered by descending score without
// disturbing the session's slice.
func sortedByPoints(players []*Player) []*Player {
	sorted := make([]*Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})
	return sorted
}
