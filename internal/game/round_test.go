package game

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// advanceUntil steps the fake clock in half-second increments until cond
// holds, yielding real time between steps so the engine's goroutines can
// reach their next wait.
func advanceUntil(t *testing.T, clock *clockwork.FakeClock, cond func() bool, desc string) {
	t.Helper()
	for i := 0; i < 400; i++ {
		if cond() {
			return
		}
		clock.Advance(500 * time.Millisecond)
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", desc)
}

// waitUntil polls for cond without moving the clock, for transitions that
// need no virtual time.
func waitUntil(t *testing.T, cond func() bool, desc string) {
	t.Helper()
	for i := 0; i < 500; i++ {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", desc)
}

func TestSoloGameFullFlow(t *testing.T) {
	engine, emitter, clock, scores := newTestEngine(t)

	engine.CreateSolo("p1", QuizIntent{
		Genre: "Science",
		Topic: "Physics",
		Name:  "Mechanics",
		Questions: []Question{{
			Prompt:   "What is the SI unit of force?",
			Answers:  []string{"Joule", "Newton", "Watt", "Pascal"},
			Solution: 1,
			Time:     10,
			Cooldown: 1,
		}},
	})
	evt, ok := emitter.find("p1", EventSoloRoomCreated)
	require.True(t, ok)
	room, _ := evt.data.(string)
	require.Len(t, room, 6)

	engine.Join("p1", JoinIntent{Username: "alice", Room: room})
	_, ok = emitter.find("p1", EventSuccessJoin)
	require.True(t, ok)

	// The self-start delay, start announcement, and visible countdown all run
	// on the clock.
	advanceUntil(t, clock, func() bool {
		return emitter.statusBroadcastSeen(room, StatusShowStart)
	}, "start announcement")
	advanceUntil(t, clock, func() bool {
		return emitter.broadcastSeen(room, EventStartCooldown)
	}, "visible countdown")
	advanceUntil(t, clock, func() bool {
		return emitter.statusBroadcastSeen(room, StatusShowPrepared)
	}, "prepared phase")
	assert.True(t, emitter.broadcastSeen(room, EventUpdateQuestion))

	advanceUntil(t, clock, func() bool {
		return emitter.statusBroadcastSeen(room, StatusShowQuestion)
	}, "question reveal")
	advanceUntil(t, clock, func() bool {
		return emitter.statusBroadcastSeen(room, StatusSelectAnswer)
	}, "answer window")

	// Let the round goroutine enter its countdown before answering. The sole
	// player answering completes the window early, so settlement needs no
	// more virtual time.
	time.Sleep(10 * time.Millisecond)
	clock.Advance(1 * time.Second)
	engine.SelectedAnswer("p1", 1)

	waitUntil(t, func() bool {
		_, ok := emitter.lastStatus("p1", StatusShowResult)
		return ok
	}, "round result")

	result, _ := emitter.lastStatus("p1", StatusShowResult)
	data, ok := result.Data.(showResultData)
	require.True(t, ok)
	assert.True(t, data.Correct)
	assert.Equal(t, "Nice !", data.Message)
	assert.Equal(t, 1, data.Rank)
	assert.Empty(t, data.AheadOfMe)
	assert.Greater(t, data.Points, 800, "an answer this fast keeps most of the score")
	assert.Equal(t, data.Points, data.MyPoints)

	// Ask for the final report before the teardown delay elapses.
	engine.ShowLeaderboard("p1")
	report, ok := emitter.lastStatus("p1", StatusShowPerformanceReport)
	require.True(t, ok)
	stats, ok := report.Data.(performanceReportData)
	require.True(t, ok)
	assert.Equal(t, 1, stats.PlayerStats.CorrectAnswers)
	assert.Equal(t, 1, stats.PlayerStats.TotalQuestions)
	assert.Equal(t, data.MyPoints, stats.PlayerStats.FinalScore)
	assert.Equal(t, "Science", stats.QuizData.Genre)
	assert.Equal(t, []string{"alice"}, scores.recorded())

	// The last question's podium goes straight to the sole player, then the
	// session tears itself down.
	advanceUntil(t, clock, func() bool {
		_, ok := emitter.lastStatus("p1", StatusFinish)
		return ok
	}, "finish podium")

	advanceUntil(t, clock, func() bool {
		engine.mu.Lock()
		defer engine.mu.Unlock()
		return engine.sess.Room == ""
	}, "session teardown")

	engine.Join("p2", JoinIntent{Username: "boris", Room: room})
	msg, ok := emitter.lastError("p2")
	require.True(t, ok)
	assert.Equal(t, "Room not found", msg)
}

func TestAbortQuizShortCircuitsAnswerWindow(t *testing.T) {
	engine, emitter, clock, _ := newTestEngine(t)
	room := createModeratedRoom(t, engine, emitter, "mgr")
	engine.SelectQuiz("mgr", QuizIntent{Questions: []Question{{
		Prompt:   "Largest planet?",
		Answers:  []string{"Mars", "Venus", "Jupiter", "Saturn"},
		Solution: 2,
		Time:     60,
		Cooldown: 1,
	}}})
	engine.Join("p1", JoinIntent{Username: "alice", Room: room})

	engine.StartGame("mgr")
	advanceUntil(t, clock, func() bool {
		return emitter.statusBroadcastSeen(room, StatusSelectAnswer)
	}, "answer window")

	// Nobody has answered; the manager cuts the window short.
	time.Sleep(10 * time.Millisecond)
	engine.AbortQuiz("mgr")

	waitUntil(t, func() bool {
		_, ok := emitter.lastStatus("p1", StatusShowResult)
		return ok
	}, "round result")

	result, _ := emitter.lastStatus("p1", StatusShowResult)
	data, ok := result.Data.(showResultData)
	require.True(t, ok)
	assert.False(t, data.Correct)
	assert.Equal(t, "Too bad", data.Message)
	assert.Zero(t, data.Points)

	// The manager's aggregate for a silent room is empty.
	responses, ok := emitter.lastStatus("mgr", StatusShowResponses)
	require.True(t, ok)
	tally, ok := responses.Data.(showResponsesData)
	require.True(t, ok)
	assert.Empty(t, tally.Responses)
}

func TestNextQuestionAdvancesModeratedGame(t *testing.T) {
	engine, emitter, clock, _ := newTestEngine(t)
	room := createModeratedRoom(t, engine, emitter, "mgr")
	q := testQuestion()
	engine.SelectQuiz("mgr", QuizIntent{Questions: []Question{q, q}})
	engine.Join("p1", JoinIntent{Username: "alice", Room: room})

	engine.StartGame("mgr")
	advanceUntil(t, clock, func() bool {
		return emitter.statusBroadcastSeen(room, StatusSelectAnswer)
	}, "first answer window")

	time.Sleep(10 * time.Millisecond)
	engine.SelectedAnswer("p1", q.Solution)
	waitUntil(t, func() bool {
		_, ok := emitter.lastStatus("p1", StatusShowResult)
		return ok
	}, "first round result")

	progressSeen := func(current int) bool {
		emitter.mu.Lock()
		defer emitter.mu.Unlock()
		for _, e := range emitter.events {
			if e.room != room || e.event != EventUpdateQuestion {
				continue
			}
			if data, ok := e.data.(updateQuestionData); ok && data.Current == current {
				return true
			}
		}
		return false
	}
	require.True(t, progressSeen(1))
	require.False(t, progressSeen(2))

	engine.NextQuestion("mgr")
	waitUntil(t, func() bool { return progressSeen(2) }, "second round announcement")

	engine.mu.Lock()
	assert.Equal(t, 1, engine.sess.CurrentQuestion)
	assert.Empty(t, engine.sess.PendingAnswers)
	engine.mu.Unlock()
}

func TestResetDuringWaitStrandsStaleContinuation(t *testing.T) {
	engine, emitter, clock, _ := newTestEngine(t)
	room := createModeratedRoom(t, engine, emitter, "mgr")
	engine.SelectQuiz("mgr", QuizIntent{Questions: []Question{testQuestion()}})
	engine.Join("p1", JoinIntent{Username: "alice", Room: room})

	engine.StartGame("mgr")
	advanceUntil(t, clock, func() bool {
		return emitter.statusBroadcastSeen(room, StatusShowPrepared)
	}, "prepared phase")

	// The manager drops mid-round; the delayed continuation must notice and
	// go quiet instead of revealing the question of a dead session.
	engine.Disconnect("mgr")
	require.True(t, emitter.broadcastSeen(room, EventReset))

	for i := 0; i < 20; i++ {
		clock.Advance(time.Second)
		time.Sleep(2 * time.Millisecond)
	}
	assert.False(t, emitter.statusBroadcastSeen(room, StatusShowQuestion))
}

func TestSettleRanksPlayersAndClearsPending(t *testing.T) {
	engine, emitter, _, _ := newTestEngine(t)
	room := createModeratedRoom(t, engine, emitter, "mgr")
	q := testQuestion()
	engine.SelectQuiz("mgr", QuizIntent{Questions: []Question{q}})
	engine.Join("p1", JoinIntent{Username: "alice", Room: room})
	engine.Join("p2", JoinIntent{Username: "boris", Room: room})
	engine.Join("p3", JoinIntent{Username: "carol", Room: room})

	engine.mu.Lock()
	engine.sess.PendingAnswers = []pendingAnswer{
		{playerID: "p1", answer: q.Solution, points: 700},
		{playerID: "p2", answer: q.Solution, points: 900},
		{playerID: "p3", answer: 3, points: 950},
	}
	engine.settleLocked(q)
	engine.mu.Unlock()

	first, ok := emitter.lastStatus("p2", StatusShowResult)
	require.True(t, ok)
	fast := first.Data.(showResultData)
	assert.Equal(t, 1, fast.Rank)
	assert.Equal(t, 900, fast.MyPoints)
	assert.Empty(t, fast.AheadOfMe)

	second, ok := emitter.lastStatus("p1", StatusShowResult)
	require.True(t, ok)
	slow := second.Data.(showResultData)
	assert.Equal(t, 2, slow.Rank)
	assert.Equal(t, 700, slow.MyPoints)
	assert.Equal(t, "boris", slow.AheadOfMe)

	third, ok := emitter.lastStatus("p3", StatusShowResult)
	require.True(t, ok)
	wrong := third.Data.(showResultData)
	assert.False(t, wrong.Correct)
	assert.Zero(t, wrong.MyPoints)
	assert.Equal(t, 3, wrong.Rank)

	tallyStatus, ok := emitter.lastStatus("mgr", StatusShowResponses)
	require.True(t, ok)
	tally := tallyStatus.Data.(showResponsesData)
	assert.Equal(t, map[int]int{q.Solution: 2, 3: 1}, tally.Responses)

	engine.mu.Lock()
	assert.Empty(t, engine.sess.PendingAnswers)
	engine.mu.Unlock()
}
