package game

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	preparedSeconds     = 2
	soloAdvanceSeconds  = 5
	soloResultSeconds   = 3
	soloTeardownSeconds = 5
)

// runRound drives one question through its full lifecycle: announce,
// prepared delay, reveal, answer window, settlement, and the solo
// auto-advance. The mutex is released across every wait; each resumption
// re-checks the generation and started flag and abandons silently when the
// session was reset or aborted mid-flight.
func (e *Engine) runRound(gen uint64) {
	e.mu.Lock()
	sess := e.sess
	if !e.aliveLocked(gen) {
		e.mu.Unlock()
		return
	}
	question, ok := sess.currentQuestion()
	if !ok {
		e.mu.Unlock()
		return
	}
	room := sess.Room

	e.emitter.Broadcast(room, EventUpdateQuestion, updateQuestionData{
		Current: sess.CurrentQuestion + 1,
		Total:   len(sess.Questions),
	})
	e.emitter.Broadcast(room, EventStatus, Status{
		Name: StatusShowPrepared,
		Data: showPreparedData{
			TotalAnswers:   len(question.Answers),
			QuestionNumber: sess.CurrentQuestion + 1,
		},
	})
	e.mu.Unlock()

	e.sleepSeconds(preparedSeconds)

	e.mu.Lock()
	if !e.aliveLocked(gen) {
		e.mu.Unlock()
		return
	}
	e.emitter.Broadcast(room, EventStatus, Status{
		Name: StatusShowQuestion,
		Data: showQuestionData{
			Question: question.Prompt,
			Image:    question.Image,
			Cooldown: question.Cooldown,
		},
	})
	e.mu.Unlock()

	e.sleepSeconds(question.Cooldown)

	e.mu.Lock()
	if !e.aliveLocked(gen) {
		e.mu.Unlock()
		return
	}
	// Scoring reference for every answer in this round, including late ones.
	e.sess.RoundStartedAt = e.clock.Now()
	e.emitter.Broadcast(room, EventStatus, Status{
		Name: StatusSelectAnswer,
		Data: selectAnswerData{
			Question:    question.Prompt,
			Answers:     question.Answers,
			Image:       question.Image,
			Time:        question.Time,
			TotalPlayer: len(e.sess.Players),
		},
	})
	e.mu.Unlock()

	e.countdown.Run(question.Time, func(remaining int) {
		e.emitter.Broadcast(room, EventCooldown, remaining)
	})

	e.mu.Lock()
	if !e.aliveLocked(gen) {
		e.mu.Unlock()
		return
	}
	e.settleLocked(question)

	solo := e.sess.Solo()
	hasNext := e.sess.hasNextQuestion()
	e.mu.Unlock()

	if solo {
		e.soloAdvance(gen, room, hasNext)
	}
}

// settleLocked scores the round for every current player and emits the
// personalized results plus the manager's aggregate tally. Pending answers
// are cleared unconditionally at the end.
func (e *Engine) settleLocked(question Question) {
	sess := e.sess

	for _, player := range sess.Players {
		points := 0
		if pending := sess.findPending(player.ID); pending != nil && pending.answer == question.Solution {
			points = pending.points
		}
		player.Points += points
	}

	ranked := sortedByPoints(sess.Players)
	for rank, player := range ranked {
		points := 0
		isCorrect := false
		if pending := sess.findPending(player.ID); pending != nil && pending.answer == question.Solution {
			points = pending.points
			isCorrect = true
		}

		message := "Too bad"
		if isCorrect {
			message = "Nice !"
		}
		ahead := ""
		if rank > 0 {
			ahead = ranked[rank-1].Username
		}

		e.emitter.Emit(player.ID, EventStatus, Status{
			Name: StatusShowResult,
			Data: showResultData{
				Correct:     isCorrect,
				Message:     message,
				Points:      points,
				MyPoints:    player.Points,
				TotalPlayer: len(sess.Players),
				Rank:        rank + 1,
				AheadOfMe:   ahead,
			},
		})
	}

	if sess.Manager != "" {
		responses := make(map[int]int)
		for _, pending := range sess.PendingAnswers {
			responses[pending.answer]++
		}
		e.emitter.Emit(sess.Manager, EventStatus, Status{
			Name: StatusShowResponses,
			Data: showResponsesData{
				Question:  question.Prompt,
				Responses: responses,
				Correct:   question.Solution,
				Answers:   question.Answers,
				Image:     question.Image,
			},
		})
	}

	sess.PendingAnswers = sess.PendingAnswers[:0]
}

// soloAdvance paces the self-moderated session: either on to the next
// question or through the finish podium and teardown.
func (e *Engine) soloAdvance(gen uint64, room string, hasNext bool) {
	if hasNext {
		e.sleepSeconds(soloAdvanceSeconds)

		e.mu.Lock()
		if !e.aliveLocked(gen) {
			e.mu.Unlock()
			return
		}
		e.sess.CurrentQuestion++
		e.mu.Unlock()

		e.runRound(gen)
		return
	}

	e.sleepSeconds(soloResultSeconds)

	e.mu.Lock()
	if !e.aliveLocked(gen) {
		e.mu.Unlock()
		return
	}
	top := sortedByPoints(e.sess.Players)
	if len(top) > podiumSize {
		top = top[:podiumSize]
	}
	finish := Status{Name: StatusFinish, Data: finishData{Subject: e.sess.Subject, Top: top}}
	if len(e.sess.Players) == 1 {
		e.emitter.Emit(e.sess.Players[0].ID, EventStatus, finish)
	} else {
		e.emitter.Broadcast(room, EventStatus, finish)
	}
	e.mu.Unlock()

	e.sleepSeconds(soloTeardownSeconds)

	e.mu.Lock()
	if e.gen == gen {
		log.Info().Str("room", room).Msg("solo game finished, resetting")
		e.resetLocked()
	}
	e.mu.Unlock()
}

func (e *Engine) sleepSeconds(seconds int) {
	e.clock.Sleep(time.Duration(seconds) * time.Second)
}
