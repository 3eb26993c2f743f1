package game

import "time"

// Question is one quiz entry, immutable once installed in a session.
type Question struct {
	Prompt     string   `json:"question"`
	Answers    []string `json:"answers"`
	Solution   int      `json:"solution"`
	Time       int      `json:"time"`     // answer window, seconds
	Cooldown   int      `json:"cooldown"` // reveal duration, seconds
	Image      string   `json:"image,omitempty"`
	Category   string   `json:"category,omitempty"`
	Difficulty int      `json:"difficulty,omitempty"`
}

// Quiz is the document the engine plays through. It is either sent inline
// over the channel or resolved through a QuizSource by (genre, topic, name).
type Quiz struct {
	Genre     string     `json:"genre"`
	Topic     string     `json:"topic"`
	Name      string     `json:"quizName"`
	Questions []Question `json:"questions"`
}

// AnswerEvent is one entry in a player's per-game answer history.
type AnswerEvent struct {
	QuestionIndex int     `json:"questionIndex"`
	Selected      int     `json:"selectedAnswer"`
	Correct       int     `json:"correctAnswer"`
	IsCorrect     bool    `json:"isCorrect"`
	TimeTaken     float64 `json:"timeTaken"`
	Points        int     `json:"points"`
	Category      string  `json:"category"`
	Difficulty    int     `json:"difficulty"`
}

// Player is a roster entry, keyed by its connection id.
type Player struct {
	ID             string        `json:"id"`
	Username       string        `json:"username"`
	Room           string        `json:"room"`
	Points         int           `json:"points"`
	Answers        []AnswerEvent `json:"answers"`
	CorrectAnswers int           `json:"correctAnswers"`
	TotalTime      float64       `json:"totalTime"`
}

// pendingAnswer buffers one player's submission for the current question.
// Points are computed at submission time against the round start timestamp;
// settlement zeroes them again if the answer turns out wrong.
type pendingAnswer struct {
	playerID string
	answer   int
	points   int
}

// Session is the single live game instance. The engine owns exactly one and
// rebuilds it from scratch on every teardown; nothing holds a reference
// across a reset.
type Session struct {
	Started         bool
	Room            string
	Manager         string // connection id, "" in solo / before room creation
	Password        string
	Quiz            *Quiz
	Subject         string
	Questions       []Question
	CurrentQuestion int
	RoundStartedAt  time.Time
	Players         []*Player
	PendingAnswers  []pendingAnswer
}

// NewSession returns an empty session guarded by the given room-creation
// password.
func NewSession(password string) *Session {
	return &Session{
		Password: password,
		Subject:  "General",
	}
}

// Solo reports whether the session runs without an external moderator.
func (s *Session) Solo() bool {
	return s.Manager == ""
}

func (s *Session) findPlayer(connID string) *Player {
	for _, p := range s.Players {
		if p.ID == connID {
			return p
		}
	}
	return nil
}

func (s *Session) findPending(connID string) *pendingAnswer {
	for i := range s.PendingAnswers {
		if s.PendingAnswers[i].playerID == connID {
			return &s.PendingAnswers[i]
		}
	}
	return nil
}

func (s *Session) currentQuestion() (Question, bool) {
	if s.CurrentQuestion < 0 || s.CurrentQuestion >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentQuestion], true
}

func (s *Session) hasNextQuestion() bool {
	return s.CurrentQuestion+1 < len(s.Questions)
}
