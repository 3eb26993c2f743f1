package game

// Inbound intent events.
const (
	IntentCheckRoom       = "player:checkRoom"
	IntentJoin            = "player:join"
	IntentCreateSolo      = "player:createSolo"
	IntentSelectedAnswer  = "player:selectedAnswer"
	IntentCreateRoom      = "manager:createRoom"
	IntentSelectQuiz      = "manager:selectQuiz"
	IntentKickPlayer      = "manager:kickPlayer"
	IntentStartGame       = "manager:startGame"
	IntentNextQuestion    = "manager:nextQuestion"
	IntentAbortQuiz       = "manager:abortQuiz"
	IntentShowLeaderboard = "manager:showLeaderboard"
)

// Outbound events.
const (
	EventError           = "game:errorMessage"
	EventStatus          = "game:status"
	EventCooldown        = "game:cooldown"
	EventStartCooldown   = "game:startCooldown"
	EventUpdateQuestion  = "game:updateQuestion"
	EventSuccessRoom     = "game:successRoom"
	EventSuccessJoin     = "game:successJoin"
	EventKick            = "game:kick"
	EventReset           = "game:reset"
	EventPlayerAnswer    = "game:playerAnswer"
	EventInviteCode      = "manager:inviteCode"
	EventNewPlayer       = "manager:newPlayer"
	EventQuizSelected    = "manager:quizSelected"
	EventPlayerKicked    = "manager:playerKicked"
	EventRemovePlayer    = "manager:removePlayer"
	EventSoloRoomCreated = "player:soloRoomCreated"
)

// Status names carried inside game:status payloads.
const (
	StatusShowStart             = "SHOW_START"
	StatusShowPrepared          = "SHOW_PREPARED"
	StatusShowQuestion          = "SHOW_QUESTION"
	StatusSelectAnswer          = "SELECT_ANSWER"
	StatusWait                  = "WAIT"
	StatusShowResult            = "SHOW_RESULT"
	StatusShowResponses         = "SHOW_RESPONSES"
	StatusShowLeaderboard       = "SHOW_LEADERBOARD"
	StatusShowPerformanceReport = "SHOW_PERFORMANCE_REPORT"
	StatusFinish                = "FINISH"
)

// Status is the envelope for every game:status emission.
type Status struct {
	Name string `json:"name"`
	Data any    `json:"data"`
}

// JoinIntent is the player:join payload.
type JoinIntent struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// QuizIntent carries either a (genre, topic, name) key to resolve through
// the quiz repository or a full inline quiz document. Used by both
// player:createSolo and manager:selectQuiz.
type QuizIntent struct {
	Genre     string     `json:"genre"`
	Topic     string     `json:"topic"`
	Name      string     `json:"quizName"`
	Questions []Question `json:"questions,omitempty"`
}

type showStartData struct {
	Time    int    `json:"time"`
	Subject string `json:"subject"`
}

type showPreparedData struct {
	TotalAnswers   int `json:"totalAnswers"`
	QuestionNumber int `json:"questionNumber"`
}

type showQuestionData struct {
	Question string `json:"question"`
	Image    string `json:"image,omitempty"`
	Cooldown int    `json:"cooldown"`
}

type selectAnswerData struct {
	Question    string   `json:"question"`
	Answers     []string `json:"answers"`
	Image       string   `json:"image,omitempty"`
	Time        int      `json:"time"`
	TotalPlayer int      `json:"totalPlayer"`
}

type waitData struct {
	Text string `json:"text"`
}

type showResultData struct {
	Correct     bool   `json:"correct"`
	Message     string `json:"message"`
	Points      int    `json:"points"`
	MyPoints    int    `json:"myPoints"`
	TotalPlayer int    `json:"totalPlayer"`
	Rank        int    `json:"rank"`
	AheadOfMe   string `json:"aheadOfMe,omitempty"`
}

type showResponsesData struct {
	Question  string      `json:"question"`
	Responses map[int]int `json:"responses"`
	Correct   int         `json:"correct"`
	Answers   []string    `json:"answers"`
	Image     string      `json:"image,omitempty"`
}

type leaderboardData struct {
	Leaderboard    []*Player `json:"leaderboard"`
	IsIntermediate bool      `json:"isIntermediate"`
}

type finishData struct {
	Subject string    `json:"subject"`
	Top     []*Player `json:"top"`
}

type updateQuestionData struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type playerStats struct {
	CorrectAnswers int           `json:"correctAnswers"`
	TotalQuestions int           `json:"totalQuestions"`
	TotalTime      float64       `json:"totalTime"`
	Answers        []AnswerEvent `json:"answers"`
	FinalScore     int           `json:"finalScore"`
}

type performanceReportData struct {
	PlayerStats playerStats `json:"playerStats"`
	QuizData    QuizIntent  `json:"quizData"`
}
