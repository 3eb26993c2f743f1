package models

type Question struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	QuizID     uint     `gorm:"not null;index" json:"quiz_id"`
	Prompt     string   `gorm:"type:text;not null" json:"question"`
	Answers    []string `gorm:"serializer:json;not null" json:"answers"`
	Solution   int      `gorm:"not null" json:"solution"`
	TimeLimit  int      `gorm:"not null;default:15" json:"time"`
	Cooldown   int      `gorm:"not null;default:5" json:"cooldown"`
	Image      string   `gorm:"size:500" json:"image,omitempty"`
	Category   string   `gorm:"size:100" json:"category,omitempty"`
	Difficulty int      `gorm:"default:0" json:"difficulty,omitempty"`
	OrderNum   int      `gorm:"not null" json:"order_num"`
}
