package models

// QuizQuestion is one multiple-choice question in a couples quiz.
type QuizQuestion struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// CouplesQuizModel stores a creator's quiz answers keyed by question id.
// Partners answer the same questions and are scored against this row.
type CouplesQuizModel struct {
	Base
	Slug      string         `json:"slug"       gorm:"uniqueIndex;not null"`
	CreatorID *string        `json:"creator_id" gorm:"index"`
	Questions []QuizQuestion `json:"questions"  gorm:"type:longtext;serializer:json"`
	Answers   map[int]string `json:"answers"    gorm:"type:longtext;serializer:json"`
}

func (CouplesQuizModel) TableName() string { return "couples_quizzes" }
