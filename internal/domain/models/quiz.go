package models

import "slices"

// QuestionType — тип вопроса.
type QuestionType string

const (
	SingleCorrect QuestionType = "single_correct"
	MultiCorrect  QuestionType = "multi_correct"
)

// Option — вариант ответа. Порядок вариантов в вопросе — порядок показа.
type Option struct {
	ID        *int64 `json:"id,omitempty"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question — вопрос квиза. ID отсутствует, пока вопрос не сохранён на сервере.
type Question struct {
	ID          *int64       `json:"id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        QuestionType `json:"type"`
	Points      int          `json:"points"`
	Options     []Option     `json:"options"`
}

// Quiz — квиз курса. ID отсутствует до создания.
type Quiz struct {
	ID               *int64     `json:"id,omitempty"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	CourseID         int64      `json:"courseId"`
	StartTime        string     `json:"startTime"`
	EndTime          string     `json:"endTime"`
	Duration         int        `json:"duration"`
	ShuffleQuestions bool       `json:"shuffleQuestions"`
	ShowResults      bool       `json:"showResults"`
	Questions        []Question `json:"questions"`
}

// ID возвращает указатель на id, удобно для литералов.
func ID(id int64) *int64 {
	return &id
}

// GetID возвращает id вопроса или 0, если его ещё нет.
func (q Question) GetID() int64 {
	if q.ID == nil {
		return 0
	}

	return *q.ID
}

// CorrectCount возвращает количество правильных вариантов.
func (q Question) CorrectCount() int {
	count := 0
	for _, option := range q.Options {
		if option.IsCorrect {
			count++
		}
	}

	return count
}

func (q Question) Clone() Question {
	q.ID = cloneID(q.ID)
	q.Options = slices.Clone(q.Options)
	for i := range q.Options {
		q.Options[i].ID = cloneID(q.Options[i].ID)
	}

	return q
}

// GetID возвращает id квиза или 0, если его ещё нет.
func (q Quiz) GetID() int64 {
	if q.ID == nil {
		return 0
	}

	return *q.ID
}

func (q Quiz) Clone() Quiz {
	q.ID = cloneID(q.ID)
	if q.Questions != nil {
		questions := make([]Question, len(q.Questions))
		for i, question := range q.Questions {
			questions[i] = question.Clone()
		}
		q.Questions = questions
	}

	return q
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}

	return ID(*id)
}
