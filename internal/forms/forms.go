package forms

import (
	"github.com/letsssgooo/classroom/internal/domain/models"
)

// SignUpForm — форма регистрации.
type SignUpForm struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (f SignUpForm) Data() models.SignUpData {
	return models.SignUpData{
		Email:     f.Email,
		Password:  f.Password,
		FirstName: f.FirstName,
		LastName:  f.LastName,
	}
}

// SignInForm — форма входа.
type SignInForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (f SignInForm) Data() models.SignInData {
	return models.SignInData{Email: f.Email, Password: f.Password}
}

// CourseForm — форма создания и редактирования курса.
// Даты в формате 2006-01-02.
type CourseForm struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"endDate" validate:"required,datetime=2006-01-02"`
	MaxStudents int    `json:"maxStudents" validate:"gte=0"`
	Difficulty  string `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard All"`
	Category    string `json:"category"`
	IsActive    bool   `json:"isActive"`
}

func (f CourseForm) Course() models.Course {
	return models.Course{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		MaxStudents: f.MaxStudents,
		Difficulty:  models.Difficulty(f.Difficulty),
		Category:    f.Category,
		IsActive:    f.IsActive,
	}
}

// AssignmentForm — форма создания задания.
type AssignmentForm struct {
	ID                    int64    `json:"id"`
	Title                 string   `json:"title" validate:"required"`
	Description           string   `json:"description" validate:"required"`
	CourseID              int64    `json:"courseId" validate:"required"`
	StartDate             string   `json:"startDate" validate:"required"`
	DueDate               string   `json:"dueDate" validate:"required"`
	StartTime             string   `json:"startTime"`
	EndTime               string   `json:"endTime"`
	MaxAttempts           int      `json:"maxAttempts" validate:"gte=0"`
	GradingType           string   `json:"gradingType" validate:"omitempty,oneof=points percentage passFail"`
	TotalPoints           int      `json:"totalPoints" validate:"gte=0"`
	AllowedFileExtensions []string `json:"allowedFileExtensions" validate:"dive,required"`
	MaxFileSize           int64    `json:"maxFileSize" validate:"gte=0"`
	IsGroupAssignment     bool     `json:"isGroupAssignment"`
	IsPeerReviewEnabled   bool     `json:"isPeerReviewEnabled"`
	IsPublished           bool     `json:"isPublished"`
}

func (f AssignmentForm) Assignment() models.Assignment {
	return models.Assignment{
		ID:                    f.ID,
		Title:                 f.Title,
		Description:           f.Description,
		StartDate:             f.StartDate,
		DueDate:               f.DueDate,
		StartTime:             f.StartTime,
		EndTime:               f.EndTime,
		CourseID:              f.CourseID,
		MaxAttempts:           f.MaxAttempts,
		GradingType:           models.GradingType(f.GradingType),
		TotalPoints:           f.TotalPoints,
		AllowedFileExtensions: append([]string(nil), f.AllowedFileExtensions...),
		MaxFileSize:           f.MaxFileSize,
		IsGroupAssignment:     f.IsGroupAssignment,
		IsPeerReviewEnabled:   f.IsPeerReviewEnabled,
		IsPublished:           f.IsPublished,
	}
}

// MaterialForm — форма создания материала.
type MaterialForm struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	CourseID    int64    `json:"courseId" validate:"required"`
	Links       []string `json:"links" validate:"dive,url"`
}

func (f MaterialForm) Material() models.Material {
	return models.Material{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Links:       append([]string(nil), f.Links...),
	}
}

// QuizForm — форма квиза. Время в формате RFC 3339.
type QuizForm struct {
	ID               *int64         `json:"id,omitempty"`
	Title            string         `json:"title" validate:"required"`
	Description      string         `json:"description"`
	CourseID         int64          `json:"courseId"`
	StartTime        string         `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime          string         `json:"endTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Duration         int            `json:"duration" validate:"gte=0"`
	ShuffleQuestions bool           `json:"shuffleQuestions"`
	ShowResults      bool           `json:"showResults"`
	Questions        []QuestionForm `json:"questions" validate:"dive"`
}

func (f QuizForm) Quiz() models.Quiz {
	quiz := models.Quiz{
		ID:               f.ID,
		Title:            f.Title,
		Description:      f.Description,
		CourseID:         f.CourseID,
		StartTime:        f.StartTime,
		EndTime:          f.EndTime,
		Duration:         f.Duration,
		ShuffleQuestions: f.ShuffleQuestions,
		ShowResults:      f.ShowResults,
		Questions:        make([]models.Question, 0, len(f.Questions)),
	}

	for _, question := range f.Questions {
		quiz.Questions = append(quiz.Questions, question.Question())
	}

	return quiz.Clone()
}

// QuestionForm — форма вопроса квиза.
type QuestionForm struct {
	ID          *int64       `json:"id,omitempty"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	Type        string       `json:"type" validate:"required,oneof=single_correct multi_correct"`
	Points      int          `json:"points" validate:"required,min=1"`
	Options     []OptionForm `json:"options" validate:"min=1,dive"`
}

// OptionForm — вариант ответа.
type OptionForm struct {
	ID        *int64 `json:"id,omitempty"`
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

func (f QuestionForm) Question() models.Question {
	question := models.Question{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Type:        models.QuestionType(f.Type),
		Points:      f.Points,
		Options:     make([]models.Option, 0, len(f.Options)),
	}

	for _, option := range f.Options {
		question.Options = append(question.Options, models.Option{
			ID:        option.ID,
			Text:      option.Text,
			IsCorrect: option.IsCorrect,
		})
	}

	return question.Clone()
}

func questionForm(q models.Question) QuestionForm {
	form := QuestionForm{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Type:        string(q.Type),
		Points:      q.Points,
		Options:     make([]OptionForm, 0, len(q.Options)),
	}

	for _, option := range q.Options {
		form.Options = append(form.Options, OptionForm{
			ID:        option.ID,
			Text:      option.Text,
			IsCorrect: option.IsCorrect,
		})
	}

	return form
}

// ValidateQuestion проверяет вопрос перед отправкой на сервер.
// Возвращает *ValidationError или nil.
func ValidateQuestion(q models.Question) error {
	return Validate(questionForm(q)).Err()
}

// ValidateQuiz проверяет квиз целиком, включая вопросы.
func ValidateQuiz(q models.Quiz) error {
	form := QuizForm{
		ID:               q.ID,
		Title:            q.Title,
		Description:      q.Description,
		CourseID:         q.CourseID,
		StartTime:        q.StartTime,
		EndTime:          q.EndTime,
		Duration:         q.Duration,
		ShuffleQuestions: q.ShuffleQuestions,
		ShowResults:      q.ShowResults,
	}

	for _, question := range q.Questions {
		form.Questions = append(form.Questions, questionForm(question))
	}

	return Validate(form).Err()
}
