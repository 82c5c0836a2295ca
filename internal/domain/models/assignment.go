package models

import "slices"

// GradingType — способ оценивания задания.
type GradingType string

const (
	GradingPoints     GradingType = "points"
	GradingPercentage GradingType = "percentage"
	GradingPassFail   GradingType = "passFail"
)

// Assignment определяет задание курса
type Assignment struct {
	ID                    int64       `json:"id"`
	Title                 string      `json:"title"`
	Description           string      `json:"description"`
	StartDate             string      `json:"startDate"`
	DueDate               string      `json:"dueDate"`
	StartTime             string      `json:"startTime"`
	EndTime               string      `json:"endTime"`
	CourseID              int64       `json:"courseId"`
	MaxAttempts           int         `json:"maxAttempts"`
	GradingType           GradingType `json:"gradingType"`
	TotalPoints           int         `json:"totalPoints"`
	AllowedFileExtensions []string    `json:"allowedFileExtensions"`
	MaxFileSize           int64       `json:"maxFileSize"`
	IsGroupAssignment     bool        `json:"isGroupAssignment"`
	IsPeerReviewEnabled   bool        `json:"isPeerReviewEnabled"`
	IsPublished           bool        `json:"isPublished"`
}

func (a Assignment) GetID() int64 { return a.ID }

// Clone возвращает копию задания, не разделяющую слайсы с оригиналом.
func (a Assignment) Clone() Assignment {
	a.AllowedFileExtensions = slices.Clone(a.AllowedFileExtensions)
	return a
}
