package models

// Difficulty — сложность курса.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	DifficultyAll    Difficulty = "All"
)

// Course определяет курс пользователя
type Course struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	MaxStudents int        `json:"maxStudents"`
	Difficulty  Difficulty `json:"difficulty"`
	Category    string     `json:"category"`
	IsActive    bool       `json:"isActive"`
}

func (c Course) GetID() int64 { return c.ID }
