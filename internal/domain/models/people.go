package models

// Person определяет участника курса (ментора или студента)
type Person struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// CoursePeople определяет ответ сервера со списком участников курса
type CoursePeople struct {
	Mentors  []Person `json:"mentors"`
	Students []Person `json:"students"`
}
