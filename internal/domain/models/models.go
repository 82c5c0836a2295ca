package models

// Файл с моделями, которыми клиент обменивается с сервером.
// Поля и json-теги повторяют формат API, связи между сущностями
// только по идентификаторам.

// User определяет текущего пользователя сессии
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
}

// FullName возвращает имя и фамилию через пробел.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}

// SignUpData определяет тело запроса на регистрацию
type SignUpData struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SignInData определяет тело запроса на вход
type SignInData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse определяет ответ сервера на вход и регистрацию
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
