package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims определяет полезную нагрузку токена сессии.
// Сервер кладёт id пользователя в user_id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// Ошибки токена
var ErrMalformedToken = errors.New("malformed token")
