package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ParseClaims читает claims токена без проверки подписи.
// Подпись проверяет только сервер, клиенту нужен срок действия и id.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return claims, nil
}

// Expired сообщает, истёк ли токен к моменту now.
// Непрозрачные токены и токены без exp никогда не считаются истёкшими.
func Expired(token string, now time.Time) bool {
	claims, err := ParseClaims(token)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}

	return !now.Before(claims.ExpiresAt.Time)
}
