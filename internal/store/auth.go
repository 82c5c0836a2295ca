package store

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/letsssgooo/classroom/internal/client"
	"github.com/letsssgooo/classroom/internal/domain/models"
	"github.com/letsssgooo/classroom/internal/storage"
)

// AuthState — текущая сессия. Token и User пустые, если вход не выполнен.
type AuthState struct {
	Token string
	User  *models.User
}

// IsAuthenticated сообщает, есть ли токен сессии.
func (s AuthState) IsAuthenticated() bool {
	return s.Token != ""
}

func cloneAuth(s AuthState) AuthState {
	if s.User != nil {
		user := *s.User
		s.User = &user
	}

	return s
}

// AuthSlice управляет сессией пользователя.
type AuthSlice struct {
	*Slice[AuthState]

	gw     *client.Gateway
	tokens storage.TokenStore
}

func newAuthSlice(gw *client.Gateway, tokens storage.TokenStore, token string, log *slog.Logger) *AuthSlice {
	return &AuthSlice{
		Slice:  newSlice("auth", AuthState{Token: token}, cloneAuth, log),
		gw:     gw,
		tokens: tokens,
	}
}

// SignUp регистрирует пользователя и открывает сессию.
func (a *AuthSlice) SignUp(ctx context.Context, data models.SignUpData) *Task[models.AuthResponse] {
	return dispatch(ctx, a.Slice, operation[AuthState, models.AuthResponse]{
		name:     "signUp",
		fallback: "An error occurred during sign up",
		call: func(ctx context.Context) (models.AuthResponse, error) {
			return a.authenticate(ctx, "/users/register", data)
		},
		apply:     a.applySession,
		committed: a.persistToken,
	})
}

// SignIn выполняет вход и открывает сессию.
func (a *AuthSlice) SignIn(ctx context.Context, data models.SignInData) *Task[models.AuthResponse] {
	return dispatch(ctx, a.Slice, operation[AuthState, models.AuthResponse]{
		name:     "signIn",
		fallback: "An error occurred during sign in",
		call: func(ctx context.Context) (models.AuthResponse, error) {
			return a.authenticate(ctx, "/users/login", data)
		},
		apply:     a.applySession,
		committed: a.persistToken,
	})
}

func (a *AuthSlice) authenticate(ctx context.Context, path string, body any) (models.AuthResponse, error) {
	return client.Call[models.AuthResponse](ctx, a.gw, client.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// persistToken сохраняет токен открытой сессии.
// Ошибка сохранения не ломает сессию: токен просто не переживёт перезапуск.
func (a *AuthSlice) persistToken(ctx context.Context, resp models.AuthResponse) {
	if err := a.tokens.SaveToken(context.WithoutCancel(ctx), resp.Token); err != nil {
		a.log.Error("failed to persist token", "error", err)
	}
}

func (a *AuthSlice) applySession(state *AuthState, resp models.AuthResponse) {
	user := resp.User
	state.User = &user
	state.Token = resp.Token

	a.gw.SetAuthorization(resp.Token)
}

// Logout синхронно закрывает сессию: очищает состояние, сохранённый токен
// и заголовок Authorization.
func (a *AuthSlice) Logout(ctx context.Context) error {
	a.update(func(state *AuthState) {
		*state = AuthState{}
	})
	a.gw.SetAuthorization("")

	return a.tokens.ClearToken(ctx)
}

// FetchProfile загружает профиль пользователя по текущему токену.
func (a *AuthSlice) FetchProfile(ctx context.Context) *Task[models.User] {
	return dispatch(ctx, a.Slice, operation[AuthState, models.User]{
		name:       "fetchProfile",
		latestOnly: true,
		call: func(ctx context.Context) (models.User, error) {
			return client.Call[models.User](ctx, a.gw, client.Request{Path: "/users/profile"})
		},
		apply: func(state *AuthState, user models.User) {
			state.User = &user
		},
	})
}
