package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/letsssgooo/classroom/internal/client"
	"github.com/letsssgooo/classroom/internal/domain/models"
	"github.com/letsssgooo/classroom/internal/forms"
)

// ErrQuestionID возвращается при изменении вопроса без id.
var ErrQuestionID = errors.New("question id is required")

// ErrQuizID — у изменяемого квиза нет серверного id.
var ErrQuizID = errors.New("quiz id is required")

// QuizzesState — квизы и открытый квиз.
type QuizzesState struct {
	Quizzes     []models.Quiz
	CurrentQuiz *models.Quiz
}

func cloneQuizzes(s QuizzesState) QuizzesState {
	s.Quizzes = cloneEach(s.Quizzes, models.Quiz.Clone)
	if s.CurrentQuiz != nil {
		current := s.CurrentQuiz.Clone()
		s.CurrentQuiz = &current
	}

	return s
}

// QuizzesSlice управляет квизами и их вопросами.
type QuizzesSlice struct {
	*Slice[QuizzesState]

	gw *client.Gateway
}

func newQuizzesSlice(gw *client.Gateway, log *slog.Logger) *QuizzesSlice {
	return &QuizzesSlice{
		Slice: newSlice("quizzes", QuizzesState{}, cloneQuizzes, log),
		gw:    gw,
	}
}

// SetCurrentQuiz синхронно меняет открытый квиз. nil закрывает его.
func (s *QuizzesSlice) SetCurrentQuiz(quiz *models.Quiz) {
	s.update(func(state *QuizzesState) {
		if quiz == nil {
			state.CurrentQuiz = nil
			return
		}

		current := quiz.Clone()
		state.CurrentQuiz = &current
	})
}

func (s *QuizzesSlice) FetchQuizzes(ctx context.Context) *Task[[]models.Quiz] {
	return dispatch(ctx, s.Slice, operation[QuizzesState, []models.Quiz]{
		name:       "fetchQuizzes",
		fallback:   "Failed to fetch quizzes",
		latestOnly: true,
		call: func(ctx context.Context) ([]models.Quiz, error) {
			return client.Call[[]models.Quiz](ctx, s.gw, client.Request{Path: "/quizzes"})
		},
		apply: func(state *QuizzesState, quizzes []models.Quiz) {
			state.Quizzes = cloneEach(quizzes, models.Quiz.Clone)
		},
	})
}

// FetchQuiz загружает квиз с вопросами и делает его открытым.
func (s *QuizzesSlice) FetchQuiz(ctx context.Context, id int64) *Task[models.Quiz] {
	return dispatch(ctx, s.Slice, operation[QuizzesState, models.Quiz]{
		name:       "fetchQuiz",
		latestOnly: true,
		call: func(ctx context.Context) (models.Quiz, error) {
			return client.Call[models.Quiz](ctx, s.gw, client.Request{Path: fmt.Sprintf("/quizzes/%d", id)})
		},
		apply: func(state *QuizzesState, quiz models.Quiz) {
			current := quiz.Clone()
			state.CurrentQuiz = &current
		},
	})
}

// CreateQuiz создаёт квиз и добавляет его в список. Открытый квиз не меняется.
func (s *QuizzesSlice) CreateQuiz(ctx context.Context, quiz models.Quiz) *Task[models.Quiz] {
	quiz = quiz.Clone()
	quiz.ID = nil
	if quiz.Questions == nil {
		quiz.Questions = []models.Question{}
	}

	return dispatch(ctx, s.Slice, operation[QuizzesState, models.Quiz]{
		name: "createQuiz",
		call: func(ctx context.Context) (models.Quiz, error) {
			return client.Call[models.Quiz](ctx, s.gw, client.Request{
				Method: http.MethodPost,
				Path:   "/quizzes",
				Body:   quiz,
			})
		},
		apply: func(state *QuizzesState, created models.Quiz) {
			state.Quizzes = append(state.Quizzes, created.Clone())
		},
	})
}

func (s *QuizzesSlice) UpdateQuiz(ctx context.Context, quiz models.Quiz) *Task[models.Quiz] {
	if quiz.ID == nil {
		return failedTask[models.Quiz](ErrQuizID)
	}

	quiz = quiz.Clone()

	return dispatch(ctx, s.Slice, operation[QuizzesState, models.Quiz]{
		name: "updateQuiz",
		call: func(ctx context.Context) (models.Quiz, error) {
			return client.Call[models.Quiz](ctx, s.gw, client.Request{
				Method: http.MethodPut,
				Path:   fmt.Sprintf("/quizzes/%d", quiz.GetID()),
				Body:   quiz,
			})
		},
		apply: func(state *QuizzesState, updated models.Quiz) {
			state.Quizzes = replaceByID(state.Quizzes, updated.Clone())
			if state.CurrentQuiz != nil && state.CurrentQuiz.GetID() == updated.GetID() {
				current := updated.Clone()
				state.CurrentQuiz = &current
			}
		},
	})
}

// DeleteQuiz удаляет квиз; открытый квиз с тем же id закрывается.
func (s *QuizzesSlice) DeleteQuiz(ctx context.Context, id int64) *Task[int64] {
	return dispatch(ctx, s.Slice, operation[QuizzesState, int64]{
		name: "deleteQuiz",
		call: func(ctx context.Context) (int64, error) {
			err := client.Do(ctx, s.gw, client.Request{
				Method: http.MethodDelete,
				Path:   fmt.Sprintf("/quizzes/%d", id),
			})
			return id, err
		},
		apply: func(state *QuizzesState, id int64) {
			state.Quizzes = removeByID(state.Quizzes, id)
			if state.CurrentQuiz != nil && state.CurrentQuiz.GetID() == id {
				state.CurrentQuiz = nil
			}
		},
	})
}

// AddQuestion добавляет вопрос в квиз quizID. Вопрос проверяется до
// отправки: при ошибке задача сразу завершается *forms.ValidationError,
// а состояние слайса не меняется.
func (s *QuizzesSlice) AddQuestion(ctx context.Context, quizID int64, question models.Question) *Task[models.Question] {
	if err := forms.ValidateQuestion(question); err != nil {
		return failedTask[models.Question](err)
	}

	question = question.Clone()
	question.ID = nil

	return dispatch(ctx, s.Slice, operation[QuizzesState, models.Question]{
		name: "addQuestion",
		call: func(ctx context.Context) (models.Question, error) {
			return client.Call[models.Question](ctx, s.gw, client.Request{
				Method: http.MethodPost,
				Path:   fmt.Sprintf("/quizzes/%d/questions", quizID),
				Body:   question,
			})
		},
		apply: func(state *QuizzesState, created models.Question) {
			if state.CurrentQuiz != nil && state.CurrentQuiz.GetID() == quizID {
				state.CurrentQuiz.Questions = append(state.CurrentQuiz.Questions, created.Clone())
			}

			i := slices.IndexFunc(state.Quizzes, func(q models.Quiz) bool { return q.GetID() == quizID })
			if i >= 0 {
				state.Quizzes[i].Questions = append(state.Quizzes[i].Questions, created.Clone())
			}
		},
	})
}

// UpdateQuestion заменяет вопрос с тем же id в открытом квизе и в списке.
func (s *QuizzesSlice) UpdateQuestion(ctx context.Context, question models.Question) *Task[models.Question] {
	if question.ID == nil {
		return failedTask[models.Question](ErrQuestionID)
	}

	if err := forms.ValidateQuestion(question); err != nil {
		return failedTask[models.Question](err)
	}

	question = question.Clone()

	return dispatch(ctx, s.Slice, operation[QuizzesState, models.Question]{
		name: "updateQuestion",
		call: func(ctx context.Context) (models.Question, error) {
			return client.Call[models.Question](ctx, s.gw, client.Request{
				Method: http.MethodPut,
				Path:   fmt.Sprintf("/quizzes/questions/%d", question.GetID()),
				Body:   question,
			})
		},
		apply: func(state *QuizzesState, updated models.Question) {
			if state.CurrentQuiz != nil {
				state.CurrentQuiz.Questions = replaceByID(state.CurrentQuiz.Questions, updated.Clone())
			}
			for i := range state.Quizzes {
				state.Quizzes[i].Questions = replaceByID(state.Quizzes[i].Questions, updated.Clone())
			}
		},
	})
}

// DeleteQuestion удаляет вопрос из открытого квиза и из списка.
func (s *QuizzesSlice) DeleteQuestion(ctx context.Context, id int64) *Task[int64] {
	return dispatch(ctx, s.Slice, operation[QuizzesState, int64]{
		name: "deleteQuestion",
		call: func(ctx context.Context) (int64, error) {
			err := client.Do(ctx, s.gw, client.Request{
				Method: http.MethodDelete,
				Path:   fmt.Sprintf("/quizzes/questions/%d", id),
			})
			return id, err
		},
		apply: func(state *QuizzesState, id int64) {
			if state.CurrentQuiz != nil {
				state.CurrentQuiz.Questions = removeByID(state.CurrentQuiz.Questions, id)
			}
			for i := range state.Quizzes {
				state.Quizzes[i].Questions = removeByID(state.Quizzes[i].Questions, id)
			}
		},
	})
}
