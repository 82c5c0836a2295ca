package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/letsssgooo/classroom/internal/client"
	"github.com/letsssgooo/classroom/internal/domain/models"
)

// AssignmentsState — задания пользователя.
type AssignmentsState struct {
	Assignments []models.Assignment
}

func cloneAssignments(s AssignmentsState) AssignmentsState {
	s.Assignments = cloneEach(s.Assignments, models.Assignment.Clone)
	return s
}

// UploadFile — файл, прикладываемый к заданию или материалу.
type UploadFile struct {
	Name string
	Data []byte
}

// filesField — имя поля multipart-формы для файлов.
const filesField = "files"

// AssignmentsSlice управляет заданиями.
type AssignmentsSlice struct {
	*Slice[AssignmentsState]

	gw *client.Gateway
}

func newAssignmentsSlice(gw *client.Gateway, log *slog.Logger) *AssignmentsSlice {
	return &AssignmentsSlice{
		Slice: newSlice("assignments", AssignmentsState{}, cloneAssignments, log),
		gw:    gw,
	}
}

// assignmentForm собирает multipart-форму. Каждое расширение
// отправляется отдельным полем allowedFileExtensions.
func assignmentForm(a models.Assignment, files []UploadFile) *client.Form {
	form := &client.Form{}
	form.Add("title", a.Title)
	form.Add("description", a.Description)
	form.Add("startDate", a.StartDate)
	form.Add("dueDate", a.DueDate)
	form.Add("startTime", a.StartTime)
	form.Add("endTime", a.EndTime)
	form.Add("courseId", strconv.FormatInt(a.CourseID, 10))
	form.Add("maxAttempts", strconv.Itoa(a.MaxAttempts))
	form.Add("gradingType", string(a.GradingType))
	form.Add("totalPoints", strconv.Itoa(a.TotalPoints))
	for _, ext := range a.AllowedFileExtensions {
		form.Add("allowedFileExtensions", ext)
	}
	form.Add("maxFileSize", strconv.FormatInt(a.MaxFileSize, 10))
	form.Add("isGroupAssignment", strconv.FormatBool(a.IsGroupAssignment))
	form.Add("isPeerReviewEnabled", strconv.FormatBool(a.IsPeerReviewEnabled))
	form.Add("isPublished", strconv.FormatBool(a.IsPublished))

	for _, file := range files {
		form.AddFile(filesField, file.Name, file.Data)
	}

	return form
}

// CreateAssignment создаёт задание с файлами.
func (s *AssignmentsSlice) CreateAssignment(ctx context.Context, a models.Assignment, files []UploadFile) *Task[models.Assignment] {
	return dispatch(ctx, s.Slice, operation[AssignmentsState, models.Assignment]{
		name: "createAssignment",
		call: func(ctx context.Context) (models.Assignment, error) {
			return client.Call[models.Assignment](ctx, s.gw, client.Request{
				Method: http.MethodPost,
				Path:   "/assignments",
				Form:   assignmentForm(a, files),
			})
		},
		apply: func(state *AssignmentsState, created models.Assignment) {
			state.Assignments = append(state.Assignments, created.Clone())
		},
	})
}

// FetchAssignments загружает все задания.
func (s *AssignmentsSlice) FetchAssignments(ctx context.Context) *Task[[]models.Assignment] {
	return dispatch(ctx, s.Slice, operation[AssignmentsState, []models.Assignment]{
		name:       "fetchAssignments",
		latestOnly: true,
		call: func(ctx context.Context) ([]models.Assignment, error) {
			return client.Call[[]models.Assignment](ctx, s.gw, client.Request{Path: "/assignments"})
		},
		apply: func(state *AssignmentsState, assignments []models.Assignment) {
			state.Assignments = cloneEach(assignments, models.Assignment.Clone)
		},
	})
}

// DeleteAssignment удаляет задание. Задача завершается id удалённого задания.
func (s *AssignmentsSlice) DeleteAssignment(ctx context.Context, id int64) *Task[int64] {
	return dispatch(ctx, s.Slice, operation[AssignmentsState, int64]{
		name: "deleteAssignment",
		call: func(ctx context.Context) (int64, error) {
			err := client.Do(ctx, s.gw, client.Request{
				Method: http.MethodDelete,
				Path:   fmt.Sprintf("/assignments/%d", id),
			})
			return id, err
		},
		apply: func(state *AssignmentsState, id int64) {
			state.Assignments = removeByID(state.Assignments, id)
		},
	})
}

func (s *AssignmentsSlice) UpdateAssignment(ctx context.Context, a models.Assignment) *Task[models.Assignment] {
	return dispatch(ctx, s.Slice, operation[AssignmentsState, models.Assignment]{
		name: "updateAssignment",
		call: func(ctx context.Context) (models.Assignment, error) {
			return client.Call[models.Assignment](ctx, s.gw, client.Request{
				Method: http.MethodPut,
				Path:   fmt.Sprintf("/assignments/%d", a.ID),
				Body:   a,
			})
		},
		apply: func(state *AssignmentsState, updated models.Assignment) {
			state.Assignments = replaceByID(state.Assignments, updated.Clone())
		},
	})
}

// SetPublished публикует задание или снимает его с публикации.
// Сервер отвечает только сообщением, поэтому флаг меняется локально.
func (s *AssignmentsSlice) SetPublished(ctx context.Context, id int64, published bool) *Task[int64] {
	action := "unpublish"
	if published {
		action = "publish"
	}

	return dispatch(ctx, s.Slice, operation[AssignmentsState, int64]{
		name: action + "Assignment",
		call: func(ctx context.Context) (int64, error) {
			err := client.Do(ctx, s.gw, client.Request{
				Method: http.MethodPost,
				Path:   fmt.Sprintf("/assignments/%d/%s", id, action),
			})
			return id, err
		},
		apply: func(state *AssignmentsState, id int64) {
			for i := range state.Assignments {
				if state.Assignments[i].ID == id {
					state.Assignments[i].IsPublished = published
				}
			}
		},
	})
}
