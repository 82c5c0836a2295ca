package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/letsssgooo/classroom/internal/client"
	"github.com/letsssgooo/classroom/internal/domain/models"
)

// CoursesState — курсы пользователя и открытый курс.
type CoursesState struct {
	Courses []models.Course
	Current *models.Course
}

func cloneCourses(s CoursesState) CoursesState {
	s.Courses = slices.Clone(s.Courses)
	if s.Current != nil {
		current := *s.Current
		s.Current = &current
	}

	return s
}

// anyCategory в фильтре означает "все категории".
const anyCategory = "All"

// CourseFilter — фильтр списка курсов. Пустые поля и "All" не фильтруют.
type CourseFilter struct {
	Query      string
	Category   string
	Difficulty models.Difficulty
	ActiveOnly bool
}

// FilterCourses возвращает курсы, подходящие под фильтр, в исходном порядке.
func FilterCourses(courses []models.Course, f CourseFilter) []models.Course {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		if query != "" && !strings.Contains(strings.ToLower(course.Name), query) {
			continue
		}

		if f.Category != "" && f.Category != anyCategory && course.Category != f.Category {
			continue
		}

		if f.Difficulty != "" && f.Difficulty != models.DifficultyAll && course.Difficulty != f.Difficulty {
			continue
		}

		if f.ActiveOnly && !course.IsActive {
			continue
		}

		out = append(out, course)
	}

	return out
}

// CoursesSlice управляет курсами пользователя.
type CoursesSlice struct {
	*Slice[CoursesState]

	gw *client.Gateway
}

func newCoursesSlice(gw *client.Gateway, log *slog.Logger) *CoursesSlice {
	return &CoursesSlice{
		Slice: newSlice("courses", CoursesState{}, cloneCourses, log),
		gw:    gw,
	}
}

// Filter применяет фильтр к текущему списку курсов.
func (c *CoursesSlice) Filter(f CourseFilter) []models.Course {
	return FilterCourses(c.State().Courses, f)
}

// Categories возвращает уникальные категории курсов в порядке появления.
func (c *CoursesSlice) Categories() []string {
	var categories []string
	for _, course := range c.State().Courses {
		if course.Category != "" && !slices.Contains(categories, course.Category) {
			categories = append(categories, course.Category)
		}
	}

	return categories
}

// FetchUserCourses загружает курсы текущего пользователя.
func (c *CoursesSlice) FetchUserCourses(ctx context.Context) *Task[[]models.Course] {
	return dispatch(ctx, c.Slice, operation[CoursesState, []models.Course]{
		name:       "fetchUserCourses",
		fallback:   "An error occurred while fetching courses",
		latestOnly: true,
		call: func(ctx context.Context) ([]models.Course, error) {
			return client.Call[[]models.Course](ctx, c.gw, client.Request{Path: "/users/courses"})
		},
		apply: func(state *CoursesState, courses []models.Course) {
			state.Courses = slices.Clone(courses)
		},
	})
}

// FetchCourse загружает один курс и делает его текущим.
func (c *CoursesSlice) FetchCourse(ctx context.Context, id int64) *Task[models.Course] {
	return dispatch(ctx, c.Slice, operation[CoursesState, models.Course]{
		name:       "fetchCourse",
		latestOnly: true,
		call: func(ctx context.Context) (models.Course, error) {
			return client.Call[models.Course](ctx, c.gw, client.Request{Path: fmt.Sprintf("/courses/%d", id)})
		},
		apply: func(state *CoursesState, course models.Course) {
			state.Current = &course
		},
	})
}

func (c *CoursesSlice) CreateCourse(ctx context.Context, course models.Course) *Task[models.Course] {
	return dispatch(ctx, c.Slice, operation[CoursesState, models.Course]{
		name: "createCourse",
		call: func(ctx context.Context) (models.Course, error) {
			return client.Call[models.Course](ctx, c.gw, client.Request{
				Method: http.MethodPost,
				Path:   "/courses",
				Body:   course,
			})
		},
		apply: func(state *CoursesState, created models.Course) {
			state.Courses = append(state.Courses, created)
		},
	})
}

func (c *CoursesSlice) UpdateCourse(ctx context.Context, course models.Course) *Task[models.Course] {
	return dispatch(ctx, c.Slice, operation[CoursesState, models.Course]{
		name: "updateCourse",
		call: func(ctx context.Context) (models.Course, error) {
			return client.Call[models.Course](ctx, c.gw, client.Request{
				Method: http.MethodPut,
				Path:   fmt.Sprintf("/courses/%d", course.ID),
				Body:   course,
			})
		},
		apply: func(state *CoursesState, updated models.Course) {
			state.Courses = replaceByID(state.Courses, updated)
			if state.Current != nil && state.Current.ID == updated.ID {
				state.Current = &updated
			}
		},
	})
}

func (c *CoursesSlice) DeleteCourse(ctx context.Context, id int64) *Task[int64] {
	return dispatch(ctx, c.Slice, operation[CoursesState, int64]{
		name: "deleteCourse",
		call: func(ctx context.Context) (int64, error) {
			err := client.Do(ctx, c.gw, client.Request{
				Method: http.MethodDelete,
				Path:   fmt.Sprintf("/courses/%d", id),
			})
			return id, err
		},
		apply: func(state *CoursesState, id int64) {
			state.Courses = removeByID(state.Courses, id)
			if state.Current != nil && state.Current.ID == id {
				state.Current = nil
			}
		},
	})
}
