package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/letsssgooo/classroom/internal/client"
	"github.com/letsssgooo/classroom/internal/domain/models"
)

// PeopleState — менторы и студенты открытого курса.
type PeopleState struct {
	Mentors  []models.Person
	Students []models.Person
}

func clonePeople(s PeopleState) PeopleState {
	s.Mentors = slices.Clone(s.Mentors)
	s.Students = slices.Clone(s.Students)
	return s
}

// PeopleSlice хранит участников курса.
type PeopleSlice struct {
	*Slice[PeopleState]

	gw *client.Gateway
}

func newPeopleSlice(gw *client.Gateway, log *slog.Logger) *PeopleSlice {
	return &PeopleSlice{
		Slice: newSlice("people", PeopleState{}, clonePeople, log),
		gw:    gw,
	}
}

func (p *PeopleSlice) SetMentors(mentors []models.Person) {
	p.update(func(state *PeopleState) {
		state.Mentors = slices.Clone(mentors)
	})
}

func (p *PeopleSlice) SetStudents(students []models.Person) {
	p.update(func(state *PeopleState) {
		state.Students = slices.Clone(students)
	})
}

// FetchPeople загружает менторов и студентов курса.
func (p *PeopleSlice) FetchPeople(ctx context.Context, courseID int64) *Task[models.CoursePeople] {
	return dispatch(ctx, p.Slice, operation[PeopleState, models.CoursePeople]{
		name:       "fetchPeople",
		latestOnly: true,
		call: func(ctx context.Context) (models.CoursePeople, error) {
			return client.Call[models.CoursePeople](ctx, p.gw, client.Request{
				Path: fmt.Sprintf("/courses/%d/people", courseID),
			})
		},
		apply: func(state *PeopleState, people models.CoursePeople) {
			state.Mentors = slices.Clone(people.Mentors)
			state.Students = slices.Clone(people.Students)
		},
	})
}
