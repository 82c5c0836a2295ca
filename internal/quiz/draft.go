package quiz

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/letsssgooo/classroom/internal/domain/models"
	"github.com/letsssgooo/classroom/internal/forms"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrOptionNotFound   = errors.New("option not found")
	ErrOutOfRange       = errors.New("position out of range")
)

// Draft — квиз, редактируемый локально до сохранения на сервере.
// Новым вопросам и вариантам выдаются локальные id на основе времени.
type Draft struct {
	mu     sync.RWMutex
	quiz   models.Quiz
	local  map[int64]struct{}
	lastID int64
	now    func() time.Time
}

// NewDraft создаёт черновик из копии q. Вопросам и вариантам без id
// выдаются локальные id.
func NewDraft(q models.Quiz) *Draft {
	quiz := q.Clone()
	if quiz.Questions == nil {
		quiz.Questions = []models.Question{}
	}

	d := &Draft{
		quiz:  quiz,
		local: make(map[int64]struct{}),
		now:   time.Now,
	}
	for i := range d.quiz.Questions {
		d.assignIDs(&d.quiz.Questions[i])
	}

	return d
}

// LoadDraft парсит JSON квиза и создаёт черновик.
func LoadDraft(data []byte) (*Draft, error) {
	var q models.Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("can not load quiz, %w", err)
	}

	return NewDraft(q), nil
}

// nextID возвращает локальный id: миллисекунды текущего времени,
// но всегда больше предыдущего.
func (d *Draft) nextID() int64 {
	id := d.now().UnixMilli()
	if id <= d.lastID {
		id = d.lastID + 1
	}
	d.lastID = id
	d.local[id] = struct{}{}

	return id
}

func (d *Draft) assignIDs(q *models.Question) {
	if q.ID == nil {
		q.ID = models.ID(d.nextID())
	}

	for i := range q.Options {
		if q.Options[i].ID == nil {
			q.Options[i].ID = models.ID(d.nextID())
		}
	}
}

func (d *Draft) question(id int64) (int, error) {
	i := slices.IndexFunc(d.quiz.Questions, func(q models.Question) bool {
		return q.GetID() == id
	})
	if i < 0 {
		return 0, fmt.Errorf("%w: %d", ErrQuestionNotFound, id)
	}

	return i, nil
}

func option(q *models.Question, id int64) (int, error) {
	i := slices.IndexFunc(q.Options, func(o models.Option) bool {
		return o.ID != nil && *o.ID == id
	})
	if i < 0 {
		return 0, fmt.Errorf("%w: %d", ErrOptionNotFound, id)
	}

	return i, nil
}

// AddQuestion добавляет вопрос в конец и возвращает его с выданными id.
func (d *Draft) AddQuestion(q models.Question) models.Question {
	d.mu.Lock()
	defer d.mu.Unlock()

	q = q.Clone()
	d.assignIDs(&q)
	d.quiz.Questions = append(d.quiz.Questions, q)

	return q.Clone()
}

// UpdateQuestion заменяет вопрос с тем же id.
func (d *Draft) UpdateQuestion(q models.Question) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.question(q.GetID())
	if err != nil {
		return err
	}

	q = q.Clone()
	d.assignIDs(&q)
	d.quiz.Questions[i] = q

	return nil
}

func (d *Draft) RemoveQuestion(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.question(id)
	if err != nil {
		return err
	}

	d.quiz.Questions = slices.Delete(d.quiz.Questions, i, i+1)

	return nil
}

// MoveQuestion переставляет вопрос на позицию to.
func (d *Draft) MoveQuestion(id int64, to int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.question(id)
	if err != nil {
		return err
	}

	if to < 0 || to >= len(d.quiz.Questions) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, to)
	}

	q := d.quiz.Questions[i]
	d.quiz.Questions = slices.Delete(d.quiz.Questions, i, i+1)
	d.quiz.Questions = slices.Insert(d.quiz.Questions, to, q)

	return nil
}

// AddOption добавляет неправильный вариант в конец вопроса.
func (d *Draft) AddOption(questionID int64, text string) (models.Option, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.question(questionID)
	if err != nil {
		return models.Option{}, err
	}

	opt := models.Option{ID: models.ID(d.nextID()), Text: text}
	d.quiz.Questions[i].Options = append(d.quiz.Questions[i].Options, opt)

	return models.Option{ID: models.ID(*opt.ID), Text: text}, nil
}

func (d *Draft) RemoveOption(questionID, optionID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.question(questionID)
	if err != nil {
		return err
	}

	q := &d.quiz.Questions[i]
	j, err := option(q, optionID)
	if err != nil {
		return err
	}

	q.Options = slices.Delete(q.Options, j, j+1)

	return nil
}

// SetCorrect отмечает вариант правильным или неправильным.
// В single_correct отметка варианта снимает отметку с остальных.
func (d *Draft) SetCorrect(questionID, optionID int64, correct bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.question(questionID)
	if err != nil {
		return err
	}

	q := &d.quiz.Questions[i]
	j, err := option(q, optionID)
	if err != nil {
		return err
	}

	if correct && q.Type == models.SingleCorrect {
		for k := range q.Options {
			q.Options[k].IsCorrect = false
		}
	}
	q.Options[j].IsCorrect = correct

	return nil
}

// SetType меняет тип вопроса. При переходе в single_correct остаётся
// отмеченным только первый правильный вариант.
func (d *Draft) SetType(questionID int64, t models.QuestionType) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.question(questionID)
	if err != nil {
		return err
	}

	q := &d.quiz.Questions[i]
	q.Type = t

	if t == models.SingleCorrect {
		seen := false
		for k := range q.Options {
			if q.Options[k].IsCorrect && seen {
				q.Options[k].IsCorrect = false
			}
			seen = seen || q.Options[k].IsCorrect
		}
	}

	return nil
}

// Validate проверяет квиз целиком.
func (d *Draft) Validate() error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return forms.ValidateQuiz(d.quiz)
}

// Quiz возвращает копию квиза вместе с локальными id.
func (d *Draft) Quiz() models.Quiz {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.quiz.Clone()
}

// Payload возвращает копию квиза для отправки на сервер: локальные id
// вопросов и вариантов убраны, серверные сохранены.
func (d *Draft) Payload() models.Quiz {
	d.mu.RLock()
	defer d.mu.RUnlock()

	q := d.quiz.Clone()
	for i := range q.Questions {
		question := &q.Questions[i]
		if d.isLocal(question.ID) {
			question.ID = nil
		}
		for j := range question.Options {
			if d.isLocal(question.Options[j].ID) {
				question.Options[j].ID = nil
			}
		}
	}

	return q
}

func (d *Draft) isLocal(id *int64) bool {
	if id == nil {
		return false
	}

	_, ok := d.local[*id]
	return ok
}

// ExportCSV экспортирует вопросы: одна строка на вариант ответа.
func (d *Draft) ExportCSV() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows := [][]string{{
		"Question",
		"Type",
		"Points",
		"Option",
		"Correct",
	}}
	for _, q := range d.quiz.Questions {
		for _, o := range q.Options {
			rows = append(rows, []string{
				q.Title,
				string(q.Type),
				strconv.Itoa(q.Points),
				o.Text,
				strconv.FormatBool(o.IsCorrect),
			})
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
