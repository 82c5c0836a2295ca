package forms

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/letsssgooo/classroom/internal/domain/models"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags & texts
	singleCorrectTag  = "single_correct"
	singleCorrectText = "exactly one option must be marked as correct"

	multiCorrectTag  = "multi_correct"
	multiCorrectText = "at least one option must be marked as correct"

	endAfterStartTag  = "end_after_start"
	endAfterStartText = "{0} must be after the start"

	requiredTag  = "required"
	requiredText = "{0} is required"

	indexRegex = regexp.MustCompile(`\[\d+\]`)
)

// fieldMessages переопределяет тексты ошибок для конкретных полей,
// ключ — путь поля без индексов и тег.
var fieldMessages = map[string]string{
	"firstName|required":       "Please input your first name!",
	"lastName|required":        "Please input your last name!",
	"email|required":           "Please input your email!",
	"email|email":              "Please enter a valid email address!",
	"password|required":        "Please input your password!",
	"password|min":             "Password must be at least 6 characters long!",
	"confirmPassword|required": "Please confirm your password!",
	"confirmPassword|eqfield":  "The two passwords do not match!",
	"title|required":           "Please input the title!",
	"description|required":     "Please input the description!",
	"courseId|required":        "Please select a course!",
	"startDate|required":       "Please select the date/time range!",
	"dueDate|required":         "Please select the date/time range!",
	"options.text|required":    "Missing option text",
}

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterStructValidation(questionStructValidation, QuestionForm{})
	validate.RegisterStructValidation(quizStructValidation, QuizForm{})
	validate.RegisterStructValidation(courseStructValidation, CourseForm{})

	registerTranslation(singleCorrectTag, singleCorrectText)
	registerTranslation(multiCorrectTag, multiCorrectText)
	registerTranslation(endAfterStartTag, endAfterStartText)
	registerTranslation(requiredTag, requiredText, true)
}

// registerTranslation registers a custom translation for the specified validation tag.
func registerTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// questionStructValidation проверяет количество правильных вариантов
// в зависимости от типа вопроса.
func questionStructValidation(sl validator.StructLevel) {
	question := sl.Current().Interface().(QuestionForm)

	correct := 0
	for _, option := range question.Options {
		if option.IsCorrect {
			correct++
		}
	}

	switch models.QuestionType(question.Type) {
	case models.SingleCorrect:
		if correct != 1 {
			sl.ReportError(question.Options, "options", "Options", singleCorrectTag, "")
		}
	case models.MultiCorrect:
		if correct < 1 {
			sl.ReportError(question.Options, "options", "Options", multiCorrectTag, "")
		}
	}
}

func quizStructValidation(sl validator.StructLevel) {
	quiz := sl.Current().Interface().(QuizForm)

	start, errStart := time.Parse(time.RFC3339, quiz.StartTime)
	end, errEnd := time.Parse(time.RFC3339, quiz.EndTime)
	if errStart != nil || errEnd != nil {
		return
	}

	if !end.After(start) {
		sl.ReportError(quiz.EndTime, "endTime", "EndTime", endAfterStartTag, "")
	}
}

func courseStructValidation(sl validator.StructLevel) {
	course := sl.Current().Interface().(CourseForm)

	start, errStart := time.Parse(time.DateOnly, course.StartDate)
	end, errEnd := time.Parse(time.DateOnly, course.EndDate)
	if errStart != nil || errEnd != nil {
		return
	}

	if end.Before(start) {
		sl.ReportError(course.EndDate, "endDate", "EndDate", endAfterStartTag, "")
	}
}
