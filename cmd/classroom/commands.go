package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/letsssgooo/classroom/internal/domain/models"
	"github.com/letsssgooo/classroom/internal/forms"
	"github.com/letsssgooo/classroom/internal/quiz"
	"github.com/letsssgooo/classroom/internal/store"
)

type command struct {
	help string
	run  func(ctx context.Context, st *store.Store, args []string) error
}

var commands = map[string]command{
	"login":             {help: "sign in with email and password", run: login},
	"register":          {help: "create an account and sign in", run: register},
	"logout":            {help: "forget the saved session", run: logout},
	"whoami":            {help: "show the signed in user", run: whoami},
	"courses":           {help: "list your courses", run: listCourses},
	"dashboard":         {help: "show upcoming assignments and announcements", run: dashboard},
	"assignments":       {help: "list assignments", run: listAssignments},
	"assignment-delete": {help: "delete an assignment by id", run: deleteAssignment},
	"quizzes":           {help: "list quizzes", run: listQuizzes},
	"quiz":              {help: "show a quiz with its questions", run: showQuiz},
	"quiz-create":       {help: "create a quiz from a JSON file", run: createQuiz},
	"quiz-delete":       {help: "delete a quiz by id", run: deleteQuiz},
}

var commandOrder = []string{
	"login", "register", "logout", "whoami", "courses", "dashboard",
	"assignments", "assignment-delete", "quizzes", "quiz", "quiz-create", "quiz-delete",
}

var out io.Writer = os.Stdout

// parseForm переводит флаги команды в форму и проверяет её.
func parseForm[T any](values map[string]any) (T, error) {
	res := forms.Parse[T](values)
	return res.Value, res.Err()
}

func login(ctx context.Context, st *store.Store, args []string) error {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form, err := parseForm[forms.SignInForm](map[string]any{
		"email":    *email,
		"password": *password,
	})
	if err != nil {
		return err
	}

	resp, err := st.Auth().SignIn(ctx, form.Data()).Wait(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Signed in as %s <%s>\n", resp.User.FullName(), resp.User.Email)
	return nil
}

func register(ctx context.Context, st *store.Store, args []string) error {
	fs := pflag.NewFlagSet("register", pflag.ContinueOnError)
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	confirm := fs.String("confirm-password", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form, err := parseForm[forms.SignUpForm](map[string]any{
		"firstName":       *firstName,
		"lastName":        *lastName,
		"email":           *email,
		"password":        *password,
		"confirmPassword": *confirm,
	})
	if err != nil {
		return err
	}

	resp, err := st.Auth().SignUp(ctx, form.Data()).Wait(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Welcome, %s!\n", resp.User.FullName())
	return nil
}

func logout(ctx context.Context, st *store.Store, _ []string) error {
	if err := st.Auth().Logout(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, "Signed out")
	return nil
}

func whoami(ctx context.Context, st *store.Store, _ []string) error {
	if !st.Auth().State().IsAuthenticated() {
		fmt.Fprintln(out, "Not signed in")
		return nil
	}

	user, err := st.Auth().FetchProfile(ctx).Wait(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s <%s>\n", user.FullName(), user.Email)
	return nil
}

func listCourses(ctx context.Context, st *store.Store, args []string) error {
	fs := pflag.NewFlagSet("courses", pflag.ContinueOnError)
	query := fs.String("query", "", "search by name")
	category := fs.String("category", "", "filter by category")
	difficulty := fs.String("difficulty", "", "filter by difficulty")
	active := fs.Bool("active", false, "only active courses")
	categories := fs.Bool("categories", false, "list course categories instead of courses")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := st.Courses().FetchUserCourses(ctx).Wait(ctx); err != nil {
		return err
	}

	if *categories {
		for _, c := range st.Courses().Categories() {
			fmt.Fprintln(out, c)
		}
		return nil
	}

	courses := st.Courses().Filter(store.CourseFilter{
		Query:      *query,
		Category:   *category,
		Difficulty: models.Difficulty(*difficulty),
		ActiveOnly: *active,
	})

	for _, c := range courses {
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s - %s\n", c.ID, c.Name, c.Category, c.Difficulty, c.StartDate, c.EndDate)
	}
	return nil
}

func dashboard(ctx context.Context, st *store.Store, _ []string) error {
	d, err := st.Dashboard().FetchDashboard(ctx).Wait(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Active courses: %d, upcoming assignments: %d, new messages: %d\n",
		d.CourseStats.ActiveCourses, d.CourseStats.UpcomingAssignments, d.CourseStats.NewMessages)

	fmt.Fprintln(out, "\nUpcoming assignments:")
	for _, a := range d.UpcomingAssignments {
		fmt.Fprintf(out, "  %s (due %s)\n", a.Title, a.DueDate)
	}

	fmt.Fprintln(out, "\nRecent announcements:")
	for _, a := range d.RecentAnnouncements {
		fmt.Fprintf(out, "  %s: %s\n", a.Title, a.Content)
	}
	return nil
}

func listAssignments(ctx context.Context, st *store.Store, _ []string) error {
	assignments, err := st.Assignments().FetchAssignments(ctx).Wait(ctx)
	if err != nil {
		return err
	}

	for _, a := range assignments {
		status := "draft"
		if a.IsPublished {
			status = "published"
		}
		fmt.Fprintf(out, "%d\t%s\tdue %s\t%s\n", a.ID, a.Title, a.DueDate, status)
	}
	return nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one id argument")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", args[0], err)
	}

	return id, nil
}

func deleteAssignment(ctx context.Context, st *store.Store, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	if _, err = st.Assignments().DeleteAssignment(ctx, id).Wait(ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "Assignment %d deleted\n", id)
	return nil
}

func listQuizzes(ctx context.Context, st *store.Store, _ []string) error {
	quizzes, err := st.Quizzes().FetchQuizzes(ctx).Wait(ctx)
	if err != nil {
		return err
	}

	for _, q := range quizzes {
		fmt.Fprintf(out, "%d\t%s\t%s - %s\t%d questions\n", q.GetID(), q.Title, q.StartTime, q.EndTime, len(q.Questions))
	}
	return nil
}

func showQuiz(ctx context.Context, st *store.Store, args []string) error {
	fs := pflag.NewFlagSet("quiz", pflag.ContinueOnError)
	asCSV := fs.Bool("csv", false, "print questions as CSV")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseID(fs.Args())
	if err != nil {
		return err
	}

	q, err := st.Quizzes().FetchQuiz(ctx, id).Wait(ctx)
	if err != nil {
		return err
	}

	if *asCSV {
		data, err := quiz.NewDraft(q).ExportCSV()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	fmt.Fprintf(out, "%s\n%s\n", q.Title, q.Description)
	for i, question := range q.Questions {
		fmt.Fprintf(out, "\n%d. %s (%s, %d points)\n", i+1, question.Title, question.Type, question.Points)
		for _, o := range question.Options {
			mark := " "
			if o.IsCorrect {
				mark = "*"
			}
			fmt.Fprintf(out, "   [%s] %s\n", mark, o.Text)
		}
	}
	return nil
}

func createQuiz(ctx context.Context, st *store.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected a path to the quiz JSON file")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	draft, err := quiz.LoadDraft(data)
	if err != nil {
		return err
	}

	if err = draft.Validate(); err != nil {
		return err
	}

	created, err := st.Quizzes().CreateQuiz(ctx, draft.Payload()).Wait(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Quiz %d %q created with %s\n", created.GetID(), created.Title, plural(len(created.Questions), "question"))
	return nil
}

func deleteQuiz(ctx context.Context, st *store.Store, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	if _, err = st.Quizzes().DeleteQuiz(ctx, id).Wait(ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "Quiz %d deleted\n", id)
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}

	return strconv.Itoa(n) + " " + strings.TrimSuffix(word, "s") + "s"
}
