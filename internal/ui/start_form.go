package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/renato0307/tutor/internal/logging"
)

// DurationChoices are the session lengths offered by the start form
var DurationChoices = []int{15, 30, 45, 60}

// StartFormResult is the student's selection
type StartFormResult struct {
	Cancelled       bool
	CourseRef       string
	DurationMinutes int
	TopicRef        string
}

// StartForm asks for course, topic and duration
type StartForm struct {
	Completed bool
	duration  string
	form      *huh.Form
	result    StartFormResult
}

// NewStartForm creates the form. With no configured courses the course is typed in.
func NewStartForm(courses []string, defaults StartFormResult) *StartForm {
	sf := &StartForm{result: defaults}
	if sf.result.TopicRef == "" {
		sf.result.TopicRef = "ALL"
	}
	sf.duration = strconv.Itoa(closestDuration(defaults.DurationMinutes))

	var course huh.Field
	if len(courses) > 0 {
		if sf.result.CourseRef == "" {
			sf.result.CourseRef = courses[0]
		}
		course = huh.NewSelect[string]().
			Title("Course").
			Options(huh.NewOptions(courses...)...).
			Value(&sf.result.CourseRef)
	} else {
		course = huh.NewInput().
			Title("Course").
			Description("Course folder name, for example CS101_intro").
			Value(&sf.result.CourseRef).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("course is required")
				}
				return nil
			})
	}

	durations := make([]huh.Option[string], 0, len(DurationChoices))
	for _, minutes := range DurationChoices {
		durations = append(durations, huh.NewOption(fmt.Sprintf("%d minutes", minutes), strconv.Itoa(minutes)))
	}

	sf.form = huh.NewForm(
		huh.NewGroup(
			course,
			huh.NewInput().
				Title("Topic").
				Description("Leave as ALL to cover the whole course").
				Value(&sf.result.TopicRef),
			huh.NewSelect[string]().
				Title("Duration").
				Options(durations...).
				Value(&sf.duration),
		),
	)
	return sf
}

func (sf *StartForm) Init() tea.Cmd {
	return sf.form.Init()
}

func (sf *StartForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		sf.result.Cancelled = true
		sf.Completed = true
		return sf, nil
	}

	form, cmd := sf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		sf.form = f
	}

	switch sf.form.State {
	case huh.StateCompleted:
		sf.Completed = true
		minutes, err := strconv.Atoi(sf.duration)
		if err != nil {
			logging.Logger.Warn("Invalid duration selection", "value", sf.duration, "error", err)
		}
		sf.result.DurationMinutes = minutes
		return sf, nil
	case huh.StateAborted:
		sf.result.Cancelled = true
		sf.Completed = true
		return sf, nil
	}
	return sf, cmd
}

func (sf *StartForm) View() string {
	return sf.form.View()
}

// Result returns the selection once the form completed
func (sf *StartForm) Result() StartFormResult {
	return sf.result
}

func closestDuration(minutes int) int {
	best := DurationChoices[0]
	for _, choice := range DurationChoices {
		if abs(choice-minutes) < abs(best-minutes) {
			best = choice
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
