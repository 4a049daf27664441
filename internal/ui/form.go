package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	myweblog "github.com/faluke/go-myweblog"
)

// Form field order.
const (
	fieldDate = iota
	fieldStart
	fieldMinutes
	fieldComment
	fieldCount
)

const formDateLayout = "2006-01-02"

// bookingForm collects the fields for a new booking. Submitting a valid
// form shows a summary first; a second confirmation sends the request.
type bookingForm struct {
	aircraft   myweblog.Object
	inputs     [fieldCount]textinput.Model
	focus      int
	errMsg     string
	confirming bool
}

// newBookingForm builds a form pre-filled with sensible defaults: today,
// the next whole hour, one hour of flying and the member's name as comment.
func newBookingForm(aircraft myweblog.Object, fullname string) bookingForm {
	f := bookingForm{aircraft: aircraft}

	nextHour := time.Now().Truncate(time.Hour).Add(time.Hour)

	date := textinput.New()
	date.Placeholder = formDateLayout
	date.SetValue(nextHour.Format(formDateLayout))
	date.CharLimit = 10
	date.Width = 12

	start := textinput.New()
	start.Placeholder = "HH:MM"
	start.SetValue(nextHour.Format("15:04"))
	start.CharLimit = 5
	start.Width = 7

	minutes := textinput.New()
	minutes.Placeholder = "60"
	minutes.SetValue("60")
	minutes.CharLimit = 4
	minutes.Width = 6

	comment := textinput.New()
	comment.Placeholder = "comment"
	comment.SetValue(fullname)
	comment.CharLimit = 120
	comment.Width = 40

	f.inputs[fieldDate] = date
	f.inputs[fieldStart] = start
	f.inputs[fieldMinutes] = minutes
	f.inputs[fieldComment] = comment

	f.inputs[fieldDate].Focus()
	return f
}

// Init returns the initial blink command for the focused field.
func (f bookingForm) Init() tea.Cmd {
	return textinput.Blink
}

// next moves focus to the following field.
func (f *bookingForm) next(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// slot validates the form and returns the requested time span.
func (f bookingForm) slot() (start, end time.Time, err error) {
	day, err := time.ParseInLocation(formDateLayout, strings.TrimSpace(f.inputs[fieldDate].Value()), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("date must look like %s", formDateLayout)
	}

	clock, err := time.Parse("15:04", strings.TrimSpace(f.inputs[fieldStart].Value()))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start must look like HH:MM")
	}

	mins, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldMinutes].Value()))
	if err != nil || mins <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("minutes must be a positive number")
	}

	start = time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
	end = start.Add(time.Duration(mins) * time.Minute)
	return start, end, nil
}

// request builds the createBooking payload from the validated form.
func (f bookingForm) request() (myweblog.NewBooking, error) {
	start, end, err := f.slot()
	if err != nil {
		return myweblog.NewBooking{}, err
	}
	return myweblog.NewBooking{
		AircraftID: int64(f.aircraft.ID),
		Start:      start,
		End:        end,
		Comment:    strings.TrimSpace(f.inputs[fieldComment].Value()),
	}, nil
}

// handleFormKey processes keys while the create form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.confirming {
		switch {
		case key.Matches(msg, m.keys.ForceQuit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Confirm):
			req, err := m.form.request()
			if err != nil {
				m.form.confirming = false
				m.form.errMsg = err.Error()
				return m, nil
			}
			m.currentView = viewBookings
			m.busy = true
			return m, tea.Batch(m.spin.Tick, mutateCmd(m.ctx, "create", func(ctx context.Context) (*myweblog.MutationResult, error) {
				return m.client.CreateBooking(ctx, req)
			}))
		case key.Matches(msg, m.keys.Cancel):
			m.form.confirming = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.currentView = viewBookings
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.form.next(1)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.PrevField):
		m.form.next(-1)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Submit):
		if _, err := m.form.request(); err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		m.form.errMsg = ""
		m.form.confirming = true
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

// renderForm renders the create booking form, or the pre-submit summary.
func (m Model) renderForm() string {
	styles := m.theme.Styles()

	if m.form.confirming {
		return m.renderFormConfirm()
	}

	labels := [fieldCount]string{"Date", "Start", "Minutes", "Comment"}

	var b strings.Builder
	b.WriteString(styles.AccentText.Render(fmt.Sprintf("  New booking for %s", m.form.aircraft.Registration)))
	b.WriteString("\n\n")

	for i := 0; i < fieldCount; i++ {
		label := fmt.Sprintf("  %-8s ", labels[i])
		if i == m.form.focus {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}

	if m.form.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render("  " + m.form.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}

// renderFormConfirm renders the pre-submit summary of the booking.
func (m Model) renderFormConfirm() string {
	styles := m.theme.Styles()

	start, end, err := m.form.slot()
	if err != nil {
		// The form only enters this state validated; degrade anyway.
		return styles.DangerText.Render("  " + err.Error())
	}

	var b strings.Builder
	b.WriteString(styles.WarningText.Bold(true).Render(
		fmt.Sprintf("  Book %s, %s - %s?",
			m.form.aircraft.Registration,
			start.Format("Mon 02 Jan 15:04"),
			end.Format("15:04"))))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("  y: book    n: back to the form"))
	b.WriteString("\n")
	return b.String()
}
