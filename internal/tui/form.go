package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field is a labelled single-line input or multi-line area.
type field struct {
	label     string
	multiline bool
	input     textinput.Model
	area      textarea.Model
}

func newInput(label, value string) *field {
	in := textinput.New()
	in.CharLimit = 200
	in.Width = 50
	in.SetValue(value)
	return &field{label: label, input: in}
}

func newArea(label, value string) *field {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(5)
	ta.SetValue(value)
	return &field{label: label, multiline: true, area: ta}
}

func (f *field) Value() string {
	if f.multiline {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *field) SetValue(v string) {
	if f.multiline {
		f.area.SetValue(v)
		return
	}
	f.input.SetValue(v)
}

func (f *field) Focus() tea.Cmd {
	if f.multiline {
		return f.area.Focus()
	}
	return f.input.Focus()
}

func (f *field) Blur() {
	if f.multiline {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

func (f *field) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.multiline {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

func (f *field) View(focused bool) string {
	label := styleLabel.Render(f.label)
	if focused {
		label = styleLabelFocused.Render(f.label)
	}
	if f.multiline {
		return label + "\n" + f.area.View()
	}
	return label + "\n" + f.input.View()
}

// form is an ordered set of fields with one focused at a time.
type form struct {
	fields []*field
	focus  int
}

func newForm(fields ...*field) *form {
	return &form{fields: fields}
}

func (f *form) focused() *field {
	return f.fields[f.focus]
}

func (f *form) Focus() tea.Cmd {
	return f.focused().Focus()
}

func (f *form) Blur() {
	f.focused().Blur()
}

// Move shifts focus by delta, wrapping around.
func (f *form) Move(delta int) tea.Cmd {
	f.focused().Blur()
	n := len(f.fields)
	f.focus = ((f.focus+delta)%n + n) % n
	return f.focused().Focus()
}

func (f *form) Update(msg tea.Msg) tea.Cmd {
	return f.focused().Update(msg)
}

func (f *form) Value(i int) string {
	return strings.TrimSpace(f.fields[i].Value())
}

func (f *form) View() string {
	parts := make([]string, len(f.fields))
	for i, fl := range f.fields {
		parts[i] = fl.View(i == f.focus)
	}
	return strings.Join(parts, "\n\n")
}

// Values snapshots every field, trimmed.
func (f *form) Values() []string {
	vals := make([]string, len(f.fields))
	for i := range f.fields {
		vals[i] = f.Value(i)
	}
	return vals
}
