package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is an ordered set of labelled text inputs with one focused field.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...string) form {
	f := form{labels: fields, inputs: make([]textinput.Model, len(fields))}
	for i, label := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = strings.ToLower(label)
		in.CharLimit = 256
		f.inputs[i] = in
	}
	return f
}

func newLoginForm() form {
	f := newForm("Username", "Password")
	f.inputs[1].EchoMode = textinput.EchoPassword
	f.inputs[1].EchoCharacter = '•'
	return f
}

func newPostForm() form {
	return newForm("Title", "Author", "URL")
}

// Focus focuses the first field.
func (f *form) Focus() tea.Cmd {
	f.focus = 0
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[0].Focus()
}

// Blur removes focus from every field.
func (f *form) Blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Reset clears every value and blurs the form.
func (f *form) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.Blur()
	f.focus = 0
}

func (f *form) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

// Next focuses the following field, wrapping around.
func (f *form) Next() tea.Cmd { return f.move(1) }

// Prev focuses the previous field, wrapping around.
func (f *form) Prev() tea.Cmd { return f.move(-1) }

// OnLast reports whether the last field has focus.
func (f form) OnLast() bool { return f.focus == len(f.inputs)-1 }

// Value returns the raw value of field i.
func (f form) Value(i int) string { return f.inputs[i].Value() }

// Update forwards msg to the focused input.
func (f *form) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) View(styles Styles) string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := styles.Label.Render(f.labels[i])
		if i == f.focus {
			label = styles.AccentText.Width(8).Render(f.labels[i])
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(in.View())
		if i < len(f.inputs)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
