package logtail

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	fieldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	levelStyles = map[string]lipgloss.Style{
		"debug": lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		"info":  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		"warn":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		"error": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

// FormatLine renders a JSON log line as "time LEVEL message key=value".
// Lines that do not parse are returned unchanged.
func FormatLine(line string) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}
	return render(e, func(_ string, s string) string { return s })
}

// ColorizeLine is FormatLine with lipgloss styling for terminals.
func ColorizeLine(line string) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}
	return render(e, func(part, s string) string {
		switch part {
		case "time":
			return timeStyle.Render(s)
		case "fields":
			return fieldStyle.Render(s)
		default:
			if st, ok := levelStyles[strings.ToLower(e.Level)]; ok {
				return st.Render(s)
			}
			return s
		}
	})
}

// ColorizeLines applies ColorizeLine to every line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line)
	}
	return out
}

func render(e Entry, style func(part, s string) string) string {
	var b strings.Builder
	if e.Time != "" {
		b.WriteString(style("time", e.Time))
		b.WriteByte(' ')
	}
	if e.Level != "" {
		b.WriteString(style("level", strings.ToUpper(e.Level)))
		b.WriteByte(' ')
	}
	b.WriteString(e.Message)
	if fields := e.FieldString(); fields != "" {
		b.WriteByte(' ')
		b.WriteString(style("fields", fields))
	}
	return b.String()
}
