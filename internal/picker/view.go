package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/4thel00z/snipman/internal"
)

var (
	colorAccent = lipgloss.Color("6")
	colorMuted  = lipgloss.Color("8")
	colorMatch  = lipgloss.Color("3")
	colorError  = lipgloss.Color("1")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	dimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	matchStyle    = lipgloss.NewStyle().Foreground(colorMatch).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("23"))
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	warnStyle     = lipgloss.NewStyle().Foreground(colorMatch).Bold(true)
	previewStyle  = lipgloss.NewStyle().
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorMuted)
)

// layout splits the terminal height between the list and the preview.
// Header, status and footer take one line each.
type layout struct {
	list    int
	preview int
}

func (m Model) layout() layout {
	const chrome = 3
	const previewChrome = 2

	avail := max(m.height-chrome, 4)

	preview := m.state.opts.CompactLines
	if m.state.Preview() == PreviewFull {
		preview = avail / 2
	}
	preview = max(min(preview, avail-previewChrome-1), 1)

	return layout{
		list:    max(avail-preview-previewChrome, 1),
		preview: preview,
	}
}

func (m Model) View() string {
	if m.state.Exited() {
		return ""
	}

	l := m.layout()
	sections := []string{
		m.renderHeader(),
		m.renderList(l.list),
		m.renderPreview(l.preview),
		m.renderStatus(),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	count := dimStyle.Render(fmt.Sprintf("%d/%d", len(m.state.Ranked()), len(m.state.snippets)))
	return titleStyle.Render("snipman") + " " + count + "  > " + m.state.Query() + "█"
}

func (m Model) renderList(height int) string {
	ranked := m.state.Ranked()
	if len(ranked) == 0 {
		msg := "  (no snippets)"
		if m.state.Query() != "" {
			msg = "  No matches"
		}
		return padLines(dimStyle.Render(msg), height)
	}

	selected, _ := m.state.Selected()
	offset := 0
	if selected >= height {
		offset = selected - height + 1
	}
	end := min(offset+height, len(ranked))

	var b strings.Builder
	for i := offset; i < end; i++ {
		c := ranked[i]
		line := highlight(c.Snippet.Description, c.Positions)
		if len(c.Snippet.Tags) > 0 {
			line += " " + dimStyle.Render("["+strings.Join(c.Snippet.Tags, ", ")+"]")
		}
		if c.Field == internal.FieldCode {
			line += " " + dimStyle.Render("(in code)")
		}

		if i == selected {
			b.WriteString(selectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return padLines(b.String(), height)
}

func (m Model) renderPreview(height int) string {
	snip := m.state.SelectedSnippet()
	if snip == nil {
		return previewStyle.Render(padLines("", height))
	}

	lines := m.state.PreviewLines()
	if len(lines) > height {
		lines = lines[:height]
	}

	total := m.state.PreviewLineCount()
	first := m.state.Scroll() + 1
	last := m.state.Scroll() + len(lines)
	title := dimStyle.Render(fmt.Sprintf("preview (%s) lines %d-%d of %d", m.state.Preview(), first, last, total))

	body := make([]string, len(lines))
	for i, line := range lines {
		body[i] = truncate(expandTabs(line), m.width)
	}

	return previewStyle.Render(title + "\n" + padLines(strings.Join(body, "\n"), height))
}

func (m Model) renderStatus() string {
	if pending := m.state.Pending(); pending != nil {
		return warnStyle.Render(fmt.Sprintf("Delete %q? [y/n]", pending.Description))
	}
	msg, isErr := m.state.Status()
	if isErr {
		return errorStyle.Render(msg)
	}
	return dimStyle.Render(msg)
}

func (m Model) renderFooter() string {
	hints := []string{
		"enter copy",
		"↑/↓ move",
		"pgup/pgdn scroll",
		keyHint(m.keys.Preview, "preview"),
		keyHint(m.keys.Delete, "delete"),
		keyHint(m.keys.Quit, "quit"),
	}
	return dimStyle.Render(strings.Join(hints, " • "))
}

func keyHint(keys []string, action string) string {
	if len(keys) == 0 {
		return action
	}
	return keys[0] + " " + action
}

// highlight styles the bytes at positions. Positions are byte offsets of
// rune starts, ascending.
func highlight(s string, positions []int) string {
	if len(positions) == 0 {
		return s
	}

	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}

	var b strings.Builder
	for i, r := range s {
		if marked[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func padLines(s string, height int) string {
	n := 1
	if s != "" {
		n = strings.Count(s, "\n") + 1
	}
	if n >= height {
		return s
	}
	return s + strings.Repeat("\n", height-n)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
