package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/voxmod-menu/internal/dispatcher"
	"github.com/atomicstack/voxmod-menu/internal/menu"
)

const buttonGap = " "

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text is already styled; use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	v := m.presenter.visible()
	if v == nil {
		return ""
	}
	lines := make([]styledLine, 0, 16)
	if header := m.menuHeader(); header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	lines = append(lines, titleLine(v.screen.Title))

	trailer := m.trailerLines()
	rows := v.screen.Rows
	if len(rows) == 0 || v.screen.ButtonCount() == 0 {
		lines = append(lines, styledLine{text: "(no entries)", style: styles.Empty})
	} else {
		start, end := visibleRange(len(rows), v.cursor.Row, m.maxVisibleRows(linesHeight(lines)+linesHeight(trailer)))
		for r := start; r < end; r++ {
			if len(rows[r]) == 0 {
				continue
			}
			lines = append(lines, styledLine{text: renderRow(v, r), raw: true})
		}
	}
	lines = append(lines, trailer...)
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) menuHeader() string {
	titles := m.nav.Titles()
	if len(titles) < 2 {
		return ""
	}
	segments := make([]string, 0, len(titles))
	for _, title := range titles {
		if title = strings.TrimSpace(title); title != "" {
			segments = append(segments, title)
		}
	}
	return strings.Join(segments, menuHeaderSeparator)
}

func (m *Model) trailerLines() []styledLine {
	var lines []styledLine
	if m.errMsg != "" {
		lines = append(lines, styledLine{text: m.errMsg, style: styles.Error})
	}
	if m.infoMsg != "" {
		lines = append(lines, styledLine{text: m.infoMsg, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{text: m.help.ShortHelpView(m.keys.ShortHelp()), raw: true})
	}
	return lines
}

// maxVisibleRows returns how many button rows fit next to reserved lines of
// chrome, or zero when the height is unknown.
func (m *Model) maxVisibleRows(reserved int) int {
	if m.height <= 0 {
		return 0
	}
	avail := m.height - reserved
	if avail < 1 {
		return 1
	}
	return avail
}

// visibleRange picks the window of rows to draw so that cursor stays on
// screen. A limit of zero means no limit.
func visibleRange(total, cursor, limit int) (int, int) {
	if limit <= 0 || total <= limit {
		return 0, total
	}
	start := 0
	if cursor >= limit {
		start = cursor - limit + 1
	}
	if start+limit > total {
		start = total - limit
	}
	return start, start + limit
}

func linesHeight(lines []styledLine) int {
	n := 0
	for _, line := range lines {
		if line.style != nil && !line.raw {
			n += lipgloss.Height(line.style.Render(line.text))
			continue
		}
		n += lipgloss.Height(line.text)
	}
	return n
}

func titleLine(t menu.Title) styledLine {
	style := styles.Heading
	if t.Emphasis == menu.Primary {
		style = styles.Title
	}
	return styledLine{text: t.Text, style: style}
}

func renderRow(v *view, r int) string {
	cells := make([]string, 0, len(v.screen.Rows[r])*2)
	for c, button := range v.screen.Rows[r] {
		if c > 0 {
			cells = append(cells, buttonGap)
		}
		el := dispatcher.Element{Handle: v.handle, Row: r, Col: c}
		cells = append(cells, buttonStyle(v.signals[el]).Render(button.Text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func buttonStyle(s dispatcher.Signal) *lipgloss.Style {
	switch s {
	case dispatcher.Pressed:
		return styles.ButtonPressed
	case dispatcher.Hovered:
		return styles.ButtonHovered
	default:
		return styles.Button
	}
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
