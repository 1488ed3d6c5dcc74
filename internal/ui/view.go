package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/r-owen/toika-loom-client/internal/format/table"
	"github.com/r-owen/toika-loom-client/internal/render"
)

// header, status, info, jump form, banner and the bottom bar.
const fixedChromeRows = 6

const noPatternText = "(no pattern loaded: press p to pick one or o to upload)"

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.viewWidth()
	lines := make([]styledLine, 0, m.viewHeight())
	lines = append(lines, styledLine{text: m.headerLine(), raw: true})
	status := m.client.Status()
	lines = append(lines, styledLine{text: status.Text, style: styles.ForStatus(status.Error)})
	lines = append(lines, m.bodyLines()...)
	lines = append(lines, styledLine{text: m.infoLine(), raw: true})
	lines = append(lines, styledLine{text: m.jumpLine(), raw: true})
	lines = append(lines, m.bannerLine())
	if m.verbose {
		lines = append(lines, m.diagnosticLines()...)
	}
	if m.footerVisible() {
		for _, row := range strings.Split(m.help.View(m.keys), "\n") {
			lines = append(lines, styledLine{text: row, raw: true})
		}
	}
	lines = limitHeight(lines, m.viewHeight()-1, width)
	lines = append(lines, m.bottomLine())
	lines = applyWidth(lines, width)
	return renderLines(lines)
}

func (m *Model) viewWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m *Model) viewHeight() int {
	if m.height > 0 {
		return m.height
	}
	return defaultHeight
}

func (m *Model) footerVisible() bool {
	return m.showFooter || m.help.ShowAll
}

func (m *Model) chromeRows() int {
	rows := fixedChromeRows
	if m.verbose {
		rows += 2
	}
	if m.footerVisible() {
		rows += lipgloss.Height(m.help.View(m.keys))
	}
	return rows
}

// canvasRows is the number of terminal rows given to the pattern.
func (m *Model) canvasRows() int {
	return max(m.viewHeight()-m.chromeRows(), minCanvasRows)
}

// menuRows is the number of menu entries visible below the filter prompt.
func (m *Model) menuRows() int {
	return max(m.canvasRows()-1, 1)
}

// redraw repaints the pattern canvas for the current size and state.
func (m *Model) redraw() {
	w, h := render.TerminalSize(m.viewWidth(), m.canvasRows(), m.scale)
	if cw, ch := m.canvas.Size(); cw != w || ch != h {
		m.canvas.Resize(w, h)
	}
	m.engine.Draw(m.canvas, m.client.Pattern, m.client.Jump)
	m.canvasLines = m.canvas.Lines(m.scale)
}

func (m *Model) headerLine() string {
	name := m.client.PatternName()
	if name == "" {
		name = "no pattern"
	}
	arrow, arrowStyle := styles.ForDirection(m.client.Forward)
	line := styles.Header.Render(name) + " " + arrowStyle.Render(arrow)
	if m.uploading {
		line += " " + styles.Uploading.Render("uploading…")
	}
	return line
}

func (m *Model) bodyLines() []styledLine {
	rows := m.canvasRows()
	var lines []styledLine
	switch {
	case m.focus == FocusMenu:
		lines = m.menuLines()
	case m.client.Pattern == nil:
		lines = []styledLine{{text: noPatternText, style: styles.Info}}
	default:
		lines = make([]styledLine, 0, len(m.canvasLines))
		for _, row := range m.canvasLines {
			lines = append(lines, styledLine{text: row, raw: true})
		}
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, styledLine{})
	}
	return lines
}

func (m *Model) menuLines() []styledLine {
	l := m.menu
	lines := []styledLine{{text: m.filterPrompt(), raw: true}}
	visible := m.menuRows()
	l.EnsureCursorVisible(visible)
	start := l.ViewportOffset
	end := min(start+visible, len(l.Items))
	if len(l.Items) == 0 {
		lines = append(lines, styledLine{text: fmt.Sprintf("No matches for %q", l.Filter), style: styles.Info})
		return lines
	}
	for idx := start; idx < end; idx++ {
		lines = append(lines, m.buildItemLine(idx, m.viewWidth()))
	}
	return lines
}

// buildItemLine constructs a single styledLine for a menu entry. The loaded
// pattern is marked; the separator is never highlighted.
func (m *Model) buildItemLine(idx, width int) styledLine {
	item := m.menu.Items[idx]
	if !item.Selectable() {
		return styledLine{text: "  " + item.Label, style: styles.Separator}
	}
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if m.menu.IsCurrent(item) {
		lineStyle = styles.CurrentItem
	}
	if idx == m.menu.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	mark := "  "
	if m.menu.IsCurrent(item) {
		mark = "● "
	}
	fullText := indicator + " " + mark + item.Label
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) filterPrompt() string {
	l := m.menu
	prompt := styles.FilterPrompt.Render("» ")
	if l.Filter == "" {
		m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		placeholder := []rune("(type to filter patterns)")
		return prompt + m.renderFilterCursor(string(placeholder[0])) + styles.FilterPlaceholder.Render(string(placeholder[1:]))
	}
	m.filterCursor.TextStyle = styles.Filter.Copy()
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	before := styles.Filter.Render(string(runes[:pos]))
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = styles.Filter.Render(string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caret) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	cursorStyle := styles.Cursor.Copy().Inline(true)
	return base.Inherit(cursorStyle).Blink(false).Render(char)
}

// infoRows describes the current pick: position, repeat, the colour and
// shafts of the pick the display is centered on.
func (m *Model) infoRows() []table.Row {
	p := m.client.Pattern
	if p == nil {
		return []table.Row{{"pick", "? of ?"}}
	}
	rows := []table.Row{
		{"pick", fmt.Sprintf("%d of %d", p.PickNumber, p.NumPicks())},
		{"repeat", strconv.Itoa(p.RepeatNumber)},
	}
	center := p.CenterPick(m.client.Jump)
	if c, ok := p.PickColor(center); ok {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Clamped().Hex())).Render("  ")
		rows = append(rows, table.Row{"next", swatch})
	}
	if raised := p.ShaftsRaised(center); len(raised) > 0 {
		parts := make([]string, len(raised))
		for i, s := range raised {
			parts[i] = strconv.Itoa(s)
		}
		rows = append(rows, table.Row{"shafts", strings.Join(parts, " ")})
	}
	return rows
}

func (m *Model) infoLine() string {
	rows := m.infoRows()
	for _, row := range rows {
		row[0] = styles.Label.Render(row[0])
	}
	return table.Inline(rows)
}

func (m *Model) jumpLine() string {
	a := m.jumpAffordance()
	field := func(in string, dirty, focused bool) string {
		style := styles.Field.Copy()
		if dirty {
			style = styles.FieldDirty.Copy()
		}
		if focused {
			style = style.Inherit(*styles.FieldFocused)
		}
		return "[" + style.Render(in) + "]"
	}
	focused := m.focus == FocusJump
	var b strings.Builder
	b.WriteString(styles.Label.Render("jump pick "))
	b.WriteString(field(m.jumpPick.View(), a.PickDirty, focused && m.jumpField == jumpFieldPick))
	b.WriteString(styles.Label.Render(" repeat "))
	b.WriteString(field(m.jumpRepeat.View(), a.RepeatDirty, focused && m.jumpField == jumpFieldRepeat))
	b.WriteString("  ")
	b.WriteString(affordance("enter jump", a.Submit))
	b.WriteString("  ")
	b.WriteString(affordance("ctrl+r reset", a.Reset))
	return b.String()
}

func affordance(label string, enabled bool) string {
	if enabled {
		return styles.Info.Render(label)
	}
	return styles.Disabled.Render(label)
}

func (m *Model) bannerLine() styledLine {
	p := m.client.Problem
	if !p.Visible() {
		return styledLine{}
	}
	return styledLine{text: p.Message, style: styles.ForSeverity(p.Severity)}
}

func (m *Model) diagnosticLines() []styledLine {
	rows := table.Format([]table.Row{
		{"read", m.client.LastRead},
		{"sent", m.client.LastSent},
	}, []table.Alignment{table.AlignRight, table.AlignLeft})
	lines := make([]styledLine, len(rows))
	for i, row := range rows {
		lines[i] = styledLine{text: row, style: styles.Diagnostics}
	}
	return lines
}

func (m *Model) bottomLine() styledLine {
	switch {
	case m.focus == FocusUpload:
		return styledLine{text: m.uploadPrompt.View(), raw: true}
	case m.errMsg != "":
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: styles.Info}
	}
	return styledLine{}
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
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
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil && text != "" {
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
