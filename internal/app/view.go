package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"atelier/internal/types"
)

const progressBarWidth = 16

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.spin.View() + " connecting..."
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	columnWidth := width / 2

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.stagesPane(columnWidth),
		m.noticesPane(columnWidth),
	)
	right := m.recordsPane(width - columnWidth)

	sections := []string{
		m.headerLine(width),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.chatPane(),
		m.feedLines(width),
		m.helpLine(width),
	}
	if toast := m.toastLine(width); toast != "" {
		sections = append(sections, toast)
	}
	return strings.Join(sections, "\n")
}

func (m *Model) headerLine(width int) string {
	parts := []string{
		headerStyle.Render("atelier"),
		m.controlBadge(),
	}
	if m.snapshot.Unread > 0 {
		parts = append(parts, unreadBadgeStyle.Render(fmt.Sprintf(" %d unread ", m.snapshot.Unread)))
	}
	parts = append(parts, m.channelDots())
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	return truncateToWidth(strings.Join(parts, "  "), width)
}

func (m *Model) controlBadge() string {
	switch m.snapshot.ControlState {
	case types.ControlPaused:
		return pausedBadgeStyle.Render(" paused ")
	case types.ControlCancelled:
		return cancelBadgeStyle.Render(" cancelled ")
	default:
		return runningBadgeStyle.Render(" running ")
	}
}

func (m *Model) channelDots() string {
	var parts []string
	for _, name := range types.ChannelNames() {
		dot := channelDownStyle.Render("○ " + string(name))
		if m.snapshot.Channels[name] == types.ChannelConnected {
			dot = channelUpStyle.Render("● " + string(name))
		}
		parts = append(parts, dot)
	}
	return strings.Join(parts, " ")
}

func (m *Model) stagesPane(width int) string {
	title := paneTitleStyle.Render("stages")
	lines := []string{title}
	for _, stage := range m.snapshot.Active {
		lines = append(lines, stageLine(stage, width, false))
	}
	for _, stage := range m.snapshot.LongRunning {
		lines = append(lines, stageLine(stage, width, true))
	}
	if len(m.snapshot.Active)+len(m.snapshot.LongRunning) == 0 {
		lines = append(lines, helpStyle.Render("  idle"))
	}
	return strings.Join(lines, "\n")
}

func stageLine(stage types.Stage, width int, long bool) string {
	marker := "  "
	style := stageStyle
	if long {
		marker = "⏳ "
		style = stageLongStyle
	}
	name := stage.Name
	if name == "" {
		name = stage.ID
	}
	label := style.Render(marker + name)
	bar := progressBar(stage.Progress, progressBarWidth)
	pct := fmt.Sprintf("%3.0f%%", stage.Progress*100)
	return truncateToWidth(label+" "+bar+" "+pct, width)
}

func progressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	return progressBarStyle.Render(strings.Repeat("█", filled)) +
		progressRestStyle.Render(strings.Repeat("░", width-filled))
}

func (m *Model) noticesPane(width int) string {
	title := paneTitleStyle.Render("notices")
	if m.focus == focusNotices {
		title = paneFocusedStyle.Render("notices")
	}
	lines := []string{title}
	idx := 0
	for _, notice := range m.snapshot.Errors {
		lines = append(lines, m.noticeLine(notice, errorNoticeStyle, width, idx))
		idx++
	}
	for _, notice := range m.snapshot.Warnings {
		lines = append(lines, m.noticeLine(notice, warnNoticeStyle, width, idx))
		idx++
	}
	if idx == 0 {
		lines = append(lines, helpStyle.Render("  none"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) noticeLine(notice types.Notice, style lipgloss.Style, width, idx int) string {
	text := "  " + notice.Message
	if notice.Stage != "" {
		text += " (" + notice.Stage + ")"
	}
	line := style.Render(text)
	if m.focus == focusNotices && idx == m.noticeIndex {
		line = selectedStyle.Render(text)
	}
	return truncateToWidth(line, width)
}

func (m *Model) recordsPane(width int) string {
	title := paneTitleStyle.Render("records")
	if m.focus == focusRecords {
		title = paneFocusedStyle.Render("records")
	}
	lines := []string{title}
	for i, record := range m.snapshot.Records {
		label := "  " + padToWidth(record.ID, 10)
		if record.Prompt != "" {
			label += " " + record.Prompt
		}
		line := recordStyle.Render(label)
		if m.focus == focusRecords && i == m.recordIndex {
			line = selectedStyle.Render(label)
		}
		lines = append(lines, truncateToWidth(line, width))
	}
	if len(m.snapshot.Records) == 0 {
		lines = append(lines, helpStyle.Render("  no records"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) chatPane() string {
	if strings.TrimSpace(m.lastChat) == "" {
		return helpStyle.Render("no reply yet")
	}
	return m.chatView.View()
}

func (m *Model) feedLines(width int) string {
	if len(m.snapshot.StatusFeed) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.snapshot.StatusFeed))
	for _, msg := range m.snapshot.StatusFeed {
		lines = append(lines, truncateToWidth(feedStyle(msg.Severity).Render("· "+msg.Message), width))
	}
	return strings.Join(lines, "\n")
}

func feedStyle(severity types.Severity) lipgloss.Style {
	switch severity {
	case types.SeveritySuccess:
		return feedSuccessStyle
	case types.SeverityWarning:
		return feedWarningStyle
	case types.SeverityError:
		return feedErrorStyle
	default:
		return feedInfoStyle
	}
}

func (m *Model) helpLine(width int) string {
	help := "tab panes · j/k select · d delete/dismiss · a read all · y copy url · p pause/resume · c cancel · q quit"
	return truncateToWidth(helpStyle.Render(help), width)
}

func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return xansi.Truncate(s, width, "…")
}

func padToWidth(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
