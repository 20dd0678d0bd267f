package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"atelier/internal/types"
)

const toastDuration = 3 * time.Second

func (m *Model) showToast(severity types.Severity, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	m.toastText = message
	m.toastSeverity = severity
	m.toastUntil = time.Now().Add(toastDuration)
}

func (m *Model) clearToast() {
	m.toastText = ""
	m.toastSeverity = types.SeverityInfo
	m.toastUntil = time.Time{}
}

func (m *Model) toastActive(at time.Time) bool {
	if strings.TrimSpace(m.toastText) == "" {
		return false
	}
	if m.toastUntil.IsZero() {
		return true
	}
	if at.IsZero() {
		at = time.Now()
	}
	return at.Before(m.toastUntil)
}

func (m *Model) toastLine(width int) string {
	if !m.toastActive(time.Now()) || width <= 0 {
		return ""
	}
	maxTextWidth := width - 4
	if maxTextWidth < 1 {
		maxTextWidth = 1
	}
	text := truncateToWidth(m.toastText, maxTextWidth)
	pill := m.toastStyle().Render(" " + text + " ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, pill)
}

func (m *Model) toastStyle() lipgloss.Style {
	switch m.toastSeverity {
	case types.SeverityWarning:
		return toastWarningStyle
	case types.SeverityError:
		return toastErrorStyle
	default:
		return toastInfoStyle
	}
}
