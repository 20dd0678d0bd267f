package app

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	paneTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110"))
	paneFocusedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	stageStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	stageLongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true)
	progressBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	progressRestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	errorNoticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	warnNoticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	recordStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	unreadBadgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63")).Bold(true)
	pausedBadgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	cancelBadgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
	runningBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	channelUpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	channelDownStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	feedInfoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	feedSuccessStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	feedWarningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	feedErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	toastInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)
