package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"atelier/internal/logging"
	"atelier/internal/types"
)

const defaultTickInterval = 250 * time.Millisecond

// Session is the slice of the orchestrator the TUI drives.
type Session interface {
	Snapshot() types.Snapshot
	MarkAllRead()
	MarkRead(id string)
	DismissError(id string)
	DismissWarning(id string)
	DismissStatus(id string)
	DeleteRecord(ctx context.Context, id string)
	SendSignal(ctx context.Context, signal types.ControlSignal) error
}

type paneFocus int

const (
	focusRecords paneFocus = iota
	focusNotices
)

type tickMsg time.Time

type toastMsg types.StatusMessage

type Model struct {
	session Session
	log     logging.Logger
	tick    time.Duration
	toastCh chan types.StatusMessage

	snapshot    types.Snapshot
	width       int
	height      int
	ready       bool
	focus       paneFocus
	recordIndex int
	noticeIndex int
	status      string
	quitting    bool

	spin     spinner.Model
	chatView viewport.Model
	lastChat string

	toastText     string
	toastSeverity types.Severity
	toastUntil    time.Time
}

func NewModel(session Session, logger logging.Logger, tick time.Duration) *Model {
	if logger == nil {
		logger = logging.Nop()
	}
	if tick <= 0 {
		tick = defaultTickInterval
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	return &Model{
		session:  session,
		log:      logger,
		tick:     tick,
		toastCh:  make(chan types.StatusMessage, 32),
		snapshot: session.Snapshot(),
		spin:     spin,
	}
}

// EnqueueToast is the orchestrator's ToastSink. It runs off the
// bubbletea loop, so it only hands the message over; a full queue
// drops.
func (m *Model) EnqueueToast(msg types.StatusMessage) {
	select {
	case m.toastCh <- msg:
	default:
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.tickCmd(), m.listenToasts())
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(at time.Time) tea.Msg {
		return tickMsg(at)
	})
}

func (m *Model) listenToasts() tea.Cmd {
	return func() tea.Msg {
		return toastMsg(<-m.toastCh)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.chatView = viewport.New(m.chatWidth(), m.chatHeight())
		m.refreshChatPane(true)
		return m, nil

	case tickMsg:
		m.snapshot = m.session.Snapshot()
		m.clampSelection()
		m.refreshChatPane(false)
		return m, m.tickCmd()

	case toastMsg:
		m.showToast(msg.Severity, msg.Message)
		return m, m.listenToasts()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		if m.focus == focusRecords {
			m.focus = focusNotices
		} else {
			m.focus = focusRecords
		}
		return m, nil

	case "up", "k":
		m.moveSelection(-1)
		return m, nil

	case "down", "j":
		m.moveSelection(1)
		return m, nil

	case "a":
		m.session.MarkAllRead()
		m.snapshot = m.session.Snapshot()
		return m, nil

	case "d":
		switch m.focus {
		case focusRecords:
			if record, ok := m.selectedRecord(); ok {
				m.session.DeleteRecord(context.Background(), record.ID)
				m.snapshot = m.session.Snapshot()
				m.clampSelection()
			}
		case focusNotices:
			if notice, ok := m.selectedNotice(); ok {
				m.session.MarkRead(notice.ID)
				m.snapshot = m.session.Snapshot()
				m.clampSelection()
			}
		}
		return m, nil

	case "y":
		if record, ok := m.selectedRecord(); ok && record.URL != "" {
			if err := copyTextToClipboard(record.URL); err != nil {
				m.log.Warn("copy failed", logging.F("err", err))
				m.showToast(types.SeverityError, "copy failed")
			} else {
				m.showToast(types.SeverityInfo, "record url copied")
			}
		}
		return m, nil

	case "p":
		signal := "pause"
		if m.snapshot.ControlState == types.ControlPaused {
			signal = "resume"
		}
		m.sendSignal(signal)
		return m, nil

	case "c":
		m.sendSignal("cancel")
		return m, nil

	case "pgup", "pgdown", " ":
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) sendSignal(kind string) {
	if err := m.session.SendSignal(context.Background(), types.ControlSignal{Type: kind}); err != nil {
		m.log.Warn("signal failed", logging.F("type", kind), logging.F("err", err))
		m.showToast(types.SeverityError, kind+" failed")
		return
	}
	m.status = kind + " sent"
}

func (m *Model) moveSelection(delta int) {
	switch m.focus {
	case focusRecords:
		m.recordIndex += delta
	case focusNotices:
		m.noticeIndex += delta
	}
	m.clampSelection()
}

func (m *Model) clampSelection() {
	m.recordIndex = clampIndex(m.recordIndex, len(m.snapshot.Records))
	m.noticeIndex = clampIndex(m.noticeIndex, len(m.snapshot.Errors)+len(m.snapshot.Warnings))
}

func clampIndex(idx, length int) int {
	if length == 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	return idx
}

func (m *Model) selectedRecord() (types.Record, bool) {
	if m.recordIndex < 0 || m.recordIndex >= len(m.snapshot.Records) {
		return types.Record{}, false
	}
	return m.snapshot.Records[m.recordIndex], true
}

// selectedNotice walks errors first, then warnings, matching the
// rendered order.
func (m *Model) selectedNotice() (types.Notice, bool) {
	notices := append(append([]types.Notice{}, m.snapshot.Errors...), m.snapshot.Warnings...)
	if m.noticeIndex < 0 || m.noticeIndex >= len(notices) {
		return types.Notice{}, false
	}
	return notices[m.noticeIndex], true
}

func (m *Model) refreshChatPane(force bool) {
	if !m.ready {
		return
	}
	if !force && m.snapshot.LastChat == m.lastChat {
		return
	}
	m.lastChat = m.snapshot.LastChat
	m.chatView.Width = m.chatWidth()
	m.chatView.Height = m.chatHeight()
	m.chatView.SetContent(renderMarkdown(m.lastChat, m.chatWidth()))
	m.chatView.GotoBottom()
}

func (m *Model) chatWidth() int {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) chatHeight() int {
	h := m.height / 3
	if h < 4 {
		h = 4
	}
	return h
}
