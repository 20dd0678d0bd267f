package session

import (
	"time"

	"github.com/google/uuid"

	"atelier/internal/types"
)

const (
	// statusFeedCap bounds the ephemeral status feed; the oldest entry
	// is dropped first.
	statusFeedCap = 10
	// statusMessageTTL is how long a status message lives before its
	// dismissal timer removes it.
	statusMessageTTL = 5 * time.Second
)

type statusEntry struct {
	msg       types.StatusMessage
	skipToast bool
	timer     CancelHandle
}

// noticeBoard holds the two expiring notice collections and the
// transient status feed.
type noticeBoard struct {
	errors   []types.Notice
	warnings []types.Notice
	feed     []statusEntry
}

func newNoticeBoard() *noticeBoard {
	return &noticeBoard{}
}

func (b *noticeBoard) AddError(id, message, stage string, now time.Time) types.Notice {
	notice := types.Notice{
		ID:        noticeID(id),
		Kind:      types.NoticeError,
		Message:   message,
		Stage:     stage,
		CreatedAt: now,
		ExpiresAt: now.Add(types.ErrorNoticeTTL),
	}
	b.errors = append(b.errors, notice)
	return notice
}

func (b *noticeBoard) AddWarning(id, message, stage string, now time.Time) types.Notice {
	notice := types.Notice{
		ID:        noticeID(id),
		Kind:      types.NoticeWarning,
		Message:   message,
		Stage:     stage,
		CreatedAt: now,
		ExpiresAt: now.Add(types.WarningNoticeTTL),
	}
	b.warnings = append(b.warnings, notice)
	return notice
}

// PushStatus appends a feed entry, evicting the oldest when the cap is
// reached. The evicted entry's timer is returned alongside the new
// message so the caller can cancel and schedule outside its lock.
func (b *noticeBoard) PushStatus(message string, severity types.Severity, skipToast bool, now time.Time) (types.StatusMessage, CancelHandle) {
	var evicted CancelHandle
	if len(b.feed) >= statusFeedCap {
		evicted = b.feed[0].timer
		b.feed = append(b.feed[:0], b.feed[1:]...)
	}
	msg := types.StatusMessage{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
	}
	b.feed = append(b.feed, statusEntry{msg: msg, skipToast: skipToast})
	return msg, evicted
}

// SetStatusTimer attaches the dismissal timer to a feed entry.
func (b *noticeBoard) SetStatusTimer(id string, timer CancelHandle) {
	for i := range b.feed {
		if b.feed[i].msg.ID == id {
			b.feed[i].timer = timer
			return
		}
	}
	// Entry was evicted or dismissed before the timer landed.
	if timer != nil {
		timer.Cancel()
	}
}

// RemoveStatus drops a feed entry and returns its timer for the caller
// to cancel.
func (b *noticeBoard) RemoveStatus(id string) (CancelHandle, bool) {
	for i := range b.feed {
		if b.feed[i].msg.ID == id {
			timer := b.feed[i].timer
			b.feed = append(b.feed[:i], b.feed[i+1:]...)
			return timer, true
		}
	}
	return nil, false
}

// ExpireNotices purges entries whose expiry has passed and returns how
// many were removed.
func (b *noticeBoard) ExpireNotices(now time.Time) int {
	removed := 0
	b.errors, removed = purgeExpired(b.errors, now, removed)
	b.warnings, removed = purgeExpired(b.warnings, now, removed)
	return removed
}

func purgeExpired(notices []types.Notice, now time.Time, removed int) ([]types.Notice, int) {
	kept := notices[:0]
	for _, n := range notices {
		if n.Expired(now) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	return kept, removed
}

// DismissError removes one error notice and reports how many entries
// went away.
func (b *noticeBoard) DismissError(id string) int {
	var n int
	b.errors, n = removeNotice(b.errors, id)
	return n
}

func (b *noticeBoard) DismissWarning(id string) int {
	var n int
	b.warnings, n = removeNotice(b.warnings, id)
	return n
}

// RemoveByID drops the id from both notice collections.
func (b *noticeBoard) RemoveByID(id string) int {
	removed := b.DismissError(id)
	removed += b.DismissWarning(id)
	return removed
}

func removeNotice(notices []types.Notice, id string) ([]types.Notice, int) {
	removed := 0
	kept := notices[:0]
	for _, n := range notices {
		if n.ID == id {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	return kept, removed
}

func (b *noticeBoard) Errors() []types.Notice {
	return append([]types.Notice{}, b.errors...)
}

func (b *noticeBoard) Warnings() []types.Notice {
	return append([]types.Notice{}, b.warnings...)
}

func (b *noticeBoard) Feed() []types.StatusMessage {
	out := make([]types.StatusMessage, 0, len(b.feed))
	for _, entry := range b.feed {
		out = append(out, entry.msg)
	}
	return out
}

// Timers returns every live dismissal timer, for teardown.
func (b *noticeBoard) Timers() []CancelHandle {
	out := make([]CancelHandle, 0, len(b.feed))
	for _, entry := range b.feed {
		if entry.timer != nil {
			out = append(out, entry.timer)
		}
	}
	return out
}

func noticeID(eventID string) string {
	if eventID != "" {
		return eventID
	}
	return uuid.NewString()
}
