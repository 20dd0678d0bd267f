package app

import (
	"strings"
	"testing"
	"time"

	xansi "github.com/charmbracelet/x/ansi"

	"atelier/internal/types"
)

func plainView(m *Model) string {
	return xansi.Strip(m.View())
}

func TestViewShowsStagesAndPromotionMarker(t *testing.T) {
	session := &fakeSession{snapshot: types.Snapshot{
		ControlState: types.ControlRunning,
		Active:       []types.Stage{{ID: "m1", Name: "drafting", Progress: 0.5}},
		LongRunning:  []types.Stage{{ID: "j1", Name: "render", Progress: 0.2, Promoted: true}},
	}}
	m := newTestModel(session)
	out := plainView(m)
	if !strings.Contains(out, "drafting") {
		t.Fatalf("missing active stage:\n%s", out)
	}
	if !strings.Contains(out, "⏳ render") {
		t.Fatalf("missing long-running marker:\n%s", out)
	}
	if !strings.Contains(out, " 50%") {
		t.Fatalf("missing progress percentage:\n%s", out)
	}
}

func TestViewShowsUnreadBadge(t *testing.T) {
	session := &fakeSession{snapshot: types.Snapshot{Unread: 4}}
	m := newTestModel(session)
	if !strings.Contains(plainView(m), "4 unread") {
		t.Fatalf("missing unread badge")
	}
}

func TestViewShowsControlState(t *testing.T) {
	session := &fakeSession{snapshot: types.Snapshot{ControlState: types.ControlPaused}}
	m := newTestModel(session)
	if !strings.Contains(plainView(m), "paused") {
		t.Fatalf("missing paused badge")
	}
}

func TestViewShowsNoticesAndRecords(t *testing.T) {
	session := &fakeSession{snapshot: types.Snapshot{
		Errors:  []types.Notice{{ID: "n1", Message: "OOM", Stage: "render"}},
		Records: []types.Record{{ID: "7", Prompt: "a red fox"}},
	}}
	m := newTestModel(session)
	out := plainView(m)
	if !strings.Contains(out, "OOM (render)") {
		t.Fatalf("missing error notice:\n%s", out)
	}
	if !strings.Contains(out, "a red fox") {
		t.Fatalf("missing record:\n%s", out)
	}
}

func TestViewShowsStatusFeed(t *testing.T) {
	session := &fakeSession{snapshot: types.Snapshot{
		StatusFeed: []types.StatusMessage{{Message: "image ready: 7", Severity: types.SeveritySuccess}},
	}}
	m := newTestModel(session)
	if !strings.Contains(plainView(m), "image ready: 7") {
		t.Fatalf("missing status feed entry")
	}
}

func TestToastLineRendersAndExpires(t *testing.T) {
	m := newTestModel(&fakeSession{})
	m.showToast(types.SeverityError, "boom")
	if line := xansi.Strip(m.toastLine(40)); !strings.Contains(line, "boom") {
		t.Fatalf("toast line missing text: %q", line)
	}
	m.toastUntil = time.Now().Add(-time.Second)
	if line := m.toastLine(40); line != "" {
		t.Fatalf("expired toast still rendered: %q", line)
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("hello world", 5); xansi.StringWidth(got) > 5 {
		t.Fatalf("truncation too wide: %q", got)
	}
	if got := truncateToWidth("hi", 10); got != "hi" {
		t.Fatalf("short string changed: %q", got)
	}
	if got := truncateToWidth("hi", 0); got != "" {
		t.Fatalf("zero width should return empty, got %q", got)
	}
}

func TestPadToWidth(t *testing.T) {
	if got := padToWidth("ab", 5); got != "ab   " {
		t.Fatalf("padToWidth = %q", got)
	}
	if got := padToWidth("abcdef", 3); got != "abcdef" {
		t.Fatalf("padToWidth should not truncate, got %q", got)
	}
}
