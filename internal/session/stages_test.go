package session

import (
	"testing"
	"time"

	"atelier/internal/types"
)

func TestStageUpsertCreatesThenUpdates(t *testing.T) {
	tr := newStageTracker()
	t0 := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	if created := tr.Upsert(types.ChannelChat, "m1", "drafting", 0.2, t0); !created {
		t.Fatalf("first upsert should create the stage")
	}
	if created := tr.Upsert(types.ChannelChat, "m1", "drafting", 0.6, t0.Add(time.Second)); created {
		t.Fatalf("second upsert should update, not create")
	}

	active := tr.Active()
	if len(active) != 1 {
		t.Fatalf("expected exactly one stage, got %d", len(active))
	}
	if active[0].Progress != 0.6 {
		t.Fatalf("progress = %v, want most recent value 0.6", active[0].Progress)
	}
	if !active[0].StartedAt.Equal(t0) {
		t.Fatalf("started-at must not move on update")
	}
}

func TestStageMatchByIDWinsOverName(t *testing.T) {
	tr := newStageTracker()
	t0 := time.Now()
	tr.Upsert(types.ChannelImage, "a", "render", 0.1, t0)
	tr.Upsert(types.ChannelImage, "b", "render", 0.2, t0)

	tr.Upsert(types.ChannelImage, "b", "render", 0.9, t0)
	for _, s := range tr.Active() {
		switch s.ID {
		case "a":
			if s.Progress != 0.1 {
				t.Fatalf("stage a progress = %v, want untouched 0.1", s.Progress)
			}
		case "b":
			if s.Progress != 0.9 {
				t.Fatalf("stage b progress = %v, want 0.9", s.Progress)
			}
		}
	}
}

func TestStagesSharingNameStayDistinct(t *testing.T) {
	tr := newStageTracker()
	t0 := time.Now()
	tr.Upsert(types.ChannelImage, "a", "render", 0.1, t0)

	if created := tr.Upsert(types.ChannelImage, "b", "render", 0.2, t0); !created {
		t.Fatalf("second job with its own id must create a second stage")
	}
	if tr.Len() != 2 {
		t.Fatalf("expected two stages, got %d", tr.Len())
	}
}

func TestRemoveByNameClearsStageWithID(t *testing.T) {
	tr := newStageTracker()
	tr.Upsert(types.ChannelChat, "turn-1", "drafting", 0.5, time.Now())
	if !tr.Remove("", "drafting") {
		t.Fatalf("terminal event carrying only the stage name must clear the stage")
	}
	if tr.Len() != 0 {
		t.Fatalf("expected empty tracker, got %d", tr.Len())
	}
}

func TestStageNameFallbackMatch(t *testing.T) {
	tr := newStageTracker()
	t0 := time.Now()
	tr.Upsert(types.ChannelChat, "", "thinking", 0.3, t0)
	tr.Upsert(types.ChannelChat, "turn-1", "thinking", 0.7, t0)

	if tr.Len() != 1 {
		t.Fatalf("name fallback should update the existing stage, got %d stages", tr.Len())
	}
	active := tr.Active()
	if active[0].Progress != 0.7 || active[0].ID != "turn-1" {
		t.Fatalf("unexpected stage after fallback match: %#v", active[0])
	}
}

func TestStageRemoveClearsEitherView(t *testing.T) {
	tr := newStageTracker()
	t0 := time.Now().Add(-10 * time.Second)
	tr.Upsert(types.ChannelChat, "old", "analysis", 0.5, t0)
	tr.Upsert(types.ChannelChat, "new", "draft", 0.1, time.Now())
	tr.Promote(time.Now())

	if len(tr.LongRunning()) != 1 || len(tr.Active()) != 1 {
		t.Fatalf("expected one stage per view")
	}
	if !tr.Remove("old", "") {
		t.Fatalf("terminal removal must clear the long-running view")
	}
	if !tr.Remove("", "draft") {
		t.Fatalf("terminal removal by name must clear the active view")
	}
	if tr.Len() != 0 {
		t.Fatalf("expected empty tracker, got %d", tr.Len())
	}
	if tr.Remove("old", "analysis") {
		t.Fatalf("removing a missing stage is a no-op")
	}
}

func TestStagePromotionIsOneShot(t *testing.T) {
	tr := newStageTracker()
	t0 := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	tr.Upsert(types.ChannelImage, "j1", "upscale", 0.4, t0)

	if n := tr.Promote(t0.Add(4 * time.Second)); n != 0 {
		t.Fatalf("stage under threshold promoted early: %d", n)
	}
	if len(tr.Active()) != 1 {
		t.Fatalf("stage should still be active")
	}
	if n := tr.Promote(t0.Add(5 * time.Second)); n != 1 {
		t.Fatalf("stage at exactly the threshold must promote, got %d", n)
	}
	if len(tr.Active()) != 0 || len(tr.LongRunning()) != 1 {
		t.Fatalf("stage must live in exactly the long-running view")
	}
	if n := tr.Promote(t0.Add(7 * time.Second)); n != 0 {
		t.Fatalf("already promoted stage counted again: %d", n)
	}
}

func TestPromotedStageKeepsReceivingUpdates(t *testing.T) {
	tr := newStageTracker()
	t0 := time.Now().Add(-time.Minute)
	tr.Upsert(types.ChannelImage, "j1", "upscale", 0.4, t0)
	tr.Promote(time.Now())

	tr.Upsert(types.ChannelImage, "j1", "upscale", 0.8, time.Now())
	long := tr.LongRunning()
	if len(long) != 1 || long[0].Progress != 0.8 {
		t.Fatalf("updates must mirror into the long-running view: %#v", long)
	}
}
