package session

import (
	"time"

	"atelier/internal/types"
)

// stagePromotionAge is how old a stage must be before the sweep moves
// it into the long-running view.
const stagePromotionAge = 5 * time.Second

// stageTracker is a single authoritative registry of in-progress
// stages. The active and long-running collections exposed to callers
// are views filtered on the promoted flag, so a stage can never exist
// in both at once.
type stageTracker struct {
	stages []*types.Stage
}

func newStageTracker() *stageTracker {
	return &stageTracker{}
}

// Upsert applies a progress update. Matching prefers the event id; the
// stage name is the fallback key. Unmatched events start a new stage.
// It reports whether a new stage was created.
func (t *stageTracker) Upsert(channel types.ChannelName, id, name string, progress float64, now time.Time) bool {
	if stage := t.find(id, name); stage != nil {
		stage.Progress = progress
		if name != "" {
			stage.Name = name
		}
		if stage.ID == "" && id != "" {
			stage.ID = id
		}
		return false
	}
	t.stages = append(t.stages, &types.Stage{
		ID:        id,
		Name:      name,
		Progress:  progress,
		Channel:   channel,
		StartedAt: now,
	})
	return true
}

// Remove clears the stage matching id or name, wherever it currently
// lives. Unlike upsert matching, the name fallback here also matches
// stages that carry an id: terminal events do not always echo the id
// of the progress events that built the stage. A miss is a no-op, not
// an error.
func (t *stageTracker) Remove(id, name string) bool {
	stage := t.find(id, name)
	if stage == nil && name != "" {
		for _, s := range t.stages {
			if s.Name == name {
				stage = s
				break
			}
		}
	}
	if stage == nil {
		return false
	}
	kept := t.stages[:0]
	for _, s := range t.stages {
		if s != stage {
			kept = append(kept, s)
		}
	}
	t.stages = kept
	return true
}

// Promote flags every stage whose age has reached stagePromotionAge
// and returns how many were newly promoted this pass.
func (t *stageTracker) Promote(now time.Time) int {
	promoted := 0
	for _, s := range t.stages {
		if s.Promoted {
			continue
		}
		if now.Sub(s.StartedAt) >= stagePromotionAge {
			s.Promoted = true
			promoted++
		}
	}
	return promoted
}

func (t *stageTracker) Active() []types.Stage {
	return t.view(false)
}

func (t *stageTracker) LongRunning() []types.Stage {
	return t.view(true)
}

func (t *stageTracker) Len() int {
	return len(t.stages)
}

func (t *stageTracker) view(promoted bool) []types.Stage {
	out := make([]types.Stage, 0, len(t.stages))
	for _, s := range t.stages {
		if s.Promoted == promoted {
			out = append(out, *s)
		}
	}
	return out
}

// find matches by id first. The name fallback only considers stages
// that never received an id, so two jobs sharing a stage name stay
// distinct once each carries its own id.
func (t *stageTracker) find(id, name string) *types.Stage {
	if id != "" {
		for _, s := range t.stages {
			if s.ID == id {
				return s
			}
		}
	}
	if name == "" {
		return nil
	}
	for _, s := range t.stages {
		if s.Name == name && s.ID == "" {
			return s
		}
	}
	return nil
}
