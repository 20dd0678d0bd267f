package session

import "atelier/internal/types"

// dedupFilter drops an event when its identity matches the last
// accepted event on the same channel. The common case it guards
// against is the same event delivered twice after a gateway reconnect.
// Identity is id plus type: a job emits progress and complete under
// one id, and only a literal redelivery repeats both.
type dedupFilter struct {
	last map[types.ChannelName]string
}

func newDedupFilter() *dedupFilter {
	return &dedupFilter{last: make(map[types.ChannelName]string)}
}

// Accept reports whether the event should be processed. Events without
// an id are always accepted and leave the stored identity untouched.
func (f *dedupFilter) Accept(channel types.ChannelName, id, eventType string) bool {
	if id == "" {
		return true
	}
	key := id + "\x00" + eventType
	if f.last[channel] == key {
		return false
	}
	f.last[channel] = key
	return true
}
