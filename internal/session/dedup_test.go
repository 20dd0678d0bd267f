package session

import (
	"testing"

	"atelier/internal/types"
)

func TestDedupRejectsRepeatedDelivery(t *testing.T) {
	f := newDedupFilter()
	if !f.Accept(types.ChannelStatus, "s1", "info") {
		t.Fatalf("first delivery should be accepted")
	}
	if f.Accept(types.ChannelStatus, "s1", "info") {
		t.Fatalf("repeated delivery should be rejected")
	}
	if !f.Accept(types.ChannelStatus, "s2", "info") {
		t.Fatalf("new id should be accepted")
	}
	if !f.Accept(types.ChannelStatus, "s1", "info") {
		t.Fatalf("older event should be accepted again after another event")
	}
}

func TestDedupAcceptsLifecycleUnderOneID(t *testing.T) {
	f := newDedupFilter()
	if !f.Accept(types.ChannelChat, "m1", "progress") {
		t.Fatalf("progress should be accepted")
	}
	if !f.Accept(types.ChannelChat, "m1", "complete") {
		t.Fatalf("complete under the same job id should be accepted")
	}
	if f.Accept(types.ChannelChat, "m1", "complete") {
		t.Fatalf("redelivered complete should be rejected")
	}
}

func TestDedupIsPerChannel(t *testing.T) {
	f := newDedupFilter()
	if !f.Accept(types.ChannelChat, "e1", "error") {
		t.Fatalf("chat delivery should be accepted")
	}
	if !f.Accept(types.ChannelImage, "e1", "error") {
		t.Fatalf("same event on another channel should be accepted")
	}
}

func TestDedupNeverRejectsEmptyID(t *testing.T) {
	f := newDedupFilter()
	for i := 0; i < 3; i++ {
		if !f.Accept(types.ChannelChat, "", "info") {
			t.Fatalf("events without an id must always pass")
		}
	}
	if !f.Accept(types.ChannelChat, "e1", "info") {
		t.Fatalf("id after empty ids should be accepted")
	}
	if !f.Accept(types.ChannelChat, "", "info") {
		t.Fatalf("empty id must not be compared against stored identity")
	}
	if f.Accept(types.ChannelChat, "e1", "info") {
		t.Fatalf("empty ids must not overwrite the stored identity")
	}
}
