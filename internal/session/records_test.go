package session

import (
	"testing"

	"atelier/internal/types"
)

func TestRecordShelfPrependsNewestFirst(t *testing.T) {
	s := newRecordShelf()
	s.SetAll([]types.Record{{ID: "1"}, {ID: "2"}})

	if !s.Prepend(types.Record{ID: "3"}) {
		t.Fatalf("new record should be inserted")
	}
	records := s.List()
	if len(records) != 3 || records[0].ID != "3" {
		t.Fatalf("expected record 3 at index 0, got %#v", records)
	}
}

func TestRecordShelfIgnoresDuplicatesAndEmptyIDs(t *testing.T) {
	s := newRecordShelf()
	s.Prepend(types.Record{ID: "7"})
	if s.Prepend(types.Record{ID: "7"}) {
		t.Fatalf("duplicate id should be ignored")
	}
	if s.Prepend(types.Record{}) {
		t.Fatalf("record without id should be ignored")
	}
	if len(s.List()) != 1 {
		t.Fatalf("shelf should hold exactly one record")
	}
}

func TestRecordShelfRemove(t *testing.T) {
	s := newRecordShelf()
	s.SetAll([]types.Record{{ID: "a"}, {ID: "b"}})
	if !s.Remove("a") {
		t.Fatalf("present record should be removed")
	}
	if s.Remove("a") {
		t.Fatalf("second removal should miss")
	}
	records := s.List()
	if len(records) != 1 || records[0].ID != "b" {
		t.Fatalf("unexpected shelf contents: %#v", records)
	}
}
