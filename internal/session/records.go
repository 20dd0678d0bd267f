package session

import "atelier/internal/types"

// recordShelf is the in-memory registry of persisted records, newest
// first.
type recordShelf struct {
	records []types.Record
}

func newRecordShelf() *recordShelf {
	return &recordShelf{}
}

// SetAll replaces the registry with the backend listing.
func (s *recordShelf) SetAll(records []types.Record) {
	s.records = append([]types.Record{}, records...)
}

// Prepend inserts a record at the front. Records already present by id
// are left alone; it reports whether the record was new.
func (s *recordShelf) Prepend(record types.Record) bool {
	if record.ID == "" {
		return false
	}
	for _, existing := range s.records {
		if existing.ID == record.ID {
			return false
		}
	}
	s.records = append([]types.Record{record}, s.records...)
	return true
}

// Remove drops a record by id and reports whether it was present.
func (s *recordShelf) Remove(id string) bool {
	for i, record := range s.records {
		if record.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

func (s *recordShelf) List() []types.Record {
	return append([]types.Record{}, s.records...)
}
