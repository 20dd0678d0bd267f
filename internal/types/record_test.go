package types

import (
	"encoding/json"
	"testing"
)

func TestDecodeRecordsNumericAndStringIDs(t *testing.T) {
	payload := json.RawMessage(`[{"id":7,"url":"https://cdn/7.png"},{"id":"img-8","thumb_url":"https://cdn/8-t.png"}]`)
	records, err := DecodeRecords(payload)
	if err != nil {
		t.Fatalf("DecodeRecords error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "7" || records[0].URL != "https://cdn/7.png" {
		t.Fatalf("unexpected first record: %#v", records[0])
	}
	if records[1].ID != "img-8" || records[1].ThumbURL != "https://cdn/8-t.png" {
		t.Fatalf("unexpected second record: %#v", records[1])
	}
}

func TestDecodeRecordsSkipsEntriesWithoutID(t *testing.T) {
	payload := json.RawMessage(`[{"url":"https://cdn/a.png"},{"id":" "},{"id":"keep"}]`)
	records, err := DecodeRecords(payload)
	if err != nil {
		t.Fatalf("DecodeRecords error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "keep" {
		t.Fatalf("expected only the keep record, got %#v", records)
	}
}

func TestDecodeRecordsEmptyPayload(t *testing.T) {
	records, err := DecodeRecords(nil)
	if err != nil || records != nil {
		t.Fatalf("expected nil, nil for empty payload, got %#v, %v", records, err)
	}
}

func TestDecodeRecordsMalformedPayload(t *testing.T) {
	if _, err := DecodeRecords(json.RawMessage(`{"id":7}`)); err == nil {
		t.Fatalf("expected error for non-array payload")
	}
}
