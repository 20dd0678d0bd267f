package types

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Record is a persisted artifact produced by a completed job, e.g. a
// generated image.
type Record struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	URL         string    `json:"url,omitempty"`
	ThumbURL    string    `json:"thumb_url,omitempty"`
	DownloadURL string    `json:"download_url,omitempty"`
	Prompt      string    `json:"prompt,omitempty"`
}

type wireRecord struct {
	ID          json.RawMessage `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	URL         string          `json:"url"`
	ThumbURL    string          `json:"thumb_url"`
	DownloadURL string          `json:"download_url"`
	Prompt      string          `json:"prompt"`
}

// DecodeRecords parses a complete event's data payload. Gateways emit
// record ids both as numbers and as strings; both normalize to the
// string form. Entries without an id are skipped.
func DecodeRecords(data json.RawMessage) ([]Record, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw []wireRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(raw))
	for _, entry := range raw {
		id := decodeRecordID(entry.ID)
		if id == "" {
			continue
		}
		out = append(out, Record{
			ID:          id,
			CreatedAt:   entry.CreatedAt,
			URL:         entry.URL,
			ThumbURL:    entry.ThumbURL,
			DownloadURL: entry.DownloadURL,
			Prompt:      entry.Prompt,
		})
	}
	return out, nil
}

func decodeRecordID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strings.TrimSpace(asString)
	}
	var asNumber int64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return strconv.FormatInt(asNumber, 10)
	}
	return ""
}
