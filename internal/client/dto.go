package client

import "atelier/internal/types"

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version,omitempty"`
}

type RecordsResponse struct {
	Records []types.Record `json:"records"`
}
