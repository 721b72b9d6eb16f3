// Package opendata client for the municipal waste-collection records
// published on the open-data portal, plus the bundled offline copy of
// the same data.
package opendata

import "fmt"

// RawCollectionRecord is one upstream record, prior to normalization.
// Field vocabulary is inconsistent across sources: Place is free text,
// CollectionTypeText mixes wordings like "recyclable" and "ordures
// ménagères", DayText is a French weekday name in arbitrary casing.
type RawCollectionRecord struct {
	Place              string `json:"lieu"`
	WeekIndex          int    `json:"semaine"`
	CollectionTypeText string `json:"type_recyclable_ordures_menageresllecte"`
	DayText            string `json:"jour"`
}

// recordsResponse is the envelope the records endpoint answers with.
type recordsResponse struct {
	TotalCount int                   `json:"total_count"`
	Results    []RawCollectionRecord `json:"results"`
}

// APIError is the shape network and server failures are surfaced in.
// Code carries the HTTP status when one was received, 0 otherwise.
type APIError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("open-data API error (status %d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("open-data API error: %s", e.Message)
}

// TestResult is the outcome of a health probe against the live API.
type TestResult struct {
	Success        bool   `json:"success"`
	DataCount      int    `json:"data_count,omitempty"`
	Error          string `json:"error,omitempty"`
	ResponseTimeMs int64  `json:"response_time_ms"`
}
