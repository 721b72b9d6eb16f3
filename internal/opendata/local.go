package opendata

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/collections.json data/communes.json
var bundledFS embed.FS

// communeRecord is the shape of the secondary bundled document. It is
// adapted into RawCollectionRecord before merging.
type communeRecord struct {
	City           string `json:"ville"`
	CollectionType string `json:"type_collecte"`
	Day            string `json:"jour"`
}

type communesDocument struct {
	Results []communeRecord `json:"results"`
}

// LoadBundled returns the records of both bundled datasets merged into
// the common raw shape. It is the first fallback when the live API is
// unavailable.
func LoadBundled() ([]RawCollectionRecord, error) {
	raw, err := bundledFS.ReadFile("data/collections.json")
	if err != nil {
		return nil, fmt.Errorf("reading bundled collections: %w", err)
	}
	var doc recordsResponse
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding bundled collections: %w", err)
	}
	records := doc.Results

	raw, err = bundledFS.ReadFile("data/communes.json")
	if err != nil {
		return nil, fmt.Errorf("reading bundled communes: %w", err)
	}
	var communes communesDocument
	if err := json.Unmarshal(raw, &communes); err != nil {
		return nil, fmt.Errorf("decoding bundled communes: %w", err)
	}
	for _, rec := range communes.Results {
		records = append(records, RawCollectionRecord{
			Place:              rec.City,
			CollectionTypeText: rec.CollectionType,
			DayText:            rec.Day,
		})
	}
	return records, nil
}
