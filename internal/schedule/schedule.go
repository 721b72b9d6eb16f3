// Package schedule holds the canonical collection-schedule model, the
// normalization pipeline that produces it from raw open-data records,
// and the query facade applications consume.
package schedule

// WasteType enumerates the canonical collection categories.
type WasteType string

const (
	Plastic     WasteType = "plastic"
	Glass       WasteType = "glass"
	Paper       WasteType = "paper"
	Metal       WasteType = "metal"
	Organic     WasteType = "organic"
	Electronics WasteType = "electronics"
	Textile     WasteType = "textile"
)

// WasteTypes lists every canonical type in display order.
var WasteTypes = []WasteType{Plastic, Glass, Paper, Metal, Organic, Electronics, Textile}

// Schedule is one normalized, deduplicated collection event. It is
// never mutated after normalization, only filtered and copied. The ID
// is derived from (location, type, day) so re-normalizing identical
// input yields identical ids.
type Schedule struct {
	ID        string    `json:"id"`
	Type      WasteType `json:"type"`
	DayOfWeek int       `json:"day_of_week"` // 0 = Sunday ... 6 = Saturday
	Time      string    `json:"time"`        // HH:MM
	Enabled   bool      `json:"enabled"`
	Location  string    `json:"location"`
}

// DayNames maps DayOfWeek values to French day names, Sunday first.
// Week buckets are keyed by these.
var DayNames = [7]string{"Dimanche", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}
