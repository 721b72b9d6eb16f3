package schedule

import (
	"fmt"
	"strings"

	"github.com/zlahmar/EcoTri-sub000/internal/metrics"
	"github.com/zlahmar/EcoTri-sub000/internal/opendata"
)

// DefaultTime is assigned when a source record carries no time of day.
const DefaultTime = "06:00"

// weekdays resolves lowercased French day names. Anything not in this
// table drops the record; there is no default day.
var weekdays = map[string]int{
	"dimanche": 0,
	"lundi":    1,
	"mardi":    2,
	"mercredi": 3,
	"jeudi":    4,
	"vendredi": 5,
	"samedi":   6,
}

type typeRule struct {
	fragment  string
	canonical WasteType
}

// typeRules resolve free-text collection descriptions by substring
// containment, evaluated in order, first match wins. Anything matching
// no rule drops the record; there is no default type.
var typeRules = []typeRule{
	{"verre", Glass},
	{"papier", Paper},
	{"carton", Paper},
	{"métal", Metal},
	{"metal", Metal},
	{"électro", Electronics},
	{"electro", Electronics},
	{"textile", Textile},
	{"vêtement", Textile},
	{"déchets verts", Organic},
	{"vert", Organic},
	{"bio", Organic},
	{"organique", Organic},
	{"ordures", Organic},
	{"plastique", Plastic},
	{"emballage", Plastic},
	{"recycl", Plastic},
}

// ResolveDay maps a free-text weekday name to its 0-6 index,
// case-insensitively. ok is false for unrecognized names.
func ResolveDay(dayText string) (int, bool) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(dayText))]
	return day, ok
}

// ResolveType maps a free-text collection description to a canonical
// waste type. ok is false when no rule fragment is contained in it.
func ResolveType(typeText string) (WasteType, bool) {
	needle := strings.ToLower(strings.TrimSpace(typeText))
	for _, rule := range typeRules {
		if strings.Contains(needle, rule.fragment) {
			return rule.canonical, true
		}
	}
	return "", false
}

func dedupKey(rec opendata.RawCollectionRecord) string {
	return rec.Place + "|" + rec.DayText + "|" + rec.CollectionTypeText
}

// Normalize converts raw upstream records into canonical schedules.
// Exact duplicates on (place, dayText, typeText) are discarded
// first-seen-wins; records with an unrecognized day or type are dropped
// without affecting the rest of the batch. Drops are not reported to
// the caller, only counted.
func Normalize(records []opendata.RawCollectionRecord) []Schedule {
	seen := make(map[string]struct{}, len(records))
	schedules := make([]Schedule, 0, len(records))

	for _, rec := range records {
		key := dedupKey(rec)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		day, ok := ResolveDay(rec.DayText)
		if !ok {
			metrics.DroppedRecords.WithLabelValues("day").Inc()
			continue
		}
		wasteType, ok := ResolveType(rec.CollectionTypeText)
		if !ok {
			metrics.DroppedRecords.WithLabelValues("type").Inc()
			continue
		}

		schedules = append(schedules, Schedule{
			ID:        fmt.Sprintf("api-%s-%s-%d", rec.Place, wasteType, day),
			Type:      wasteType,
			DayOfWeek: day,
			Time:      DefaultTime,
			Enabled:   true,
			Location:  rec.Place,
		})
	}
	return schedules
}

// FilterByCity keeps schedules whose location matches city by substring
// containment in either direction, so partial-name queries tolerate
// both "Poitiers" vs "Grand Poitiers" and the reverse. An empty city
// keeps everything.
func FilterByCity(schedules []Schedule, city string) []Schedule {
	needle := strings.ToLower(strings.TrimSpace(city))
	if needle == "" {
		return schedules
	}

	filtered := make([]Schedule, 0, len(schedules))
	for _, s := range schedules {
		loc := strings.ToLower(s.Location)
		if strings.Contains(loc, needle) || strings.Contains(needle, loc) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
