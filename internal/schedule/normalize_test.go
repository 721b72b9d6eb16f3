package schedule

import (
	"testing"

	"github.com/zlahmar/EcoTri-sub000/internal/opendata"
)

func TestNormalizeBasics(t *testing.T) {
	records := []opendata.RawCollectionRecord{
		{Place: "Paris", WeekIndex: 1, CollectionTypeText: "Recyclable", DayText: "lundi"},
	}

	schedules := Normalize(records)
	if len(schedules) != 1 {
		t.Fatalf("got %d schedules, want 1", len(schedules))
	}

	s := schedules[0]
	if s.ID != "api-Paris-plastic-1" {
		t.Errorf("id = %q, want %q", s.ID, "api-Paris-plastic-1")
	}
	if s.Type != Plastic {
		t.Errorf("type = %q, want plastic", s.Type)
	}
	if s.DayOfWeek != 1 {
		t.Errorf("day = %d, want 1 (Monday)", s.DayOfWeek)
	}
	if s.Time != DefaultTime {
		t.Errorf("time = %q, want default %q", s.Time, DefaultTime)
	}
	if !s.Enabled {
		t.Error("schedules should be enabled by default")
	}
	if s.Location != "Paris" {
		t.Errorf("location = %q, want Paris", s.Location)
	}
}

func TestNormalizeDeduplicates(t *testing.T) {
	records := []opendata.RawCollectionRecord{
		{Place: "Paris", CollectionTypeText: "recyclable", DayText: "lundi"},
		{Place: "Paris", CollectionTypeText: "recyclable", DayText: "lundi"},
	}

	if got := Normalize(records); len(got) != 1 {
		t.Errorf("exact duplicate produced %d schedules, want 1", len(got))
	}
}

func TestNormalizeDropsUnrecognized(t *testing.T) {
	tests := []struct {
		name    string
		records []opendata.RawCollectionRecord
		want    int
	}{
		{
			name: "unknown day dropped, rest kept",
			records: []opendata.RawCollectionRecord{
				{Place: "Paris", CollectionTypeText: "Verre", DayText: "Monday"},
				{Place: "Paris", CollectionTypeText: "Verre", DayText: "mardi"},
			},
			want: 1,
		},
		{
			name: "unknown type dropped, rest kept",
			records: []opendata.RawCollectionRecord{
				{Place: "Lyon", CollectionTypeText: "gravats", DayText: "jeudi"},
				{Place: "Lyon", CollectionTypeText: "Papier", DayText: "jeudi"},
			},
			want: 1,
		},
		{
			name: "empty batch",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.records); len(got) != tt.want {
				t.Errorf("got %d schedules, want %d", len(got), tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	records := []opendata.RawCollectionRecord{
		{Place: "Paris", CollectionTypeText: "Recyclable", DayText: "Lundi"},
		{Place: "Paris", CollectionTypeText: "Verre", DayText: "Mercredi"},
		{Place: "Lyon", CollectionTypeText: "Déchets verts", DayText: "Samedi"},
	}

	first := Normalize(records)
	second := Normalize(records)

	if len(first) != len(second) {
		t.Fatalf("counts differ: %d vs %d", len(first), len(second))
	}
	ids := make(map[string]struct{}, len(first))
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("id %d differs: %q vs %q", i, first[i].ID, second[i].ID)
		}
		if _, dup := ids[first[i].ID]; dup {
			t.Errorf("duplicate id %q", first[i].ID)
		}
		ids[first[i].ID] = struct{}{}
	}
}

func TestResolveDay(t *testing.T) {
	tests := []struct {
		in     string
		day    int
		wantOK bool
	}{
		{"dimanche", 0, true},
		{"Lundi", 1, true},
		{" SAMEDI ", 6, true},
		{"Monday", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		day, ok := ResolveDay(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ResolveDay(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && day != tt.day {
			t.Errorf("ResolveDay(%q) = %d, want %d", tt.in, day, tt.day)
		}
	}
}

func TestResolveTypeFirstMatchWins(t *testing.T) {
	tests := []struct {
		in     string
		want   WasteType
		wantOK bool
	}{
		{"Recyclable", Plastic, true},
		{"Verre", Glass, true},
		{"Papier carton", Paper, true},
		{"Ordures ménagères", Organic, true},
		{"Déchets verts", Organic, true},
		{"déchets électroniques", Electronics, true},
		{"Textile", Textile, true},
		// "verre" rule precedes "recycl": containment is ordered.
		{"verre recyclable", Glass, true},
		{"gravats", "", false},
	}

	for _, tt := range tests {
		got, ok := ResolveType(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ResolveType(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ResolveType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterByCity(t *testing.T) {
	schedules := []Schedule{
		{ID: "1", Location: "Grand Poitiers"},
		{ID: "2", Location: "Paris"},
		{ID: "3", Location: "Lyon"},
	}

	tests := []struct {
		city string
		want []string
	}{
		{"poitiers", []string{"1"}},          // filter contained in location
		{"Paris 11e arrondissement", []string{"2"}}, // location contained in filter
		{"", []string{"1", "2", "3"}},
		{"bordeaux", []string{}},
	}

	for _, tt := range tests {
		got := FilterByCity(schedules, tt.city)
		if len(got) != len(tt.want) {
			t.Errorf("FilterByCity(%q) returned %d schedules, want %d", tt.city, len(got), len(tt.want))
			continue
		}
		for i, s := range got {
			if s.ID != tt.want[i] {
				t.Errorf("FilterByCity(%q)[%d] = %q, want %q", tt.city, i, s.ID, tt.want[i])
			}
		}
	}
}
