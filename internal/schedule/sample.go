package schedule

import "github.com/zlahmar/EcoTri-sub000/internal/opendata"

// fallbackCities is served when the live city listing is unavailable.
var fallbackCities = []string{"Paris", "Lyon", "Marseille", "Toulouse"}

// sampleRecords is the last-resort dataset, used when both the live API
// and the bundled documents fail. It flows through the same
// normalization pipeline as real data.
var sampleRecords = []opendata.RawCollectionRecord{
	{Place: "Paris", WeekIndex: 1, CollectionTypeText: "Recyclable", DayText: "Lundi"},
	{Place: "Paris", WeekIndex: 1, CollectionTypeText: "Verre", DayText: "Mercredi"},
	{Place: "Paris", WeekIndex: 2, CollectionTypeText: "Ordures ménagères", DayText: "Vendredi"},
	{Place: "Lyon", WeekIndex: 1, CollectionTypeText: "Recyclable", DayText: "Mardi"},
	{Place: "Lyon", WeekIndex: 1, CollectionTypeText: "Papier", DayText: "Jeudi"},
	{Place: "Marseille", WeekIndex: 1, CollectionTypeText: "Recyclable", DayText: "Lundi"},
	{Place: "Marseille", WeekIndex: 2, CollectionTypeText: "Verre", DayText: "Samedi"},
	{Place: "Toulouse", WeekIndex: 1, CollectionTypeText: "Recyclable", DayText: "Mercredi"},
}
