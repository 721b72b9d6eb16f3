package cache

import "testing"

func TestKeyDeterministicAcrossParamOrder(t *testing.T) {
	// Maps have no insertion order, so build the same logical set twice
	// in different literal orders.
	a := Key("records", map[string]string{"limit": "10", "offset": "0", "where": "lieu"})
	b := Key("records", map[string]string{"where": "lieu", "offset": "0", "limit": "10"})

	if a != b {
		t.Errorf("keys differ for identical params: %q vs %q", a, b)
	}
	if want := "records?limit=10&offset=0&where=lieu"; a != want {
		t.Errorf("got key %q, want %q", a, want)
	}
}

func TestKeyWithoutParams(t *testing.T) {
	if got := Key("records", nil); got != "records" {
		t.Errorf("got %q, want bare endpoint", got)
	}
	if got := Key("records", map[string]string{}); got != "records" {
		t.Errorf("got %q, want bare endpoint for empty params", got)
	}
}

func TestCityKeyNormalizesCase(t *testing.T) {
	if CityKey("Paris") != CityKey("  paris ") {
		t.Error("city keys should be case- and space-insensitive")
	}
}
