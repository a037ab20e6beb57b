package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}
	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}
	if tt.UnixNano() != now.UnixNano() {
		t.Errorf("UnixNano() = %v, want %v", tt.UnixNano(), now.UnixNano())
	}
}

func TestTime_JSONRoundTrip(t *testing.T) {
	orig := Time(time.Date(2024, 6, 15, 8, 30, 0, 0, time.FixedZone("CST", 8*3600)))

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	// Always serialized in UTC
	if string(data) != `"2024-06-15T00:30:00Z"` {
		t.Errorf("Marshal = %s, want UTC RFC3339", data)
	}

	var parsed Time
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !parsed.Time().Equal(orig.Time()) {
		t.Errorf("round trip mismatch: got %v, want %v", parsed.Time(), orig.Time())
	}
}

func TestTime_ScanString(t *testing.T) {
	var tt Time
	if err := tt.Scan("2024-01-01T12:00:00Z"); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if tt.Unix() != time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).Unix() {
		t.Errorf("Scan produced wrong time: %v", tt.Time())
	}
}
