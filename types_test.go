package myweblog

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexInt_UnmarshalForms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FlexInt
	}{
		{"bare number", `42`, 42},
		{"quoted number", `"42"`, 42},
		{"negative quoted", `"-7"`, -7},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
		{"bool true", `true`, 1},
		{"bool false", `false`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexInt
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}

	var got FlexInt
	if err := json.Unmarshal([]byte(`"abc"`), &got); err == nil {
		t.Fatalf("Unmarshal(abc) returned nil error, want parse error")
	}
}

func TestFlexFloat_UnmarshalForms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FlexFloat
	}{
		{"bare number", `1250.5`, 1250.5},
		{"quoted number", `"1250.50"`, 1250.5},
		{"quoted negative", `"-99.95"`, -99.95},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexFloat
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTime_Layouts(t *testing.T) {
	unix := parseTime("1767258000")
	if unix.Unix() != 1767258000 {
		t.Fatalf("parseTime(unix) = %v, want unix seconds honored", unix)
	}

	rfc := parseTime("2026-03-07T09:00:00+01:00")
	if rfc.IsZero() || rfc.UTC().Hour() != 8 {
		t.Fatalf("parseTime(rfc3339) = %v, want 08:00 UTC", rfc)
	}

	minute := parseTime("2026-03-07T09:00+01:00")
	if minute.IsZero() || minute.Minute() != 0 || minute.Hour() != 9 {
		t.Fatalf("parseTime(minute precision) = %v, want 09:00", minute)
	}

	legacy := parseTime("2026-03-07 09:00:00")
	if legacy.IsZero() || legacy.Hour() != 9 {
		t.Fatalf("parseTime(legacy) = %v, want local 09:00", legacy)
	}

	if !parseTime("").IsZero() || !parseTime("garbage").IsZero() {
		t.Fatalf("parseTime should return zero time for unparseable input")
	}
}

func TestObject_Bookable(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
		want bool
	}{
		{"aircraft", Object{Registration: "SE-ABC", Model: "PA28"}, true},
		{"no registration", Object{Model: "PA28"}, false},
		{"no model", Object{Registration: "SE-ABC"}, false},
		{"simulator entry", Object{Registration: "SIM-1", Model: "xSim"}, false},
		{"uppercase simulator", Object{Registration: "SIM-2", Model: "XPlane"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obj.Bookable(); got != tt.want {
				t.Errorf("Bookable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBooking_TimeHelpers(t *testing.T) {
	b := Booking{Start: "2026-03-07T09:00:00+01:00", End: "2026-03-07T11:00:00+01:00"}

	during := time.Date(2026, 3, 7, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	if !b.ActiveAt(during) {
		t.Fatalf("ActiveAt(during) = false, want true")
	}
	after := time.Date(2026, 3, 7, 11, 0, 0, 0, time.FixedZone("CET", 3600))
	if b.ActiveAt(after) {
		t.Fatalf("ActiveAt(end) = true, want false; end is exclusive")
	}

	// Unparseable slots are never active.
	broken := Booking{Start: "nope", End: "2026-03-07T11:00:00+01:00"}
	if broken.ActiveAt(during) {
		t.Fatalf("ActiveAt with broken start = true, want false")
	}

	later := time.Date(2026, 3, 7, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	if !b.EndsBefore(later) {
		t.Fatalf("EndsBefore(later) = false, want true")
	}
	if b.EndsBefore(during) {
		t.Fatalf("EndsBefore(during) = true, want false")
	}
	if (Booking{Start: "nope", End: "nope"}).EndsBefore(later) {
		t.Fatalf("EndsBefore with broken end = true, want false")
	}
}

func TestMutationResult_OK(t *testing.T) {
	if (MutationResult{}).OK() {
		t.Fatalf("empty result OK() = true, want false")
	}
	if !(MutationResult{Result: "OK"}).OK() {
		t.Fatalf("Result OK not recognized")
	}
	if !(MutationResult{InfoMessageTitle: "Bokning skapad"}).OK() {
		t.Fatalf("info title not recognized")
	}
}

func TestBookingsResponse_DecodesSunData(t *testing.T) {
	raw := `{
		"qType": "getBookings",
		"APIVersion": "2.0.3",
		"Booking": [{"ID": "1", "ac_id": "7", "platserkvar": ""}],
		"sunData": {
			"refAirport": {"name": "Skavsta", "icao": "ESKN", "lat": "58.788", "lon": "16.912"},
			"dates": {"2026-03-07": {"sunrise": "06:24", "sunset": "17:42"}}
		}
	}`
	var resp BookingsResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if len(resp.Bookings) != 1 || resp.Bookings[0].AircraftID != 7 {
		t.Fatalf("bookings = %#v, want ac_id 7", resp.Bookings)
	}
	if resp.Sun == nil || resp.Sun.RefAirport.ICAO != "ESKN" {
		t.Fatalf("sun data = %#v, want ESKN", resp.Sun)
	}
	if resp.Sun.Dates["2026-03-07"].Sunset != "17:42" {
		t.Fatalf("sun dates = %#v, want sunset 17:42", resp.Sun.Dates)
	}
}
