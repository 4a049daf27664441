package myweblog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const apiTimestampLayout = "2006-01-02 15:04:05"

// Envelope carries the discriminator fields the API echoes on every
// response: the qtype that was served and the API version that served it.
type Envelope struct {
	QType        string `json:"qType"`
	APIVersion   string `json:"APIVersion"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

func (e Envelope) envelope() Envelope { return e }

// FlexInt decodes JSON integers that the PHP backend emits either as
// numbers or as quoted strings. Empty strings and null decode to zero.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (i *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	switch s {
	case "", "null", "false":
		*i = 0
		return nil
	case "true":
		*i = 1
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse integer %q: %w", s, err)
	}
	*i = FlexInt(v)
	return nil
}

// Bool reports whether the value is a truthy 0|1 flag.
func (i FlexInt) Bool() bool { return i != 0 }

// FlexFloat decodes JSON numbers that the backend emits either as numbers
// or as quoted strings. Empty strings and null decode to zero.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", s, err)
	}
	*f = FlexFloat(v)
	return nil
}

// Object is a bookable club object, in practice an aircraft.
type Object struct {
	ID           FlexInt `json:"ID"`
	Registration string  `json:"regnr"`
	ClubID       FlexInt `json:"club_id"`
	ClubName     string  `json:"clubname"`
	Model        string  `json:"model"`
	Category     FlexInt `json:"bobject_cat"`
	Thumbnail    string  `json:"objectThumbnail,omitempty"`
}

// Bookable reports whether the object is a flyable aircraft: it has a
// registration and a model, and the model is not an "x"-prefixed simulator
// entry.
func (o Object) Bookable() bool {
	if o.Registration == "" || o.Model == "" {
		return false
	}
	return !strings.HasPrefix(strings.ToLower(o.Model), "x")
}

// ObjectsResponse mirrors the getObjects payload.
type ObjectsResponse struct {
	Envelope
	Objects []Object `json:"Object"`
}

// Booking is a reservation of an object for a time slot.
type Booking struct {
	ID             FlexInt `json:"ID"`
	AircraftID     FlexInt `json:"ac_id"`
	Registration   string  `json:"regnr"`
	Category       FlexInt `json:"bobject_cat"`
	ClubID         FlexInt `json:"club_id"`
	UserID         FlexInt `json:"user_id"`
	Start          string  `json:"bStart"`
	End            string  `json:"bEnd"`
	Type           string  `json:"typ"`
	PrimaryBooking FlexInt `json:"primary_booking"`
	Comment        string  `json:"fritext"`
	StudentID      FlexInt `json:"elevuserid"`
	SeatsLeft      FlexInt `json:"platserkvar"`
	Fullname       string  `json:"fullname"`
	Email          string  `json:"email"`
	Mobile         string  `json:"completeMobile"`
}

// StartTime returns the parsed start of the slot when possible.
func (b Booking) StartTime() time.Time { return parseTime(b.Start) }

// EndTime returns the parsed end of the slot when possible.
func (b Booking) EndTime() time.Time { return parseTime(b.End) }

// EndsBefore reports whether the slot is over by the given instant. Slots
// with unparseable timestamps never report as over.
func (b Booking) EndsBefore(t time.Time) bool {
	end := b.EndTime()
	return !end.IsZero() && end.Before(t)
}

// ActiveAt reports whether the slot covers the given instant.
func (b Booking) ActiveAt(t time.Time) bool {
	start, end := b.StartTime(), b.EndTime()
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !t.Before(start) && t.Before(end)
}

// SunAirport describes the user's reference airport in sun data.
type SunAirport struct {
	Name      string    `json:"name"`
	ICAO      string    `json:"icao"`
	IATA      string    `json:"iata"`
	Latitude  FlexFloat `json:"lat"`
	Longitude FlexFloat `json:"lon"`
}

// SunTimes holds twilight and sun times for one date, local to the
// reference airport.
type SunTimes struct {
	MorningTwilight string `json:"morningTwilight"`
	Sunrise         string `json:"sunrise"`
	Sunset          string `json:"sunset"`
	EveningTwilight string `json:"eveningTwilight"`
}

// SunData aggregates reference airport info with per-date sun times.
type SunData struct {
	RefAirport SunAirport          `json:"refAirport"`
	Dates      map[string]SunTimes `json:"dates"`
}

// BookingsResponse mirrors the getBookings payload.
type BookingsResponse struct {
	Envelope
	Bookings []Booking `json:"Booking"`
	Sun      *SunData  `json:"sunData,omitempty"`
}

// BalanceResponse mirrors the getBalance payload. The fields sit at the top
// level of the response next to the envelope echo.
type BalanceResponse struct {
	Envelope
	Fullname string    `json:"fullname"`
	Balance  FlexFloat `json:"balance"`
	Currency string    `json:"currency"`
}

// Transaction is one account ledger row. Field names are defined by the
// remote service and have shifted between API versions; unknown fields are
// ignored rather than rejected.
type Transaction struct {
	ID      FlexInt   `json:"ID"`
	Date    string    `json:"date"`
	Type    string    `json:"typ"`
	Amount  FlexFloat `json:"amount"`
	Balance FlexFloat `json:"balance"`
	Comment string    `json:"fritext"`
}

// TransactionsResponse mirrors the getTransactions payload.
type TransactionsResponse struct {
	Envelope
	Transactions []Transaction `json:"Transaction"`
}

// FlightLogEntry is one journal row for a completed flight. Like
// transactions, the exact field set varies between API versions.
type FlightLogEntry struct {
	ID            FlexInt   `json:"ID"`
	AircraftID    FlexInt   `json:"ac_id"`
	Registration  string    `json:"regnr"`
	Date          string    `json:"flight_datum"`
	Fullname      string    `json:"fullname"`
	Departure     string    `json:"departure"`
	Arrival       string    `json:"arrival"`
	BlockStart    string    `json:"block_start"`
	BlockEnd      string    `json:"block_end"`
	AirborneStart string    `json:"airborne_start"`
	AirborneEnd   string    `json:"airborne_end"`
	BlockTotal    FlexFloat `json:"block_total"`
	AirborneTotal FlexFloat `json:"airborne_total"`
	TachoStart    FlexFloat `json:"tacho_start"`
	TachoEnd      FlexFloat `json:"tacho_end"`
	Landings      FlexInt   `json:"landings"`
	Comment       string    `json:"fritext"`
}

// FlightLogResponse mirrors the getFlightLog and getFlightLogReversed
// payloads.
type FlightLogResponse struct {
	Envelope
	Entries []FlightLogEntry `json:"FlightLog"`
}

// MutationResult is the small status mapping returned by the mutating
// operations: infoMessageTitle/infoMessage on success, Result "OK" for
// deletions and cuts.
type MutationResult struct {
	Envelope
	InfoMessageTitle string `json:"infoMessageTitle"`
	InfoMessage      string `json:"infoMessage"`
	Result           string `json:"Result"`
}

// OK reports whether the remote service acknowledged the mutation.
func (r MutationResult) OK() bool {
	return r.Result == "OK" || r.InfoMessageTitle != "" || r.InfoMessage != ""
}

type tokenResponse struct {
	Envelope
	AppToken string `json:"app_token"`
}

// parseTime copes with the backend's mixed timestamp emissions: unix
// seconds (possibly quoted), RFC 3339 with or without seconds, and the
// legacy "2006-01-02 15:04:05" form in local time.
func parseTime(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}
	}
	if secs, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return time.Unix(secs, 0)
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04-07:00"} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(apiTimestampLayout, trimmed, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
