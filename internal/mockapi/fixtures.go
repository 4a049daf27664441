package mockapi

import "time"

// Aircraft is one bookable object seeded into the mock service.
type Aircraft struct {
	ID           int64
	Registration string
	ClubID       int64
	ClubName     string
	Model        string
	Category     int
	Thumbnail    string
}

// Booking is one reservation held by the mock service. Start and End are
// kept as times internally and emitted as quoted unix seconds, one of the
// timestamp forms the real backend produces.
type Booking struct {
	ID         int64
	AircraftID int64
	UserID     int64
	Fullname   string
	Start      time.Time
	End        time.Time
	Comment    string
	SeatsLeft  int
}

// Transaction is one account ledger row.
type Transaction struct {
	ID      int64
	Date    string
	Type    string
	Amount  float64
	Balance float64
	Comment string
}

// FlightEntry is one flight log row.
type FlightEntry struct {
	ID           int64
	AircraftID   int64
	Registration string
	Date         string
	Fullname     string
	Departure    string
	Arrival      string
	BlockTotal   float64
	Landings     int
}

// Fixtures seeds the mock service with one authenticated club member and
// their club's data. Bookings whose UserID differs from UserID belong to
// other members and are visible but not mutable through the API.
type Fixtures struct {
	Username  string
	Password  string
	AppSecret string

	UserID   int64
	Fullname string
	Balance  float64
	Currency string

	RefAirportName string
	RefAirportICAO string

	Aircraft     []Aircraft
	Bookings     []Booking
	Transactions []Transaction
	FlightLog    []FlightEntry

	// IssuedTokens are accepted as already-exchanged app tokens, for
	// clients seeded with WithAppToken.
	IssuedTokens []string
}

// DefaultFixtures returns a small Swedish club: two aircraft, a simulator
// that must not show up as bookable, a booking of the member's own and one
// belonging to somebody else.
func DefaultFixtures() Fixtures {
	now := time.Now().Truncate(time.Minute)
	return Fixtures{
		Username:  "sven",
		Password:  "flyga123",
		AppSecret: "mock-app-secret",

		UserID:   101,
		Fullname: "Sven Pilot",
		Balance:  1250.50,
		Currency: "SEK",

		RefAirportName: "Skavsta",
		RefAirportICAO: "ESKN",

		Aircraft: []Aircraft{
			{ID: 7, Registration: "SE-ABC", ClubID: 1, ClubName: "Nyköpings FK", Model: "PA-28-161", Category: 1,
				Thumbnail: "iVBORw0KGgoAAAANSUhEUg=="},
			{ID: 8, Registration: "SE-DEF", ClubID: 1, ClubName: "Nyköpings FK", Model: "C172S", Category: 1},
			{ID: 9, Registration: "SIM-1", ClubID: 1, ClubName: "Nyköpings FK", Model: "xSimulator", Category: 2},
		},
		Bookings: []Booking{
			{ID: 500, AircraftID: 7, UserID: 101, Fullname: "Sven Pilot",
				Start: now.Add(24 * time.Hour), End: now.Add(26 * time.Hour), Comment: "Skolflygning"},
			{ID: 501, AircraftID: 8, UserID: 202, Fullname: "Anna Annan",
				Start: now.Add(3 * time.Hour), End: now.Add(5 * time.Hour)},
		},
		Transactions: []Transaction{
			{ID: 900, Date: "2026-02-01", Type: "Tankning", Amount: -642.00, Balance: 1250.50, Comment: "SE-ABC"},
			{ID: 899, Date: "2026-01-15", Type: "Inbetalning", Amount: 2000.00, Balance: 1892.50},
		},
		FlightLog: []FlightEntry{
			{ID: 800, AircraftID: 7, Registration: "SE-ABC", Date: "2026-02-01", Fullname: "Sven Pilot",
				Departure: "ESKN", Arrival: "ESKN", BlockTotal: 1.2, Landings: 3},
			{ID: 799, AircraftID: 8, Registration: "SE-DEF", Date: "2026-01-10", Fullname: "Sven Pilot",
				Departure: "ESKN", Arrival: "ESSB", BlockTotal: 0.8, Landings: 1},
		},
	}
}
