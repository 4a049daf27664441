package mockapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

const apiVersion = "2.0.3"

// Server imitates the MyWebLog mobile API: one POST endpoint multiplexing
// every operation over a qtype parameter. It backs the package tests and
// runs standalone via cmd/mwlmockd for local development.
type Server struct {
	mu        sync.Mutex
	fx        Fixtures
	tokens    map[string]struct{}
	nextToken int
	nextID    int64

	router *mux.Router
	logger *log.Logger
}

// New builds a server over the given fixtures.
func New(fx Fixtures, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		fx:     fx,
		tokens: make(map[string]struct{}),
		nextID: 1000,
		logger: logger,
	}
	for _, tok := range fx.IssuedTokens {
		s.tokens[tok] = struct{}{}
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/api_mobile.php", s.handleAPI).Methods("POST")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("%s %s %s (%s)", r.RemoteAddr, r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "", "malformed request body")
		return
	}
	qtype := r.PostForm.Get("qtype")

	s.mu.Lock()
	defer s.mu.Unlock()

	if r.PostForm.Get("mwl_u") != s.fx.Username || r.PostForm.Get("mwl_p") != s.fx.Password {
		writeError(w, http.StatusForbidden, qtype, "Fel användarnamn eller lösenord")
		return
	}

	if qtype == "getAppToken" {
		s.handleAppToken(w, r)
		return
	}

	token := r.PostForm.Get("app_token")
	if _, ok := s.tokens[token]; !ok {
		writeError(w, http.StatusForbidden, qtype, "Ogiltig app-token")
		return
	}

	switch qtype {
	case "getObjects":
		s.handleObjects(w, r)
	case "getBookings":
		s.handleBookings(w, r)
	case "getBalance":
		s.handleBalance(w)
	case "getTransactions":
		s.handleTransactions(w, r)
	case "getFlightLog":
		s.handleFlightLog(w, r, false)
	case "getFlightLogReversed":
		s.handleFlightLog(w, r, true)
	case "createBooking":
		s.handleCreateBooking(w, r)
	case "cutBooking":
		s.handleCutBooking(w, r)
	case "deleteBooking":
		s.handleDeleteBooking(w, r)
	default:
		writeError(w, http.StatusBadRequest, qtype, fmt.Sprintf("unknown qtype %q", qtype))
	}
}

func (s *Server) handleAppToken(w http.ResponseWriter, r *http.Request) {
	if r.PostForm.Get("app_secret") != s.fx.AppSecret {
		writeError(w, http.StatusForbidden, "getAppToken", "Ogiltig app-nyckel")
		return
	}
	s.nextToken++
	token := fmt.Sprintf("mock-token-%d", s.nextToken)
	s.tokens[token] = struct{}{}
	writeEnvelope(w, "getAppToken", map[string]any{"app_token": token})
}

func (s *Server) handleObjects(w http.ResponseWriter, r *http.Request) {
	withThumb := r.PostForm.Get("includeObjectThumbnail") == "1"
	objects := make([]map[string]any, 0, len(s.fx.Aircraft))
	for _, a := range s.fx.Aircraft {
		row := map[string]any{
			"ID":          qint(a.ID),
			"regnr":       a.Registration,
			"club_id":     qint(a.ClubID),
			"clubname":    a.ClubName,
			"model":       a.Model,
			"bobject_cat": strconv.Itoa(a.Category),
		}
		if withThumb && a.Thumbnail != "" {
			row["objectThumbnail"] = a.Thumbnail
		}
		objects = append(objects, row)
	}
	writeEnvelope(w, "getObjects", map[string]any{"Object": objects})
}

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	form := r.PostForm
	includeSun := form.Get("includeSun") == "1"

	from := parseDate(form.Get("from_date"))
	if from.IsZero() {
		from = startOfDay(time.Now())
	}
	to := parseDate(form.Get("to_date"))
	if to.IsZero() {
		if includeSun {
			to = from.AddDate(0, 1, 0)
		} else {
			to = from
		}
	}
	windowStart := from
	windowEnd := to.AddDate(0, 0, 1) // window closes end of the to date

	var acID int64
	if raw := form.Get("ac_id"); raw != "" {
		acID, _ = strconv.ParseInt(raw, 10, 64)
	}
	onlyMine := form.Get("mybookings") == "1"

	bookings := make([]map[string]any, 0)
	for _, b := range s.fx.Bookings {
		if acID != 0 && b.AircraftID != acID {
			continue
		}
		if onlyMine && b.UserID != s.fx.UserID {
			continue
		}
		if !b.Start.Before(windowEnd) || !b.End.After(windowStart) {
			continue
		}
		bookings = append(bookings, s.bookingJSON(b))
	}

	extra := map[string]any{"Booking": bookings}
	if includeSun {
		extra["sunData"] = s.sunData(windowStart, windowEnd)
	}
	writeEnvelope(w, "getBookings", extra)
}

func (s *Server) bookingJSON(b Booking) map[string]any {
	regnr := ""
	category := 0
	clubID := int64(0)
	for _, a := range s.fx.Aircraft {
		if a.ID == b.AircraftID {
			regnr = a.Registration
			category = a.Category
			clubID = a.ClubID
		}
	}
	return map[string]any{
		"ID":              qint(b.ID),
		"ac_id":           qint(b.AircraftID),
		"regnr":           regnr,
		"bobject_cat":     strconv.Itoa(category),
		"club_id":         qint(clubID),
		"user_id":         qint(b.UserID),
		"bStart":          qint(b.Start.Unix()),
		"bEnd":            qint(b.End.Unix()),
		"typ":             "Bokning",
		"primary_booking": "1",
		"fritext":         b.Comment,
		"platserkvar":     strconv.Itoa(b.SeatsLeft),
		"fullname":        b.Fullname,
	}
}

func (s *Server) sunData(from, until time.Time) map[string]any {
	dates := make(map[string]any)
	for d := from; d.Before(until) && len(dates) < 62; d = d.AddDate(0, 0, 1) {
		dates[d.Format("2006-01-02")] = map[string]any{
			"morningTwilight": "05:48",
			"sunrise":         "06:24",
			"sunset":          "17:42",
			"eveningTwilight": "18:18",
		}
	}
	return map[string]any{
		"refAirport": map[string]any{
			"name": s.fx.RefAirportName,
			"icao": s.fx.RefAirportICAO,
			"lat":  "58.788",
			"lon":  "16.912",
		},
		"dates": dates,
	}
}

func (s *Server) handleBalance(w http.ResponseWriter) {
	writeEnvelope(w, "getBalance", map[string]any{
		"fullname": s.fx.Fullname,
		"balance":  qfloat(s.fx.Balance),
		"currency": s.fx.Currency,
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	limit := listLimit(r)
	rows := make([]map[string]any, 0, limit)
	for _, tx := range s.fx.Transactions {
		if len(rows) >= limit {
			break
		}
		rows = append(rows, map[string]any{
			"ID":      qint(tx.ID),
			"date":    tx.Date,
			"typ":     tx.Type,
			"amount":  qfloat(tx.Amount),
			"balance": qfloat(tx.Balance),
			"fritext": tx.Comment,
		})
	}
	writeEnvelope(w, "getTransactions", map[string]any{"Transaction": rows})
}

func (s *Server) handleFlightLog(w http.ResponseWriter, r *http.Request, reversed bool) {
	limit := listLimit(r)
	entries := s.fx.FlightLog
	if reversed {
		entries = make([]FlightEntry, len(s.fx.FlightLog))
		for i, e := range s.fx.FlightLog {
			entries[len(entries)-1-i] = e
		}
	}
	rows := make([]map[string]any, 0, limit)
	for _, e := range entries {
		if len(rows) >= limit {
			break
		}
		rows = append(rows, map[string]any{
			"ID":           qint(e.ID),
			"ac_id":        qint(e.AircraftID),
			"regnr":        e.Registration,
			"flight_datum": e.Date,
			"fullname":     e.Fullname,
			"departure":    e.Departure,
			"arrival":      e.Arrival,
			"block_total":  qfloat(e.BlockTotal),
			"landings":     strconv.Itoa(e.Landings),
		})
	}
	qtype := "getFlightLog"
	if reversed {
		qtype = "getFlightLogReversed"
	}
	writeEnvelope(w, qtype, map[string]any{"FlightLog": rows})
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	form := r.PostForm
	acID, _ := strconv.ParseInt(form.Get("ac_id"), 10, 64)
	var aircraft *Aircraft
	for i := range s.fx.Aircraft {
		if s.fx.Aircraft[i].ID == acID {
			aircraft = &s.fx.Aircraft[i]
		}
	}
	if aircraft == nil {
		writeEnvelope(w, "createBooking", map[string]any{"errorMessage": "Okänt objekt"})
		return
	}

	start := parseBookingTime(form.Get("bStart"))
	end := parseBookingTime(form.Get("bEnd"))
	if start.IsZero() || end.IsZero() || !end.After(start) {
		writeEnvelope(w, "createBooking", map[string]any{"errorMessage": "Ogiltig bokningstid"})
		return
	}
	for _, b := range s.fx.Bookings {
		if b.AircraftID == acID && b.Start.Before(end) && start.Before(b.End) {
			writeEnvelope(w, "createBooking", map[string]any{"errorMessage": "Objektet är redan bokat under den tiden"})
			return
		}
	}

	seats, _ := strconv.Atoi(form.Get("platserkvar"))
	s.nextID++
	s.fx.Bookings = append(s.fx.Bookings, Booking{
		ID:         s.nextID,
		AircraftID: acID,
		UserID:     s.fx.UserID,
		Fullname:   s.fx.Fullname,
		Start:      start,
		End:        end,
		Comment:    form.Get("fritext"),
		SeatsLeft:  seats,
	})
	writeEnvelope(w, "createBooking", map[string]any{
		"infoMessageTitle": "Bokning skapad",
		"infoMessage": fmt.Sprintf("%s är bokad %s–%s.",
			aircraft.Registration, start.Format("2006-01-02 15:04"), end.Format("15:04")),
	})
}

func (s *Server) handleCutBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PostForm.Get("ID"), 10, 64)
	now := time.Now()
	for i := range s.fx.Bookings {
		b := &s.fx.Bookings[i]
		if b.ID != id {
			continue
		}
		if b.UserID != s.fx.UserID {
			writeEnvelope(w, "cutBooking", map[string]any{"errorMessage": "Bokningen tillhör en annan medlem"})
			return
		}
		if now.Before(b.Start) || !now.Before(b.End) {
			writeEnvelope(w, "cutBooking", map[string]any{"errorMessage": "Bokningen pågår inte"})
			return
		}
		b.End = now
		writeEnvelope(w, "cutBooking", map[string]any{"Result": "OK"})
		return
	}
	writeEnvelope(w, "cutBooking", map[string]any{"errorMessage": "Okänd bokning"})
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PostForm.Get("ID"), 10, 64)
	for i, b := range s.fx.Bookings {
		if b.ID != id {
			continue
		}
		if b.UserID != s.fx.UserID {
			writeEnvelope(w, "deleteBooking", map[string]any{"errorMessage": "Bokningen tillhör en annan medlem"})
			return
		}
		s.fx.Bookings = append(s.fx.Bookings[:i], s.fx.Bookings[i+1:]...)
		writeEnvelope(w, "deleteBooking", map[string]any{"Result": "OK"})
		return
	}
	writeEnvelope(w, "deleteBooking", map[string]any{"errorMessage": "Okänd bokning"})
}

func listLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.PostForm.Get("limit"))
	if err != nil || limit <= 0 {
		return 20
	}
	return limit
}

func writeEnvelope(w http.ResponseWriter, qtype string, extra map[string]any) {
	body := map[string]any{"qType": qtype, "APIVersion": apiVersion}
	for k, v := range extra {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, qtype, message string) {
	body := map[string]any{"errorMessage": message}
	if qtype != "" {
		body["qType"] = qtype
		body["APIVersion"] = apiVersion
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// qint and qfloat emit quoted numbers, matching the PHP backend's habit of
// stringifying scalars.
func qint(v int64) string { return strconv.FormatInt(v, 10) }

func qfloat(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseBookingTime(s string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04-07:00", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
