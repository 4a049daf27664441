package myweblog

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

const defaultListLimit = 20

// TransactionsQuery narrows a getTransactions call. The zero value fetches
// the most recent 20 rows.
type TransactionsQuery struct {
	// Limit caps the number of rows; zero means 20.
	Limit int
	// From and To bound the listing by date; zero values are omitted and
	// the service applies its own window.
	From time.Time
	To   time.Time
}

// FlightLogQuery narrows a getFlightLog or getFlightLogReversed call. The
// zero value fetches the most recent 20 rows.
type FlightLogQuery struct {
	Limit int
	From  time.Time
	To    time.Time
}

// FetchBalance returns the authenticated user's account balance along with
// their full name as registered with the club.
func (c *Client) FetchBalance(ctx context.Context) (*BalanceResponse, error) {
	var payload BalanceResponse
	if err := c.do(ctx, qtypeGetBalance, url.Values{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchTransactions lists the user's account ledger rows, most recent
// first.
func (c *Client) FetchTransactions(ctx context.Context, query TransactionsQuery) (*TransactionsResponse, error) {
	var payload TransactionsResponse
	if err := c.do(ctx, qtypeGetTransactions, listParams(query.Limit, query.From, query.To), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchFlightLog lists the user's journal rows in the service's default
// order.
func (c *Client) FetchFlightLog(ctx context.Context, query FlightLogQuery) (*FlightLogResponse, error) {
	var payload FlightLogResponse
	if err := c.do(ctx, qtypeGetFlightLog, listParams(query.Limit, query.From, query.To), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchFlightLogReversed lists the same journal rows in reverse order.
func (c *Client) FetchFlightLogReversed(ctx context.Context, query FlightLogQuery) (*FlightLogResponse, error) {
	var payload FlightLogResponse
	if err := c.do(ctx, qtypeGetFlightLogReversed, listParams(query.Limit, query.From, query.To), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func listParams(limit int, from, to time.Time) url.Values {
	if limit <= 0 {
		limit = defaultListLimit
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if !from.IsZero() {
		params.Set("from_date", from.Format(dateLayout))
	}
	if !to.IsZero() {
		params.Set("to_date", to.Format(dateLayout))
	}
	return params
}
