package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	myweblog "github.com/faluke/go-myweblog"
)

func newObjectsCmd(st *rootState) *cobra.Command {
	var thumbnails bool

	cmd := &cobra.Command{
		Use:   "objects",
		Short: "List the club's bookable objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, done, err := st.newClient(cmd)
			if err != nil {
				return err
			}
			defer done()

			resp, err := client.FetchObjects(cmd.Context(), myweblog.ObjectsQuery{IncludeThumbnails: thumbnails})
			if err != nil {
				return remoteFriendly(err)
			}
			if st.jsonOut {
				return printJSON(cmd, resp)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tREG\tMODEL\tCLUB\tBOOKABLE")
			for _, o := range resp.Objects {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%v\n", int64(o.ID), o.Registration, o.Model, o.ClubName, o.Bookable())
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&thumbnails, "thumbnails", false, "include base64 object thumbnails in the payload")
	return cmd
}

func newBookingsCmd(st *rootState) *cobra.Command {
	var (
		aircraft int64
		mine     bool
		from, to string
		sun      bool
	)

	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := myweblog.BookingsQuery{AircraftID: aircraft, OnlyMine: mine, IncludeSun: sun}
			var err error
			if query.From, err = parseDateFlag(from); err != nil {
				return err
			}
			if query.To, err = parseDateFlag(to); err != nil {
				return err
			}

			client, done, err := st.newClient(cmd)
			if err != nil {
				return err
			}
			defer done()

			resp, err := client.FetchBookings(cmd.Context(), query)
			if err != nil {
				return remoteFriendly(err)
			}
			if st.jsonOut {
				return printJSON(cmd, resp)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tREG\tSTART\tEND\tMEMBER\tCOMMENT")
			for _, b := range resp.Bookings {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					int64(b.ID), b.Registration, b.Start, b.End, b.Fullname, b.Comment)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if resp.Sun != nil {
				printSun(cmd, resp.Sun)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&aircraft, "aircraft", 0, "limit to one object ID")
	cmd.Flags().BoolVar(&mine, "mine", false, "only the authenticated member's bookings")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&sun, "sun", false, "include sunrise/sunset data for the reference airport")
	return cmd
}

func printSun(cmd *cobra.Command, sun *myweblog.SunData) {
	fmt.Fprintf(cmd.OutOrStdout(), "\nSun times at %s (%s):\n", sun.RefAirport.Name, sun.RefAirport.ICAO)

	dates := make([]string, 0, len(sun.Dates))
	for date := range sun.Dates {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTWILIGHT\tSUNRISE\tSUNSET\tTWILIGHT END")
	for _, date := range dates {
		s := sun.Dates[date]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", date, s.MorningTwilight, s.Sunrise, s.Sunset, s.EveningTwilight)
	}
	w.Flush()
}

func newBalanceCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the account balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, done, err := st.newClient(cmd)
			if err != nil {
				return err
			}
			defer done()

			resp, err := client.FetchBalance(cmd.Context())
			if err != nil {
				return remoteFriendly(err)
			}
			if st.jsonOut {
				return printJSON(cmd, resp)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.2f %s\n", resp.Fullname, float64(resp.Balance), resp.Currency)
			return nil
		},
	}
}

func newTransactionsCmd(st *rootState) *cobra.Command {
	var (
		limit    int
		from, to string
	)

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List account ledger rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := myweblog.TransactionsQuery{Limit: limit}
			var err error
			if query.From, err = parseDateFlag(from); err != nil {
				return err
			}
			if query.To, err = parseDateFlag(to); err != nil {
				return err
			}

			client, done, err := st.newClient(cmd)
			if err != nil {
				return err
			}
			defer done()

			resp, err := client.FetchTransactions(cmd.Context(), query)
			if err != nil {
				return remoteFriendly(err)
			}
			if st.jsonOut {
				return printJSON(cmd, resp)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tBALANCE\tCOMMENT")
			for _, tx := range resp.Transactions {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s\n",
					tx.Date, tx.Type, float64(tx.Amount), float64(tx.Balance), tx.Comment)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (service default 20)")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	return cmd
}

func newFlightLogCmd(st *rootState) *cobra.Command {
	var (
		limit    int
		from, to string
		reversed bool
	)

	cmd := &cobra.Command{
		Use:   "flightlog",
		Short: "List the member's flight journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := myweblog.FlightLogQuery{Limit: limit}
			var err error
			if query.From, err = parseDateFlag(from); err != nil {
				return err
			}
			if query.To, err = parseDateFlag(to); err != nil {
				return err
			}

			client, done, err := st.newClient(cmd)
			if err != nil {
				return err
			}
			defer done()

			fetch := client.FetchFlightLog
			if reversed {
				fetch = client.FetchFlightLogReversed
			}
			resp, err := fetch(cmd.Context(), query)
			if err != nil {
				return remoteFriendly(err)
			}
			if st.jsonOut {
				return printJSON(cmd, resp)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tREG\tROUTE\tBLOCK\tAIRBORNE\tLDG\tCOMMENT")
			for _, e := range resp.Entries {
				fmt.Fprintf(w, "%s\t%s\t%s-%s\t%.1f\t%.1f\t%d\t%s\n",
					e.Date, e.Registration, e.Departure, e.Arrival,
					float64(e.BlockTotal), float64(e.AirborneTotal), int64(e.Landings), e.Comment)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (service default 20)")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&reversed, "reversed", false, "newest entries first")
	return cmd
}
