package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	myweblog "github.com/faluke/go-myweblog"
)

const cliTimeLayout = "2006-01-02T15:04"

func newBookCmd(st *rootState) *cobra.Command {
	var (
		aircraft   int64
		start, end string
		comment    string
		seats      int
		student    int64
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an aircraft for a time slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			startAt, err := parseTimeFlag(start)
			if err != nil {
				return err
			}
			endAt, err := parseTimeFlag(end)
			if err != nil {
				return err
			}

			client, done, err := st.newClient(cmd)
			if err != nil {
				return err
			}
			defer done()

			result, err := client.CreateBooking(cmd.Context(), myweblog.NewBooking{
				AircraftID: aircraft,
				Start:      startAt,
				End:        endAt,
				Comment:    comment,
				SeatsLeft:  seats,
				StudentID:  student,
			})
			if err != nil {
				return remoteFriendly(err)
			}
			return printMutation(cmd, st, result, "Booking created")
		},
	}
	cmd.Flags().Int64Var(&aircraft, "aircraft", 0, "object ID to book")
	cmd.Flags().StringVar(&start, "start", "", "slot start ("+cliTimeLayout+", local time)")
	cmd.Flags().StringVar(&end, "end", "", "slot end ("+cliTimeLayout+", local time)")
	cmd.Flags().StringVar(&comment, "comment", "", "booking comment")
	cmd.Flags().IntVar(&seats, "seats", 0, "advertise free seats on a shared booking")
	cmd.Flags().Int64Var(&student, "student", 0, "book on behalf of a student member ID")
	cobra.CheckErr(cmd.MarkFlagRequired("aircraft"))
	cobra.CheckErr(cmd.MarkFlagRequired("start"))
	cobra.CheckErr(cmd.MarkFlagRequired("end"))
	return cmd
}

func newCutCmd(st *rootState) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "cut",
		Short: "End a booking in progress now",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, done, err := st.newClient(cmd)
			if err != nil {
				return err
			}
			defer done()

			result, err := client.CutBooking(cmd.Context(), id)
			if err != nil {
				return remoteFriendly(err)
			}
			return printMutation(cmd, st, result, "Booking ended")
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "booking ID")
	cobra.CheckErr(cmd.MarkFlagRequired("id"))
	return cmd
}

func newCancelCmd(st *rootState) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, done, err := st.newClient(cmd)
			if err != nil {
				return err
			}
			defer done()

			result, err := client.DeleteBooking(cmd.Context(), id)
			if err != nil {
				return remoteFriendly(err)
			}
			return printMutation(cmd, st, result, "Booking cancelled")
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "booking ID")
	cobra.CheckErr(cmd.MarkFlagRequired("id"))
	return cmd
}

func newTokenCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Exchange the app secret for an app token",
		Long:  "Exchanges the configured app secret for a reusable app token and prints it. Store it as MYWEBLOG_APPTOKEN to skip the exchange on later runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := st.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.AppSecret == "" {
				return fmt.Errorf("app secret is not set (MYWEBLOG_APP_SECRET)")
			}

			client, done, err := st.newClient(cmd)
			if err != nil {
				return err
			}
			defer done()

			token, err := client.ObtainAppToken(cmd.Context(), cfg.AppSecret)
			if err != nil {
				return remoteFriendly(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

// printMutation reports a mutation outcome, preferring the service's own
// message over the fallback.
func printMutation(cmd *cobra.Command, st *rootState, result *myweblog.MutationResult, fallback string) error {
	if st.jsonOut {
		return printJSON(cmd, result)
	}
	text := fallback
	if result != nil && result.InfoMessageTitle != "" {
		text = result.InfoMessageTitle
		if result.InfoMessage != "" {
			text += ": " + result.InfoMessage
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// parseTimeFlag parses a --start/--end value in local time.
func parseTimeFlag(value string) (time.Time, error) {
	t, err := time.ParseInLocation(cliTimeLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, want %s", value, cliTimeLayout)
	}
	return t, nil
}
