// Package cli implements the mwl operations command tree.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	myweblog "github.com/faluke/go-myweblog"
	"github.com/faluke/go-myweblog/internal/config"
)

const cliDateLayout = "2006-01-02"

// rootState carries the global flags shared by every subcommand.
type rootState struct {
	configPath string
	jsonOut    bool
	timeout    time.Duration
}

// NewRootCmd builds the mwl command tree.
func NewRootCmd() *cobra.Command {
	st := &rootState{}

	root := &cobra.Command{
		Use:           "mwl",
		Short:         "MyWebLog operations CLI",
		Long:          "mwl talks to the MyWebLog club booking service: listings, account data and booking mutations.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVar(&st.jsonOut, "json", false, "print the raw payload as indented JSON")
	root.PersistentFlags().DurationVar(&st.timeout, "timeout", 0, "request timeout, overrides the config value")

	root.AddCommand(newObjectsCmd(st))
	root.AddCommand(newBookingsCmd(st))
	root.AddCommand(newBalanceCmd(st))
	root.AddCommand(newTransactionsCmd(st))
	root.AddCommand(newFlightLogCmd(st))
	root.AddCommand(newBookCmd(st))
	root.AddCommand(newCutCmd(st))
	root.AddCommand(newCancelCmd(st))
	root.AddCommand(newTokenCmd(st))
	return root
}

// newClient builds a client from config and environment. A missing
// password is prompted for on the terminal rather than rejected.
func (st *rootState) newClient(cmd *cobra.Command) (myweblog.API, func(), error) {
	cfg, err := st.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	opts := cfg.ClientOptions()
	if st.timeout > 0 {
		opts = append(opts, myweblog.WithTimeout(st.timeout))
	}

	client, err := myweblog.New(cfg.Username, cfg.Password, opts...)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

// loadConfig loads and completes the configuration for one invocation.
func (st *rootState) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(st.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if cfg.Username == "" {
		return config.Config{}, fmt.Errorf("username is not set (config file or MYWEBLOG_USERNAME)")
	}
	if cfg.Password == "" {
		pass, err := promptPassword(cmd, fmt.Sprintf("Password for %s: ", cfg.Username))
		if err != nil {
			return config.Config{}, fmt.Errorf("read password: %w", err)
		}
		cfg.Password = strings.TrimSpace(string(pass))
	}
	if cfg.Password == "" {
		return config.Config{}, fmt.Errorf("password is not set")
	}
	if cfg.AppSecret == "" && cfg.AppToken == "" {
		return config.Config{}, fmt.Errorf("neither app secret nor app token is set (MYWEBLOG_APP_SECRET / MYWEBLOG_APPTOKEN)")
	}
	return cfg, nil
}

func promptPassword(cmd *cobra.Command, prompt string) ([]byte, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	return pass, err
}

// printJSON writes the payload as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// remoteFriendly strips the operation prefix from business rejections so
// the shell sees the service's message verbatim.
func remoteFriendly(err error) error {
	var remote *myweblog.RemoteError
	if errors.As(err, &remote) {
		return errors.New(remote.Message)
	}
	return err
}

// parseDateFlag parses a --from/--to value; empty means unset.
func parseDateFlag(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(cliDateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want %s", value, cliDateLayout)
	}
	return t, nil
}
