package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Shared by every subcommand; set up by the root command before each run.
var (
	cfg    *Config
	client *Client
)

// NewRootCmd builds the quizctl command tree
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	root := &cobra.Command{
		Use:   "quizctl",
		Short: "Command line client for the vocabquiz API",
		Long: `quizctl talks to a vocabquiz server over its JSON API.

Register and log in once; the session token is kept in ~/.quizctl/token
and sent with later commands. Submit quiz results with "score submit" and
list your best result per category with "score list".`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "server URL (env "+envServer+")")
	flags.StringVar(&cfg.Token, "token", cfg.Token, "session token (env "+envToken+")")
	flags.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "where the session token is saved (env "+envTokenFile+")")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "output format: text or json")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "trace HTTP requests to stderr")

	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newMeCmd(),
		newScoreCmd(),
		newHealthCmd(),
	)
	return root
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.LoadToken(); err != nil {
		return err
	}

	var trace io.Writer
	if cfg.Verbose {
		trace = cmd.ErrOrStderr()
	}
	client = NewClient(cfg.ServerURL, cfg.Token, trace)
	return nil
}

// Execute runs quizctl and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
