package main

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/five82/bloglist/internal/app"
	"github.com/five82/bloglist/internal/state"
	"github.com/five82/bloglist/internal/version"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	apiURL     string
	logLevel   string
}

func (g *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		APIURL:     g.apiURL,
		LogLevel:   g.logLevel,
	}
}

// open builds the application for a one-shot command.
func (g *globalFlags) open() (*app.App, error) {
	return app.New(g.options())
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "bloglist",
		Short:         "Terminal client for the blog list service",
		Long:          "bloglist lets you log in, read, like, comment on, create and remove blog posts\nand browse users. Without a subcommand it starts the interactive interface.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return cmd.Help()
			}
			return app.Run(cmd.Context(), flags.options())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/bloglist/config.toml)")
	pf.StringVar(&flags.apiURL, "api", "", "blog list API base URL (overrides api_url)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newLoginCmd(flags),
		newLogoutCmd(flags),
		newWhoamiCmd(flags),
		newPostsCmd(flags),
		newPostCmd(flags),
		newCreateCmd(flags),
		newLikeCmd(flags),
		newCommentCmd(flags),
		newDeleteCmd(flags),
		newAuthorsCmd(flags),
		newLogsCmd(flags),
	)
	return root
}

// notifiedError carries the user-facing notification text while keeping the
// underlying cause for errors.Is.
type notifiedError struct {
	message string
	err     error
}

func (e *notifiedError) Error() string { return e.message }
func (e *notifiedError) Unwrap() error { return e.err }

// result maps a service error to what the user sees: the failure
// notification if one was published, the raw error otherwise. The detail is
// already in the log file.
func result(a *app.App, err error) error {
	if err == nil {
		return nil
	}
	if n, ok := a.Stores.Notification.Current(); ok && n.Kind == state.KindFailure {
		return &notifiedError{message: n.Message, err: err}
	}
	return err
}

var errNotLoggedIn = errors.New("not logged in")

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// promptWriter returns where interactive prompts go: stderr when stdin is a
// terminal, nowhere when input is piped.
func promptWriter(cmd *cobra.Command) io.Writer {
	if isTerminal(cmd.InOrStdin()) {
		return cmd.ErrOrStderr()
	}
	return io.Discard
}
