package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(flags *globalFlags) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open()
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("password") {
				fmt.Fprint(promptWriter(cmd), "Password: ")
				password, err = readLine(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
			}

			sess, err := a.Service.Login(cmd.Context(), args[0], password)
			if err != nil {
				return result(a, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s logged in\n", sess.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when omitted)")
	return cmd
}

func newLogoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.open()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Service.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.open()
			if err != nil {
				return err
			}
			defer a.Close()

			sess, ok := a.Service.CurrentSession()
			if !ok {
				return errNotLoggedIn
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", sess.DisplayName(), sess.Username)
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
