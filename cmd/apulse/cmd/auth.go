package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a session token",
		Long: "Log in with your email and password. If --password is not given the\n" +
			"password is read from stdin. On success the session token is printed;\n" +
			"export it as APULSE_TOKEN or pass it with --token on later commands.",
		Example: `  apulse login --email you@example.com
  export APULSE_TOKEN=$(apulse login --email you@example.com --output json | jq -r .token)`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			pw, err := resolvePassword(password)
			if err != nil {
				return err
			}
			c := newClient()
			s, err := c.Login(context.Background(), email, pw)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(s)
			}
			fmt.Printf("Logged in as %s (%s plan).\n", s.User.Email, s.User.Plan)
			fmt.Printf("Token (valid until %s):\n%s\n",
				s.ExpiresAt.Format("2006-01-02 15:04"), s.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (read from stdin if omitted)")
	return cmd
}

func registerCmd() *cobra.Command {
	var (
		email    string
		name     string
		password string
	)

	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create an account",
		Example: `  apulse register --email you@example.com --name "Jordan Reyes"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			pw, err := resolvePassword(password)
			if err != nil {
				return err
			}
			c := newClient()
			s, err := c.Register(context.Background(), email, name, pw)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(s)
			}
			fmt.Printf("Account created for %s.\n", s.User.Email)
			fmt.Printf("Token (valid until %s):\n%s\n",
				s.ExpiresAt.Format("2006-01-02 15:04"), s.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "account password (read from stdin if omitted)")
	return cmd
}

func meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the current account",
		Example: `  apulse me
  apulse me --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			u, err := c.Me(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(u)
			}
			tw := newTabWriter(os.Stdout)
			tw.writef("Email:\t%s\n", u.Email)
			tw.writef("Name:\t%s\n", u.Name)
			tw.writef("Plan:\t%s\n", u.Plan)
			tw.writef("Member since:\t%s\n", u.CreatedAt.Format("2006-01-02"))
			return tw.finish()
		},
	}
}

func resolvePassword(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", fmt.Errorf("password is required")
	}
	return pw, nil
}
