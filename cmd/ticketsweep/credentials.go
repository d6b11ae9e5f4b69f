package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ticketsweep/internal/services/servicenow"
)

const (
	userEnvVar     = "TICKETSWEEP_USER"
	passwordEnvVar = "TICKETSWEEP_PASSWORD"
)

// resolveCredentials gathers the remote identity from flags and environment,
// falling back to an interactive no-echo prompt for the password when stdin
// is a terminal.
func (c *commandContext) resolveCredentials(cmd *cobra.Command) (servicenow.Credentials, error) {
	username := ""
	if c.userFlag != nil {
		username = strings.TrimSpace(*c.userFlag)
	}
	if username == "" {
		username = strings.TrimSpace(os.Getenv(userEnvVar))
	}
	if username == "" {
		return servicenow.Credentials{}, errors.New("remote username required: pass --user or set " + userEnvVar)
	}

	password := os.Getenv(passwordEnvVar)
	if password == "" {
		prompted, err := promptPassword(cmd, username)
		if err != nil {
			return servicenow.Credentials{}, err
		}
		password = prompted
	}
	if password == "" {
		return servicenow.Credentials{}, errors.New("remote password required: set " + passwordEnvVar + " or enter it at the prompt")
	}

	return servicenow.Credentials{Username: username, Password: password}, nil
}

func promptPassword(cmd *cobra.Command, username string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Password for %s: ", username)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
