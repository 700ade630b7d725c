package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	goConsole "github.com/MrEthical07/goConsole"
	"github.com/spf13/cobra"
)

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print an Argon2id hash for GOCONSOLE_ADMIN_PASSWORD_HASH",
		Long: `hash-password hashes an operator password with the console's Argon2id costs.
Without an argument the password is read from the first line of stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, err := readPassword(cmd, args)
			if err != nil {
				return err
			}

			c, err := goConsole.New().Build()
			if err != nil {
				return err
			}
			defer c.Close()

			hash, err := c.HashPassword(plain)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}

func readPassword(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", errors.New("no password on stdin")
	}
	return strings.TrimRight(sc.Text(), "\r"), nil
}
