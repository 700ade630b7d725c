package main

import (
	"errors"
	"fmt"

	"github.com/MrEthical07/goConsole/preference"
	"github.com/spf13/cobra"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Read or change the persisted theme preference",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the theme the console would start with",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withThemeApp(cmd, func(a *app) error {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), a.console.InitialTheme(cmd.Context()))
					return err
				})
			},
		},
		&cobra.Command{
			Use:       "set light|dark",
			Short:     "Persist a theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(preference.ThemeLight), string(preference.ThemeDark)},
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := preference.ParseTheme(args[0])
				if err != nil {
					return err
				}
				return withDurableThemeApp(cmd, func(a *app) error {
					if err := a.console.SetTheme(cmd.Context(), t); err != nil {
						return err
					}
					_, err := fmt.Fprintln(cmd.OutOrStdout(), t)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Flip the persisted theme between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDurableThemeApp(cmd, func(a *app) error {
					t, err := a.console.ToggleTheme(cmd.Context())
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), t)
					return err
				})
			},
		},
	)
	return cmd
}

var errEphemeralStorage = errors.New("theme storage does not outlive this process")

func withThemeApp(cmd *cobra.Command, fn func(*app) error) error {
	cfg, err := loadEnv()
	if err != nil {
		return err
	}
	return runThemeApp(cmd, cfg, fn)
}

// withDurableThemeApp refuses to write when the backend is lost on exit, so a
// one-shot set or toggle never reports a change the next run cannot see.
func withDurableThemeApp(cmd *cobra.Command, fn func(*app) error) error {
	cfg, err := loadEnv()
	if err != nil {
		return err
	}
	if err := cfg.durableStorage(); err != nil {
		return err
	}
	return runThemeApp(cmd, cfg, fn)
}

func runThemeApp(cmd *cobra.Command, cfg envConfig, fn func(*app) error) error {
	a, err := newApp(cmd.Context(), cfg, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func (c envConfig) durableStorage() error {
	switch {
	case c.Storage == storageMemory:
		return fmt.Errorf("%w: GOCONSOLE_STORAGE=%s", errEphemeralStorage, storageMemory)
	case c.Storage == storageRedis && c.RedisAddr == "":
		return fmt.Errorf("%w: GOCONSOLE_STORAGE=%s needs GOCONSOLE_REDIS_ADDR", errEphemeralStorage, storageRedis)
	}
	return nil
}
