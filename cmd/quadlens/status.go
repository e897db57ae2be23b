package quadlens

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quadlens/quadlens/internal/config"
	"github.com/quadlens/quadlens/internal/coordinator"
	"github.com/quadlens/quadlens/internal/store"
)

var flagStatusPing bool

func init() {
	cmd := &cobra.Command{
		Use:   "status [path]",
		Short: "Show the resolved store configuration and analysis mode",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStatus,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagStatusPing, "ping", false, "also connect to the primary store")
}

func runStatus(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	abs, _ := filepath.Abs(root)

	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}
	sc := config.ResolveStores(lcfg, gcfg)

	coordCfg := coordinator.Config{
		SecurityForkURL:      sc.SecurityForkURL,
		QualityForkURL:       sc.QualityForkURL,
		PerformanceForkURL:   sc.PerformanceForkURL,
		BestPracticesForkURL: sc.BestPracticesForkURL,
	}
	mode := "sequential"
	if coordCfg.Forked() {
		mode = "forked"
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "mode:                %s\n", mode)
	fmt.Fprintf(w, "failure policy:      %s\n", orDefault(sc.FailurePolicy, "fail_fast"))
	fmt.Fprintf(w, "primary store:       %s\n", redactURL(sc.PrimaryURL))
	fmt.Fprintf(w, "security fork:       %s\n", redactURL(sc.SecurityForkURL))
	fmt.Fprintf(w, "quality fork:        %s\n", redactURL(sc.QualityForkURL))
	fmt.Fprintf(w, "performance fork:    %s\n", redactURL(sc.PerformanceForkURL))
	fmt.Fprintf(w, "best practices fork: %s\n", redactURL(sc.BestPracticesForkURL))

	if err := sc.Validate(); err != nil {
		fmt.Fprintln(w, "config error:", err)
		os.Exit(1)
	}

	if flagStatusPing {
		s, err := store.OpenPostgres(cmd.Context(), sc.PrimaryURL)
		if err != nil {
			return fmt.Errorf("primary store unreachable: %w", err)
		}
		defer s.Close()
		fmt.Fprintln(w, "primary store:       reachable")
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// redactURL hides credentials in a store URL before printing it.
func redactURL(raw string) string {
	if raw == "" {
		return "(not set)"
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, has := u.User.Password(); has {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
