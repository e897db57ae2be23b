package quadlens

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/quadlens/quadlens/internal/audit"
	"github.com/quadlens/quadlens/internal/config"
	"github.com/quadlens/quadlens/internal/coordinator"
	"github.com/quadlens/quadlens/internal/engine"
	"github.com/quadlens/quadlens/internal/gitmeta"
	"github.com/quadlens/quadlens/internal/logging"
	"github.com/quadlens/quadlens/internal/report"
	"github.com/quadlens/quadlens/internal/store"
	"github.com/quadlens/quadlens/internal/tui"
	"github.com/quadlens/quadlens/internal/types"
	"github.com/quadlens/quadlens/internal/update"
)

var (
	flagPath          string
	flagInclude       string
	flagExclude       string
	flagMaxBytes      int64
	flagFailurePolicy string
	flagCopy          bool
	flagInteractive   bool
	flagNoAudit       bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a file or directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagFailurePolicy, "failure-policy", "", "fail_fast or best_effort")
	cmd.Flags().BoolVar(&flagCopy, "copy", false, "copy the JSON report to the clipboard")
	cmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "browse findings in the TUI")
	cmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "skip writing the audit log record")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	flagPath = "."
	if len(args) == 1 {
		flagPath = args[0]
	}
	abs, _ := filepath.Abs(flagPath)

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	sc := config.ResolveStores(lcfg, gcfg)
	if flagFailurePolicy != "" {
		sc.FailurePolicy = flagFailurePolicy
	}
	if err := sc.Validate(); err != nil {
		return err
	}

	debug := config.PickBool(flagDebug, lcfg.Debug, gcfg.Debug)
	logger, err := logging.New(debug)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Sync()

	if !flagJSON && !flagSARIF {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'quadlens --self-update' to upgrade\n", latest)
			}
		}
		if flagSelfUpdate {
			if err := selfUpdate(); err == nil {
				fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
				return nil
			}
		}
	}

	ctx := cmd.Context()
	primary, err := store.OpenPostgres(ctx, sc.PrimaryURL)
	if err != nil {
		return fmt.Errorf("open primary store: %w", err)
	}
	defer primary.Close()

	coordCfg := coordinator.Config{
		SecurityForkURL:      sc.SecurityForkURL,
		QualityForkURL:       sc.QualityForkURL,
		PerformanceForkURL:   sc.PerformanceForkURL,
		BestPracticesForkURL: sc.BestPracticesForkURL,
		FailurePolicy:        coordinator.FailurePolicy(sc.FailurePolicy),
	}
	coord := coordinator.New(primary, coordCfg,
		coordinator.WithObserver(coordinator.LogObserver{Log: logger}))

	ecfg := engine.Config{
		Root:         abs,
		IncludeGlobs: config.PickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs: config.PickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:     config.PickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
	}

	mode := "sequential"
	if coordCfg.Forked() {
		mode = "forked"
	}
	logger.Debugw("starting analysis", "root", abs, "mode", mode)

	res, err := engine.Analyze(ctx, coord, ecfg)
	if err != nil {
		return err
	}

	if !flagNoAudit {
		meta := gitmeta.Lookup(abs)
		rec := audit.NewRunRecord(abs, mode, meta.Branch, meta.Commit, res.Reports, res.Duration)
		if err := audit.NewLog(abs).LogRun(rec); err != nil {
			logger.Debugw("audit log write failed", "error", err)
		}
	}

	if flagCopy {
		b, err := json.MarshalIndent(res.Reports, "", "  ")
		if err == nil {
			if err := clipboard.WriteAll(string(b)); err != nil {
				fmt.Fprintln(os.Stderr, "clipboard warning:", err)
			}
		}
	}

	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, version, res.Reports); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Reports); err != nil {
			return err
		}
	case flagInteractive:
		reanalyze := func() ([]*types.Report, error) {
			r, err := engine.Analyze(ctx, coord, ecfg)
			if err != nil {
				return nil, err
			}
			return r.Reports, nil
		}
		if err := tui.Run(res.Reports, reanalyze); err != nil {
			return err
		}
	default:
		noColor := config.PickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
		for _, r := range res.Reports {
			report.PrintReport(os.Stdout, r, report.PrintOptions{NoColor: noColor})
		}
		report.PrintSummary(os.Stdout, res.FilesAnalyzed, res.TotalIssues())
	}
	return nil
}
