package commands

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/consentlens/config"
	"github.com/teranos/consentlens/display"
	"github.com/teranos/consentlens/explanation"
	"github.com/teranos/consentlens/logger"
	"github.com/teranos/consentlens/watch"
)

// WatchCmd re-runs the analysis when documents, models or config change
var WatchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Re-run analysis whenever documents, models or config change",
	Long: `Run the analysis once, then watch <folder>, models.dir and every loaded
config file. Each burst of changes reloads configuration, models and
documents and prints a fresh report. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	WatchCmd.Flags().StringSlice("doc-types", nil, "Analyze only these doc types as one custom scenario")
	WatchCmd.Flags().Int("top-k", 0, "Top features per attribute, 1-10")
	WatchCmd.Flags().Int("max-sentences", 0, "Supporting sentences per attribute, 1-10")
	WatchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before re-running")
	addFormatFlags(WatchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	folder := args[0]
	format, err := display.FormatFromCommand(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.ComponentLogger("watch")
	var (
		mu        sync.Mutex
		explainer *explanation.Engine
		cacheSize int
	)
	rerun := func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		req, err := analysisRequest(cmd, cfg)
		if err != nil {
			return err
		}

		// Reuse the sentence cache across runs unless its size changed.
		if explainer != nil && cacheSize == cfg.Explanation.CacheSize {
			explainer.Cache().Purge()
		} else {
			if explainer, err = newExplainer(cfg); err != nil {
				return err
			}
			cacheSize = cfg.Explanation.CacheSize
		}

		svc, err := newService(ctx, cfg, folder, explainer)
		if err != nil {
			return err
		}
		report, err := svc.Analyze(ctx, req)
		if err != nil {
			return err
		}
		return display.Report(cmd.OutOrStdout(), report, format)
	}

	if err := rerun(ctx); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	debounce, _ := cmd.Flags().GetDuration("debounce")
	w, err := watch.New(func(changed []string) {
		config.Reset()
		if err := rerun(ctx); err != nil {
			log.Errorw("Re-run failed", logger.FieldError, err, logger.FieldCount, len(changed))
		}
	}, watch.WithDebounce(debounce), watch.WithLogger(log))
	if err != nil {
		return err
	}
	defer w.Close()

	paths := append([]string{folder, cfg.Models.Dir}, config.LoadedFiles()...)
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return err
		}
	}

	log.Infow("Watching for changes", logger.FieldPath, folder, logger.FieldCount, len(paths))
	return w.Run(ctx)
}
