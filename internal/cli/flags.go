package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bacitit/internal/model"
)

// Search flags shared by generate and batch
var (
	timeout    time.Duration
	maxStates  int64
	candidates string
	order      string
	noCache    bool
	noFooter   bool
)

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "wall-clock budget per recipe (0 = none)")
	cmd.Flags().Int64Var(&maxStates, "max-states", 0, "examined-state budget per recipe (0 = none)")
	cmd.Flags().StringVar(&candidates, "candidates", model.CandidatesWeighted, "candidate consonants per digit (weighted, all)")
	cmd.Flags().StringVar(&order, "order", model.OrderPhoneme, "candidate order (phoneme, weight)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable weight memoization")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown and HTML reports")
}

// applySearchFlags overrides cfg with the flags the user actually set, so
// config file and environment values survive untouched flags
func applySearchFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.Search.Timeout = timeout
	}
	if flags.Changed("max-states") {
		cfg.Search.MaxStates = maxStates
	}
	if flags.Changed("candidates") {
		cfg.Search.Candidates = candidates
	}
	if flags.Changed("order") {
		cfg.Search.Order = order
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
}
