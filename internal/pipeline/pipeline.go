package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/bacitit/internal/cache"
	"github.com/ppiankov/bacitit/internal/logging"
	"github.com/ppiankov/bacitit/internal/metrics"
	"github.com/ppiankov/bacitit/internal/model"
	"github.com/ppiankov/bacitit/internal/phoneme"
	"github.com/ppiankov/bacitit/internal/progress"
	"github.com/ppiankov/bacitit/internal/recipe"
	"github.com/ppiankov/bacitit/internal/score"
	"github.com/ppiankov/bacitit/internal/search"
	"github.com/ppiankov/bacitit/internal/weight"
)

// checkEvery is how many engine steps run between budget and progress checks
const checkEvery = 1024

// Generator orchestrates one generation run per recipe
type Generator struct {
	config   *model.Config
	inv      phoneme.Inventory
	logger   *zap.Logger
	weights  cache.Cache[*weight.Prepared] // nil when caching is disabled
	renderer *Renderer
}

// NewGenerator validates cfg and creates a generator
func NewGenerator(cfg *model.Config, logger *zap.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	inv, err := cfg.Inventory()
	if err != nil {
		return nil, err
	}

	g := &Generator{
		config:   cfg,
		inv:      inv,
		logger:   logging.OrNop(logger),
		renderer: NewRenderer(cfg.Output.IncludeFooter),
	}
	if cfg.Cache.Enabled {
		g.weights = cache.NewMemory[*weight.Prepared](cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}
	return g, nil
}

// Renderer returns the generator's report renderer
func (g *Generator) Renderer() *Renderer {
	return g.renderer
}

// Prepare computes (or recalls) the weight table of a loaded recipe
func (g *Generator) Prepare(loaded *recipe.Loaded) (*weight.Prepared, error) {
	key := cache.Key(loaded.Digest, strings.Join(g.config.Search.Consonants, ","))
	if g.weights != nil {
		if p, ok := g.weights.Get(key); ok {
			g.logger.Debug("weights cache hit", zap.String("recipe", loaded.Path))
			return p, nil
		}
	}

	p, err := weight.Prepare(loaded.Recipe, g.inv)
	if err != nil {
		return nil, fmt.Errorf("prepare weights: %w", err)
	}
	if g.weights != nil {
		g.weights.Set(key, p, 0)
	}
	return p, nil
}

// Slots builds the engine input from a weight table
func (g *Generator) Slots(table weight.Table) [model.SlotCount]search.Slot {
	var slots [model.SlotCount]search.Slot
	for i, w := range table {
		slots[i] = search.Slot{
			Candidates: weight.Candidates(w, g.inv, g.config.Search.Candidates, g.config.Search.Order),
			Vowel:      g.inv.Vowel(i),
		}
	}
	return slots
}

// Describe prepares a recipe without searching. The report carries the
// slots, origins and signals only.
func (g *Generator) Describe(loaded *recipe.Loaded) (*model.Report, error) {
	report, _, _, err := g.describe(loaded)
	return report, err
}

func (g *Generator) describe(loaded *recipe.Loaded) (*model.Report, *weight.Prepared, [model.SlotCount]search.Slot, error) {
	var slots [model.SlotCount]search.Slot
	prepared, err := g.Prepare(loaded)
	if err != nil {
		return nil, nil, slots, err
	}
	slots = g.Slots(prepared.Table)

	report := &model.Report{
		RunID:       uuid.New().String(),
		Recipe:      loaded.Path,
		GeneratedAt: time.Now().UTC(),
		Records:     []model.CandidateNumbers{},
		WeightSum:   prepared.WeightSum,
		Origins:     prepared.Origins,
		Space:       search.Space(slots).String(),
	}
	for i, s := range slots {
		report.Slots = append(report.Slots, model.SlotInfo{
			Digit:      i,
			Vowel:      s.Vowel,
			Candidates: s.Candidates,
			Weights:    prepared.Table[i],
		})
		if len(s.Candidates) < 2 {
			report.Signals = append(report.Signals, model.Signal{
				Type:        model.SignalScarceSlot,
				Severity:    model.SeverityCritical,
				Description: fmt.Sprintf("digit %d has %d candidate consonant(s); a number needs two distinct ones", i, len(s.Candidates)),
				Data: map[string]interface{}{
					"digit":      i,
					"candidates": len(s.Candidates),
				},
			})
		}
	}
	return report, prepared, slots, nil
}

// Result contains the outcome of one run
type Result struct {
	Report  *model.Report
	Metrics *metrics.Recorder // Counters of this run, for text exposition
}

// Run enumerates every conflict-free assignment of the recipe, keeping the
// running-best records, until the space is exhausted or a budget runs out.
// Budget stops are not errors; Report.Stop tells them apart.
func (g *Generator) Run(ctx context.Context, loaded *recipe.Loaded) (*Result, error) {
	started := time.Now()

	report, prepared, slots, err := g.describe(loaded)
	if err != nil {
		return nil, err
	}
	report.GeneratedAt = started.UTC()

	g.logger.Info("search started",
		zap.String("run_id", report.RunID),
		zap.String("recipe", loaded.Path),
		zap.String("space", report.Space),
		zap.Duration("timeout", g.config.Search.Timeout),
		zap.Int64("max_states", g.config.Search.MaxStates),
	)

	if g.config.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Search.Timeout)
		defer cancel()
	}

	engine := search.New(slots)
	scorer := score.NewScorer(prepared.Table)
	recorder := metrics.NewRecorder()
	reporter := progress.NewReporter(g.logger, g.config.Search.ProgressInterval)

	var best score.Record
	report.Stop = model.StopExhausted

loop:
	for i := int64(0); ; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				if !errors.Is(err, context.DeadlineExceeded) {
					return nil, fmt.Errorf("generation cancelled: %w", err)
				}
				report.Stop = model.StopTimeout
				break loop
			}
			recorder.ObserveEngine(engine.Stats())
			b, ok := best.Best()
			reporter.Tick(engine.Stats(), b, ok)
		}
		if limit := g.config.Search.MaxStates; limit > 0 && engine.Stats().States >= limit {
			report.Stop = model.StopMaxStates
			break loop
		}

		a, status := engine.Step()
		switch status {
		case search.Exhausted:
			break loop
		case search.Pending:
			continue
		}

		c := scorer.Score(a)
		var admitted bool
		if best, admitted = best.Admit(c); admitted {
			report.Records = append(report.Records, c)
			recorder.ObserveRecord(c.Score)
			reporter.Record(c, best.Retained())
		}
	}

	recorder.ObserveEngine(engine.Stats())
	stats, err := recorder.Snapshot()
	if err != nil {
		return nil, err
	}
	report.Stats = stats
	report.Elapsed = time.Since(started).Round(time.Millisecond).String()
	if n := len(report.Records); n > 0 {
		last := report.Records[n-1]
		report.Best = &last
	}
	report.Signals = append(report.Signals, outcomeSignals(report)...)

	g.logger.Info("search finished",
		zap.String("run_id", report.RunID),
		zap.String("stop", string(report.Stop)),
		zap.Int64("states", stats.States),
		zap.Int64("valid", stats.Valid),
		zap.Int64("records", stats.Records),
		zap.String("elapsed", report.Elapsed),
	)
	return &Result{Report: report, Metrics: recorder}, nil
}

func outcomeSignals(r *model.Report) []model.Signal {
	var signals []model.Signal
	if r.Stop != model.StopExhausted {
		signals = append(signals, model.Signal{
			Type:        model.SignalBudget,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("search stopped early (%s); later assignments were not examined", r.Stop),
			Data: map[string]interface{}{
				"stop":   string(r.Stop),
				"states": r.Stats.States,
			},
		})
	}
	if len(r.Records) == 0 {
		severity := model.SeverityCritical
		desc := "no assignment satisfies the uniqueness constraint"
		if r.Stop != model.StopExhausted {
			severity = model.SeverityWarning
			desc = "no conflict-free assignment found before the budget ran out"
		}
		signals = append(signals, model.Signal{
			Type:        model.SignalNoSolution,
			Severity:    severity,
			Description: desc,
		})
	}
	return signals
}
