// Package metrics keeps per-run search counters in a private Prometheus
// registry, so a report can snapshot them and the CLI can dump them in the
// text exposition format.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/ppiankov/bacitit/internal/model"
	"github.com/ppiankov/bacitit/internal/search"
)

const namespace = "bacitit"

// Recorder accumulates the counters of one run.
type Recorder struct {
	registry *prometheus.Registry

	states          prometheus.Counter
	valid           prometheus.Counter
	firstConflicts  prometheus.Counter
	secondConflicts prometheus.Counter
	records         prometheus.Counter
	bestScore       prometheus.Gauge

	last search.Stats
}

// NewRecorder registers a fresh set of counters.
func NewRecorder() *Recorder {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      name,
			Help:      help,
		})
	}

	r := &Recorder{
		registry:        prometheus.NewRegistry(),
		states:          counter("states_total", "Tentative assignments examined."),
		valid:           counter("valid_total", "Conflict-free assignments surfaced."),
		firstConflicts:  counter("first_conflicts_total", "First consonant conflicts resolved by carry."),
		secondConflicts: counter("second_conflicts_total", "Second consonant conflicts resolved by advance."),
		records:         counter("records_total", "Assignments retained by the running-best filter."),
		bestScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "best_score",
			Help:      "Total score of the latest retained assignment.",
		}),
	}
	r.registry.MustRegister(r.states, r.valid, r.firstConflicts, r.secondConflicts, r.records, r.bestScore)
	return r
}

// ObserveEngine adds the engine's work since the previous call.
func (r *Recorder) ObserveEngine(s search.Stats) {
	r.states.Add(float64(s.States - r.last.States))
	r.valid.Add(float64(s.Valid - r.last.Valid))
	r.firstConflicts.Add(float64(s.FirstConflicts - r.last.FirstConflicts))
	r.secondConflicts.Add(float64(s.SecondConflicts - r.last.SecondConflicts))
	r.last = s
}

// ObserveRecord counts a retained assignment.
func (r *Recorder) ObserveRecord(score float64) {
	r.records.Inc()
	r.bestScore.Set(score)
}

// Snapshot reads the counters back from the registry.
func (r *Recorder) Snapshot() (model.SearchStats, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return model.SearchStats{}, fmt.Errorf("gather metrics: %w", err)
	}

	var s model.SearchStats
	for _, mf := range families {
		v := int64(value(mf))
		switch mf.GetName() {
		case namespace + "_search_states_total":
			s.States = v
		case namespace + "_search_valid_total":
			s.Valid = v
		case namespace + "_search_first_conflicts_total":
			s.FirstConflicts = v
		case namespace + "_search_second_conflicts_total":
			s.SecondConflicts = v
		case namespace + "_search_records_total":
			s.Records = v
		}
	}
	return s, nil
}

// WriteText writes every metric in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func value(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		switch {
		case m.GetCounter() != nil:
			total += m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			total += m.GetGauge().GetValue()
		}
	}
	return total
}
