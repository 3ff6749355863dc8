package progress

import (
	"testing"
	"time"

	"github.com/ppiankov/bacitit/internal/model"
	"github.com/ppiankov/bacitit/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReporter_Throttles(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := NewReporter(zap.New(core), 20*time.Millisecond)

	assert.False(t, r.Tick(search.Stats{States: 1}, 0, false), "first line waits an interval")
	time.Sleep(30 * time.Millisecond)
	assert.True(t, r.Tick(search.Stats{States: 2}, 1.5, true))
	assert.False(t, r.Tick(search.Stats{States: 3}, 1.5, true))

	entries := logs.FilterMessage("search progress").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["states"])
	assert.Equal(t, 1.5, entries[0].ContextMap()["best"])
}

func TestReporter_Disabled(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := NewReporter(zap.New(core), 0)

	assert.False(t, r.Tick(search.Stats{}, 0, false))
	assert.Zero(t, logs.Len())
}

func TestReporter_Record(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := NewReporter(zap.New(core), 0)

	r.Record(model.CandidateNumbers{Score: 2.25}, 3)
	entries := logs.FilterMessage("new record").All()
	require.Len(t, entries, 1)
	assert.Equal(t, 2.25, entries[0].ContextMap()["score"])
	assert.Equal(t, int64(3), entries[0].ContextMap()["record"])
}

func TestReporter_NilLogger(t *testing.T) {
	r := NewReporter(nil, time.Nanosecond)
	time.Sleep(time.Millisecond)
	assert.True(t, r.Tick(search.Stats{}, 0, false))
}
