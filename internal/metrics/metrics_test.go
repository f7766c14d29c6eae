package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/productgen/internal/generation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGeneration(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())

	m.ObserveGeneration(generation.TaskTitle, generation.OutcomeSuccess, 2*time.Second)
	m.ObserveGeneration(generation.TaskTitle, generation.OutcomeSuccess, time.Second)
	m.ObserveGeneration(generation.TaskImage, generation.OutcomeBackendUnavailable, 0)

	assert.InDelta(t, 2, testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("title", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("image", "backend_unavailable")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.GenerationsTotal))
	assert.Equal(t, 2, testutil.CollectAndCount(m.GenerationDuration))
}

func TestObserveBackendCall(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())

	m.ObserveBackendCall("deepseek", generation.TaskFreeform, time.Second, nil)
	m.ObserveBackendCall("deepseek", generation.TaskFreeform, time.Second, errors.New("timeout"))
	m.ObserveBackendCall("deepseek", generation.TaskFreeform, time.Second, errors.New("timeout"))

	assert.InDelta(t, 1, testutil.ToFloat64(m.BackendCallsTotal.WithLabelValues("deepseek", "freeform", "ok")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.BackendCallsTotal.WithLabelValues("deepseek", "freeform", "error")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.BackendCallDuration))
}

func TestObserveHTTPRequest(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	m.ObserveHTTPRequest("POST", "/admin/products/generate", "200", 3*time.Second)

	assert.InDelta(t, 1,
		testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/admin/products/generate", "200")), 0)
}

func TestNew_RegistersOnce(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
