package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersEverything(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()
	require.NotNil(t, m)

	m.CounterSubmissions.WithLabelValues("calories", "ok").Inc()
	m.CounterSubmissions.WithLabelValues("calories", "ok").Inc()
	m.CounterBackendRequests.WithLabelValues("/suggest-workout", "error").Inc()
	m.HistogramBackendDuration.WithLabelValues("/suggest-workout").Observe(0.2)
	m.GaugeBackendReachable.Set(1)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterSubmissions.WithLabelValues("calories", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.GaugeBackendReachable))

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily)
	for _, f := range families {
		byName[f.GetName()] = f
	}

	hist, ok := byName["fitmentor_test_server_backend_request_duration_seconds"]
	require.True(t, ok)
	require.Len(t, hist.GetMetric(), 1)
	assert.Equal(t, uint64(1), hist.GetMetric()[0].GetHistogram().GetSampleCount())

	_, ok = byName["fitmentor_test_server_form_submissions"]
	assert.True(t, ok)
}

func TestNewServiceManager(t *testing.T) {
	m, reg := NewServiceManager("fitmentor", "webclient")
	m.GaugeLifeSignal.Set(1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	hasScheduler := false
	for _, f := range families {
		names[f.GetName()] = true
		if strings.HasPrefix(f.GetName(), "go_sched_") {
			hasScheduler = true
		}
	}

	assert.True(t, names["fitmentor_webclient_life_signal"])
	assert.True(t, names["go_build_info"])
	assert.True(t, names["go_goroutines"])
	assert.True(t, names["fitmentor_process_cpu_seconds_total"])
	assert.True(t, hasScheduler)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.GaugeLifeSignal))
}
