package telemetry

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasurementsUnknownNames(t *testing.T) {
	m := New()
	assert.False(t, m.RecordHistogramTime("missing", time.Millisecond))
	assert.False(t, m.IncrementGauge("missing"))
	assert.False(t, m.DecrementGauge("missing"))
	assert.False(t, m.IncrementCounter("missing", "x"))
}

func TestMeasurementsRecordAndExpose(t *testing.T) {
	m := New()
	m.CreateObservableHistogram("encode_request_duration", "encode request duration")
	m.CreateObservableHistogram("encode_request_duration", "registered twice")
	m.CreateObservableGauge("requests_in_flight", "requests in flight")
	m.CreateCounter("decode_failures_total", "decode failures", "kind")

	assert.True(t, m.RecordHistogramTime("encode_request_duration", 3*time.Millisecond))
	assert.True(t, m.IncrementGauge("requests_in_flight"))
	assert.True(t, m.IncrementCounter("decode_failures_total", "checksum_mismatch"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", MetricsURL, nil))
	body := rec.Body.String()

	assert.True(t, strings.Contains(body, "encode_request_duration_count 1"))
	assert.True(t, strings.Contains(body, "requests_in_flight 1"))
	assert.True(t, strings.Contains(body, `decode_failures_total{kind="checksum_mismatch"} 1`))
}

func TestMeasurementsAreIsolated(t *testing.T) {
	first, second := New(), New()
	first.CreateObservableGauge("same_name", "first")
	second.CreateObservableGauge("same_name", "second")
	assert.True(t, first.IncrementGauge("same_name"))
	assert.True(t, second.DecrementGauge("same_name"))
}

func TestRunWrongPort(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := Run(ctx, Config{Port: 70000}, New())
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrWrongPortSpecified)
}

func TestRunPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.Nil(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Run(ctx, Config{Port: port}, New()) }()

	select {
	case err := <-done:
		require.NotNil(t, err)
		assert.ErrorIs(t, err, ErrListenFailed)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return on a port in use")
	}
}

func TestRunServesUntilCanceled(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.Nil(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.Nil(t, ln.Close())

	m := New()
	m.CreateObservableGauge("requests_in_flight", "requests in flight")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, Config{Port: port}, m) }()

	url := fmt.Sprintf("http://127.0.0.1:%d%s", port, MetricsURL)
	var body []byte
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, err = io.ReadAll(resp.Body)
		return err == nil && resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)
	assert.True(t, strings.Contains(string(body), "requests_in_flight 0"))

	cancel()
	select {
	case err := <-done:
		assert.Nil(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
