package main

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartossh/Base58/configuration"
	"github.com/bartossh/Base58/telemetry"
)

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(string) {}
func (nopLogger) Fatal(string) {}

func freePort(t *testing.T) int {
	ln, err := net.Listen("tcp", ":0")
	require.Nil(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.Nil(t, ln.Close())
	return port
}

func TestRunServicesFailsWhenTelemetryCannotListen(t *testing.T) {
	held, err := net.Listen("tcp", ":0")
	require.Nil(t, err)
	defer held.Close()

	cfg := configuration.Default()
	cfg.Server.Port = freePort(t)
	cfg.Telemetry.Port = held.Addr().(*net.TCPAddr).Port

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- runServices(ctx, cancel, cfg, nopLogger{}) }()

	select {
	case err := <-done:
		require.NotNil(t, err)
		assert.ErrorIs(t, err, telemetry.ErrListenFailed)
	case <-time.After(10 * time.Second):
		t.Fatal("services kept running after telemetry failed")
	}
}

func TestRunServicesStopsOnCancel(t *testing.T) {
	cfg := configuration.Default()
	cfg.Server.Port = freePort(t)
	cfg.Telemetry.Port = freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServices(ctx, cancel, cfg, nopLogger{}) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Nil(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("services kept running after cancel")
	}
}
