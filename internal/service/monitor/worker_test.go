package monitor

import (
	"bytes"
	"context"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type counter struct {
	n atomic.Int64
}

func (c *counter) Len() int { return int(c.n.Load()) }

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestCheckWarnsAboveThreshold(t *testing.T) {
	buf := captureLog(t)
	c := &counter{}
	w := NewWorker(c, time.Minute, 10)

	c.n.Store(4)
	assert.False(t, w.check())
	assert.Contains(t, buf.String(), "4 games in memory (+4")

	c.n.Store(11)
	assert.True(t, w.check())
	assert.Contains(t, buf.String(), "WARNING: 11 games")
	assert.Contains(t, buf.String(), "+7 since last check")
}

func TestCheckWithoutThreshold(t *testing.T) {
	captureLog(t)
	c := &counter{}
	c.n.Store(1_000_000)

	assert.False(t, NewWorker(c, time.Minute, 0).check())
}

func TestStartStopsOnCancel(t *testing.T) {
	captureLog(t)
	w := NewWorker(&counter{}, 5*time.Millisecond, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestStartDisabled(t *testing.T) {
	buf := captureLog(t)

	NewWorker(&counter{}, 0, 1).Start(context.Background())
	assert.Contains(t, buf.String(), "Disabled")
}
