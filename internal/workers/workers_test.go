// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	name     string
	runCount int
	err      error
}

func (m *mockWorker) Name() string { return m.name }

func (m *mockWorker) Run(context.Context) error {
	m.runCount++
	return m.err
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{name: "w1"}
	w2 := &mockWorker{name: "w2"}
	w3 := &mockWorker{name: "w3"}

	ws := NewWorkers(w1, w2, w3)
	require.NoError(t, ws.Run(context.Background()))

	for i, w := range []*mockWorker{w1, w2, w3} {
		assert.Equal(t, 1, w.runCount, "worker[%d]", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not fail on empty workers list
	assert.NoError(t, ws.Run(context.Background()))
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not fail when workers field is nil
	assert.NoError(t, ws.Run(context.Background()))
}

func TestWorkers_Run_Order(t *testing.T) {
	var order []int

	newOrderWorker := func(id int) Worker {
		return Func{WorkerName: "ordered", Fn: func(context.Context) error {
			order = append(order, id)
			return nil
		}}
	}

	ws := NewWorkers(newOrderWorker(1), newOrderWorker(2), newOrderWorker(3))
	require.NoError(t, ws.Run(context.Background()))

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestWorkers_Run_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	w1 := &mockWorker{name: "upload"}
	w2 := &mockWorker{name: "geotag", err: boom}
	w3 := &mockWorker{name: "albums"}

	err := NewWorkers(w1, w2, w3).Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "geotag")
	assert.Equal(t, 1, w1.runCount)
	assert.Equal(t, 1, w2.runCount)
	assert.Zero(t, w3.runCount)
}

func TestWorkers_Run_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w1 := Func{WorkerName: "first", Fn: func(context.Context) error {
		cancel()
		return nil
	}}
	w2 := &mockWorker{name: "second"}

	err := NewWorkers(w1, w2).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, w2.runCount)
}

func TestWorkers_Run_MultipleRuns(t *testing.T) {
	w := &mockWorker{name: "w"}
	ws := NewWorkers(w)

	for i := 0; i < 3; i++ {
		require.NoError(t, ws.Run(context.Background()))
	}

	assert.Equal(t, 3, w.runCount)
}
