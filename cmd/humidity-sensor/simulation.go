package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Nilao18/matter-ophelia4/pkg/humidity"
)

// simulator feeds synthetic readings into the sensor.
type simulator struct {
	sensor   *humidity.Sensor
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func newSimulator(sensor *humidity.Sensor, interval time.Duration, logger *slog.Logger) *simulator {
	return &simulator{sensor: sensor, interval: interval, logger: logger}
}

// Start launches the simulation loop. It is a no-op when already running.
func (s *simulator) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
	s.logger.Info("simulation started", "interval", s.interval)
}

// Stop halts the loop and waits for it to exit.
func (s *simulator) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("simulation stopped")
}

// Running reports whether the loop is active.
func (s *simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *simulator) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state := s.sensor.Snapshot()
			next := nextReading(state, rand.IntN(201)-100)
			s.logger.Debug("simulated reading", "value", next, "percent", float64(next)/100)
			s.sensor.SetMeasuredValue(next)
		}
	}
}

// nextReading moves the measured value by step (0.01 %RH units), clamped to
// the advertised bounds. A null reading restarts from the middle of the range.
func nextReading(state humidity.State, step int) uint16 {
	cur := int(state.MeasuredValue)
	if state.MeasuredValue == humidity.MeasuredValueNull {
		cur = (int(state.MinMeasuredValue) + int(state.MaxMeasuredValue)) / 2
	}
	next := cur + step
	if next < int(state.MinMeasuredValue) {
		next = int(state.MinMeasuredValue)
	}
	if next > int(state.MaxMeasuredValue) {
		next = int(state.MaxMeasuredValue)
	}
	return uint16(next)
}
