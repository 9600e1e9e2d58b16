// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

// Sink receives everything a run reports.
// Methods are called synchronously from the orchestrator, so implementations
// should return quickly. Use a ChannelSink to decouple slow consumers.
type Sink interface {
	// Log receives a log event.
	Log(event Event)
	// Progress receives a progress update after every completed step,
	// and a zeroed update when a run ends.
	Progress(info Info)
	// Finish receives the terminal summary of a run.
	Finish(summary Summary)
}

// NullSink is a no-op implementation of Sink.
type NullSink struct{}

// Log implements Sink.Log by doing nothing.
func (NullSink) Log(Event) {}

// Progress implements Sink.Progress by doing nothing.
func (NullSink) Progress(Info) {}

// Finish implements Sink.Finish by doing nothing.
func (NullSink) Finish(Summary) {}

// NewNullSink creates a new NullSink.
func NewNullSink() Sink {
	return NullSink{}
}

// MultiSink forwards every call to each of its sinks in order.
type MultiSink []Sink

var _ Sink = MultiSink(nil)

// Log implements Sink.
func (m MultiSink) Log(event Event) {
	for _, s := range m {
		s.Log(event)
	}
}

// Progress implements Sink.
func (m MultiSink) Progress(info Info) {
	for _, s := range m {
		s.Progress(info)
	}
}

// Finish implements Sink.
func (m MultiSink) Finish(summary Summary) {
	for _, s := range m {
		s.Finish(summary)
	}
}
