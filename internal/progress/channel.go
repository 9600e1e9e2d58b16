// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"sync"
)

// Message is the unit carried by a ChannelSink. Exactly one field is set.
type Message struct {
	Event    *Event
	Progress *Info
	Summary  *Summary
}

// ChannelSink implements Sink using a buffered Go channel.
// Sends block while the buffer is full so that no event is lost; they only
// give up once the sink is closed or its context is cancelled.
type ChannelSink struct {
	ch     chan Message
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	once   sync.Once
}

var _ Sink = (*ChannelSink)(nil)

// NewChannelSink creates a new ChannelSink with the specified buffer size.
func NewChannelSink(ctx context.Context, bufferSize int) *ChannelSink {
	sinkCtx, cancel := context.WithCancel(ctx)

	return &ChannelSink{
		ch:     make(chan Message, bufferSize),
		ctx:    sinkCtx,
		cancel: cancel,
	}
}

// Log implements Sink.
func (cs *ChannelSink) Log(event Event) {
	cs.send(Message{Event: &event})
}

// Progress implements Sink.
func (cs *ChannelSink) Progress(info Info) {
	cs.send(Message{Progress: &info})
}

// Finish implements Sink.
func (cs *ChannelSink) Finish(summary Summary) {
	cs.send(Message{Summary: &summary})
}

func (cs *ChannelSink) send(msg Message) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if cs.closed {
		return
	}

	select {
	case cs.ch <- msg:
	case <-cs.ctx.Done():
	}
}

// Close stops accepting messages, closes the channel and waits for the
// listener started by Listen to drain what was already buffered.
func (cs *ChannelSink) Close() {
	cs.once.Do(func() {
		cs.cancel()
		cs.mu.Lock()
		cs.closed = true
		close(cs.ch)
		cs.mu.Unlock()
		cs.wg.Wait()
	})
}

// Listen forwards every message to the downstream sink from a new goroutine.
// Buffered messages are still delivered after Close.
func (cs *ChannelSink) Listen(downstream Sink) {
	cs.wg.Add(1)

	go func() {
		defer cs.wg.Done()

		for msg := range cs.ch {
			Dispatch(downstream, msg)
		}
	}()
}

// Messages returns the receive side of the channel, for callers that want
// to consume messages without a listener.
func (cs *ChannelSink) Messages() <-chan Message {
	return cs.ch
}

// Dispatch delivers a message to the matching Sink method.
func Dispatch(sink Sink, msg Message) {
	switch {
	case msg.Event != nil:
		sink.Log(*msg.Event)
	case msg.Progress != nil:
		sink.Progress(*msg.Progress)
	case msg.Summary != nil:
		sink.Finish(*msg.Summary)
	}
}
