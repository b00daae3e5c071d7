// Copyright 2024 The Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package trace is the structured event stream spec.md §6 describes for
// the tactic.back_chaining trace, modeled on the teacher's narrow
// api/trace.Callback interface.
package trace

import "fmt"

// Kind identifies the shape of an Event, mirroring the five lines the
// original engine's lean_back_trace emits.
type Kind int

const (
	// EventState is the current tactic state pretty-print, emitted once
	// per main-loop iteration.
	EventState Kind = iota
	// EventTrying announces a lemma about to be tried at a choice depth.
	EventTrying
	// EventSucceed announces that the lemma just tried applied to the main
	// goal; its premises may remain as new goals.
	EventSucceed
	// EventBacktracking announces a pop of the choice stack.
	EventBacktracking
	// EventMaxDepth announces that the choice stack hit max_depth.
	EventMaxDepth
)

// Event is one entry of the tactic.back_chaining trace stream.
type Event struct {
	Kind  Kind
	Depth int
	// Text is the pretty-printed state (EventState, EventMaxDepth) or the
	// name of the lemma being tried (EventTrying).
	Text string
}

// String renders an Event the way the original lean_back_trace lines
// read, so a Recorder's events can be diffed against the fixed strings
// spec.md §6 specifies.
func (e Event) String() string {
	switch e.Kind {
	case EventState:
		return "current state:\n" + e.Text
	case EventTrying:
		return fmt.Sprintf("[%d] trying lemma %s", e.Depth, e.Text)
	case EventSucceed:
		return "succeed"
	case EventBacktracking:
		return fmt.Sprintf("[%d] backtracking", e.Depth)
	case EventMaxDepth:
		return "maximum depth reached\n" + e.Text
	default:
		return "<unknown trace event>"
	}
}

// Sink receives back_chaining trace events in the order the engine emits
// them — the ordering guarantee spec.md §5 requires.
type Sink interface {
	Trace(Event)
}

// discard is a Sink that drops every event; it is the engine's default so
// that tracing never affects behavior unless a caller opts in.
type discard struct{}

func (discard) Trace(Event) {}

// Discard is the no-op Sink.
var Discard Sink = discard{}

// Recorder is an in-memory Sink, used by tests to assert on the emitted
// event sequence.
type Recorder struct {
	Events []Event
}

// Trace implements Sink.
func (r *Recorder) Trace(e Event) { r.Events = append(r.Events, e) }

// Lines renders every recorded event via Event.String, for assertions
// against the fixed trace text spec.md §6 specifies.
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.Events))
	for i, e := range r.Events {
		lines[i] = e.String()
	}
	return lines
}
