package machine

import "container/heap"

// Event is something the embedder schedules against the machine's cycle
// clock: a reset, pause, resume or power-off request.
type Event interface {
	Clock() int64
	Dispatch(m *Machine)
}

type queueEntry struct {
	clock    int64
	sequence int64
	event    Event
}

// entryHeap orders entries by (clock, sequence) so that events scheduled
// for the same clock tick still apply in the order they were queued.
type entryHeap []*queueEntry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].clock != h[j].clock {
		return h[i].clock < h[j].clock
	}
	return h[i].sequence < h[j].sequence
}
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)         { *h = append(*h, x.(*queueEntry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// EventQueue is a clock-ordered queue with stable insertion order among
// equal clocks, consumed by the cycle coupler before each step.
type EventQueue struct {
	heap     entryHeap
	sequence int64
}

// NewEventQueue returns an empty queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	heap.Init(&q.heap)
	return q
}

// Add schedules event at event.Clock(), clamped to non-negative.
func (q *EventQueue) Add(event Event) {
	clock := event.Clock()
	if clock < 0 {
		clock = 0
	}
	heap.Push(&q.heap, &queueEntry{clock: clock, sequence: q.sequence, event: event})
	q.sequence++
}

// IsEmpty reports whether the queue has no pending events.
func (q *EventQueue) IsEmpty() bool { return q.heap.Len() == 0 }

// PeekClock returns the clock of the earliest pending event; callers must
// check IsEmpty first.
func (q *EventQueue) PeekClock() int64 { return q.heap[0].clock }

// PopFirst removes and returns the earliest pending event.
func (q *EventQueue) PopFirst() Event {
	entry := heap.Pop(&q.heap).(*queueEntry)
	return entry.event
}

// DrainDue dispatches every event whose clock is <= currentClock, in
// (clock, sequence) order.
func (q *EventQueue) DrainDue(currentClock int64, m *Machine) {
	for !q.IsEmpty() && q.PeekClock() <= currentClock {
		q.PopFirst().Dispatch(m)
	}
}

// ------------------------------------------------------------------
// Lifecycle events

type baseEvent struct{ clock int64 }

func (e baseEvent) Clock() int64 { return e.clock }

// ResetEvent resets the CPU and every reset-aware device.
type ResetEvent struct{ baseEvent }

// NewResetEvent schedules a reset at clock.
func NewResetEvent(clock int64) ResetEvent { return ResetEvent{baseEvent{clock}} }

func (e ResetEvent) Dispatch(m *Machine) { m.Reset() }

// PauseEvent suspends the cycle coupler.
type PauseEvent struct{ baseEvent }

func NewPauseEvent(clock int64) PauseEvent { return PauseEvent{baseEvent{clock}} }
func (e PauseEvent) Dispatch(m *Machine)   { m.status = StatusPaused }

// ResumeEvent un-suspends the cycle coupler.
type ResumeEvent struct{ baseEvent }

func NewResumeEvent(clock int64) ResumeEvent { return ResumeEvent{baseEvent{clock}} }
func (e ResumeEvent) Dispatch(m *Machine)    { m.status = StatusRunning }

// PowerOffEvent stops the driver from scheduling further work.
type PowerOffEvent struct{ baseEvent }

func NewPowerOffEvent(clock int64) PowerOffEvent { return PowerOffEvent{baseEvent{clock}} }
func (e PowerOffEvent) Dispatch(m *Machine)      { m.status = StatusStopped }
