package logging

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// EventLogger aggregates query events from a lookup run, handles
// verbose stderr output, and collects events for the JSON log.
type EventLogger struct {
	events  []Event
	mu      sync.Mutex
	logger  *StderrLogger
	eventCh chan Event
	seen    map[string]int // normalized query -> count
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewEventLogger creates a new EventLogger.
func NewEventLogger(logger *StderrLogger) *EventLogger {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventLogger{
		events:  make([]Event, 0, 256),
		logger:  logger,
		eventCh: make(chan Event, 1024),
		seen:    make(map[string]int),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// EventCh returns the channel for sending events to the logger.
func (el *EventLogger) EventCh() chan<- Event {
	return el.eventCh
}

// Start begins processing events in a background goroutine.
func (el *EventLogger) Start() {
	el.wg.Add(1)
	go func() {
		defer el.wg.Done()
		for {
			select {
			case <-el.ctx.Done():
				el.drain()
				return
			case ev := <-el.eventCh:
				el.processEvent(ev)
			}
		}
	}()
}

// Stop stops the event logger and waits for all queued events to be
// processed. Events must not be sent after Stop.
func (el *EventLogger) Stop() {
	el.cancel()
	el.wg.Wait()
}

// drain processes any remaining events in the channel after cancellation.
func (el *EventLogger) drain() {
	for {
		select {
		case ev := <-el.eventCh:
			el.processEvent(ev)
		default:
			return
		}
	}
}

func (el *EventLogger) processEvent(ev Event) {
	el.mu.Lock()
	el.events = append(el.events, ev)
	el.seen[ev.Domain]++
	seenCount := el.seen[ev.Domain]
	el.mu.Unlock()

	el.logger.QueryEvent(ev, seenCount)
}

// GetEvents returns a copy of all accumulated events in query order.
func (el *EventLogger) GetEvents() []Event {
	el.mu.Lock()
	defer el.mu.Unlock()
	result := slices.Clone(el.events)
	slices.SortStableFunc(result, func(a, b Event) int {
		return cmp.Compare(a.Index, b.Index)
	})
	return result
}

// Summary holds run statistics.
type Summary struct {
	TotalQueries     int
	ForbiddenQueries int
	AllowedQueries   int
	UniqueQueries    int
	MatchedRoots     int
}

// GetSummary computes summary statistics from all events.
func (el *EventLogger) GetSummary() Summary {
	el.mu.Lock()
	defer el.mu.Unlock()

	var s Summary
	roots := make(map[string]struct{})

	for _, ev := range el.events {
		s.TotalQueries++
		switch ev.Type {
		case EventQueryForbidden:
			s.ForbiddenQueries++
			roots[ev.Root] = struct{}{}
		case EventQueryAllowed:
			s.AllowedQueries++
		}
	}

	s.UniqueQueries = len(el.seen)
	s.MatchedRoots = len(roots)
	return s
}

// RootInfo holds the number of forbidden queries attributed to one root.
type RootInfo struct {
	Root  string
	Count int
}

// GetRootHits returns the forbidden roots that matched at least one query,
// most hits first, ties by name.
func (el *EventLogger) GetRootHits() []RootInfo {
	el.mu.Lock()
	defer el.mu.Unlock()

	counts := make(map[string]int)
	for _, ev := range el.events {
		if ev.IsForbidden() {
			counts[ev.Root]++
		}
	}

	hits := make([]RootInfo, 0, len(counts))
	for root, n := range counts {
		hits = append(hits, RootInfo{Root: root, Count: n})
	}
	slices.SortFunc(hits, func(a, b RootInfo) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Root, b.Root)
	})
	return hits
}
