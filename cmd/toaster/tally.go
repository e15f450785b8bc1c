package main

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// spanTally is a SpanProcessor that counts ended spans by name.
type spanTally struct {
	mu     sync.Mutex
	counts map[string]int
	total  map[string]time.Duration
}

var _ sdktrace.SpanProcessor = (*spanTally)(nil)

func newSpanTally() *spanTally {
	return &spanTally{
		counts: make(map[string]int),
		total:  make(map[string]time.Duration),
	}
}

func (s *spanTally) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (s *spanTally) OnEnd(span sdktrace.ReadOnlySpan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[span.Name()]++
	s.total[span.Name()] += span.EndTime().Sub(span.StartTime())
}

func (s *spanTally) Shutdown(context.Context) error   { return nil }
func (s *spanTally) ForceFlush(context.Context) error { return nil }

// Count returns how many spans named name have ended.
func (s *spanTally) Count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[name]
}

func (s *spanTally) render() string {
	s.mu.Lock()
	names := make([]string, 0, len(s.counts))
	for name := range s.counts {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		n := s.counts[name]
		avg := s.total[name] / time.Duration(n)
		rows = append(rows, []string{name, strconv.Itoa(n), avg.String()})
	}
	s.mu.Unlock()

	return renderTable(
		[]string{"Span", "Count", "Avg"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	)
}
