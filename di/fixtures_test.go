package di_test

import (
	"errors"
	"reflect"
	"sync"

	"github.com/sghaida/autowire/di"
)

// Logger is the capability most tests inject.
type Logger interface {
	Log(msg string)
}

// Clock is a second, unrelated capability.
type Clock interface {
	Now() int64
}

// ConsoleLogger has a zero-argument constructor.
type ConsoleLogger struct {
	Prefix string
	Lines  []string
}

func NewConsoleLogger() *ConsoleLogger { return &ConsoleLogger{Prefix: "console"} }

func (l *ConsoleLogger) Log(msg string) { l.Lines = append(l.Lines, l.Prefix+": "+msg) }

// FileLogger can only be built with a path.
type FileLogger struct{ Path string }

func NewFileLogger(path string) *FileLogger { return &FileLogger{Path: path} }

func (l *FileLogger) Log(string) {}

// FixedClock implements Clock.
type FixedClock struct{ At int64 }

func (c *FixedClock) Now() int64 { return c.At }

// Service is the canonical target: one marked Logger field.
type Service struct {
	Log Logger `inject:""`
}

// TwoDeps has a resolvable field followed by an unresolvable one.
type TwoDeps struct {
	Log   Logger `inject:""`
	Clock Clock  `inject:""`
}

// Plain has no marked fields at all.
type Plain struct {
	Name   string
	Log    Logger
	Logger *ConsoleLogger
}

// Concrete marks a non-interface field.
type Concrete struct {
	Log *ConsoleLogger `inject:""`
}

// Hidden marks an unexported field.
type Hidden struct {
	log Logger `inject:""`
}

// Bound declares its injection points explicitly instead of using tags.
type Bound struct {
	log   Logger
	clock Clock
}

func (b *Bound) InjectionPoints() []di.Point {
	return []di.Point{
		di.Bind("log", func(l Logger) { b.log = l }),
		di.Bind("clock", func(c Clock) { b.clock = c }),
	}
}

var (
	loggerID        = di.CapabilityID[Logger]()
	clockID         = di.CapabilityID[Clock]()
	consoleLoggerID = di.ImplementationID(reflect.TypeOf(&ConsoleLogger{}))
)

// recordingStore is a ConfigStore that remembers every lookup.
type recordingStore struct {
	mu      sync.Mutex
	entries map[string]string
	calls   []string
}

func newRecordingStore(entries map[string]string) *recordingStore {
	return &recordingStore{entries: entries}
}

func (s *recordingStore) Lookup(capability string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, capability)
	v, ok := s.entries[capability]
	return v, ok
}

func (s *recordingStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

var errBoom = errors.New("boom")
