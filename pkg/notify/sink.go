package notify

//go:generate mockgen -source=sink.go -destination=mock/sink.go -package=mock

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/wms-platform/wms-web/pkg/logging"
)

// Levels reported by sinks
const (
	LevelError   = "error"
	LevelSuccess = "success"
)

// Sink shows user-facing notifications. Calls are fire-and-forget.
type Sink interface {
	Error(message string)
	Success(message string)
}

// ConsoleSink prints notifications to a terminal
type ConsoleSink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleSink writes to out, or stderr when out is nil
func NewConsoleSink(out io.Writer) *ConsoleSink {
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleSink{out: out}
}

func (s *ConsoleSink) Error(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s %s\n", color.RedString("✗"), message)
}

func (s *ConsoleSink) Success(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s %s\n", color.GreenString("✓"), message)
}

// LogSink turns notifications into log records, for non-interactive runs
type LogSink struct {
	logger *logging.Logger
}

func NewLogSink(logger *logging.Logger) *LogSink {
	return &LogSink{logger: logger.WithComponent("notify")}
}

func (s *LogSink) Error(message string) {
	s.logger.Error(message, "notice", LevelError)
}

func (s *LogSink) Success(message string) {
	s.logger.Info(message, "notice", LevelSuccess)
}

// Notification is one recorded notification
type Notification struct {
	Level   string
	Message string
}

// Recorder keeps every notification in memory
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Error(message string) {
	r.record(LevelError, message)
}

func (r *Recorder) Success(message string) {
	r.record(LevelSuccess, message)
}

func (r *Recorder) record(level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: level, Message: message})
}

// All returns a copy of everything recorded so far
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Errors returns the recorded error messages
func (r *Recorder) Errors() []string {
	return r.messages(LevelError)
}

// Successes returns the recorded success messages
func (r *Recorder) Successes() []string {
	return r.messages(LevelSuccess)
}

func (r *Recorder) messages(level string) []string {
	var out []string
	for _, n := range r.All() {
		if n.Level == level {
			out = append(out, n.Message)
		}
	}
	return out
}

// Reset forgets everything recorded
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// Multi fans a notification out to several sinks
type Multi []Sink

func (m Multi) Error(message string) {
	for _, s := range m {
		s.Error(message)
	}
}

func (m Multi) Success(message string) {
	for _, s := range m {
		s.Success(message)
	}
}

// Counted reports every notification to count before forwarding it
type Counted struct {
	Sink  Sink
	Count func(level string)
}

func (c Counted) Error(message string) {
	c.Count(LevelError)
	c.Sink.Error(message)
}

func (c Counted) Success(message string) {
	c.Count(LevelSuccess)
	c.Sink.Success(message)
}

// Discard drops every notification
var Discard Sink = discard{}

type discard struct{}

func (discard) Error(string)   {}
func (discard) Success(string) {}

// SuccessOnly forwards success notifications and drops errors. It is used
// where another layer already reports failures to the same user.
type SuccessOnly struct {
	Sink Sink
}

func (s SuccessOnly) Error(string) {}

func (s SuccessOnly) Success(message string) {
	s.Sink.Success(message)
}
