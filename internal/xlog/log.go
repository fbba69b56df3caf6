// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package xlog is a minimal leveled logger, in the shape the core needs
// and nothing more: a Logger interface any host application can adapt
// its own logging framework to, a Filter that drops records below a
// configured level, and a Helper with printf-style convenience methods.
//
// No package here reads configuration or an environment variable; the
// host wires a Logger in through an Options struct.
package xlog

import (
	"fmt"
	"io"
	"sync"
)

// Level is a logging severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal sink every package in this module logs through.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// NewStdLogger wraps an io.Writer as a Logger, one line per record.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{w: w}
}

type stdLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *stdLogger) Log(level Level, keyvals ...interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "[%s] %s\n", level, fmt.Sprint(keyvals...))
	return err
}

// discard is the default Logger when none is supplied: silent.
type discard struct{}

func (discard) Log(Level, ...interface{}) error { return nil }

// NewFilter wraps a Logger so that records below min are dropped.
func NewFilter(next Logger, min Level) Logger {
	return &filter{next: next, min: min}
}

type filter struct {
	next Logger
	min  Level
}

func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.min {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// Helper adds printf-style convenience methods over a Logger, the way
// callers actually want to log.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger, or a silent discard Logger if nil.
func NewHelper(logger Logger) *Helper {
	if logger == nil {
		logger = discard{}
	}
	return &Helper{logger: logger}
}

func (h *Helper) Debugf(format string, args ...interface{}) {
	h.logger.Log(LevelDebug, fmt.Sprintf(format, args...))
}

func (h *Helper) Infof(format string, args ...interface{}) {
	h.logger.Log(LevelInfo, fmt.Sprintf(format, args...))
}

func (h *Helper) Warnf(format string, args ...interface{}) {
	h.logger.Log(LevelWarn, fmt.Sprintf(format, args...))
}

func (h *Helper) Errorf(format string, args ...interface{}) {
	h.logger.Log(LevelError, fmt.Sprintf(format, args...))
}
