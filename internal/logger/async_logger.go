// Copyright 2025 Google LLC
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

package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// AsyncLogger decouples log producers from the underlying writer. Write
// copies the message onto a buffered channel and returns immediately; a
// single goroutine drains the channel in order. When the buffer is full the
// message is dropped rather than blocking the caller.
type AsyncLogger struct {
	out       io.WriteCloser
	ch        chan []byte
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewAsyncLogger starts the writer goroutine for the given writer and buffer
// size.
func NewAsyncLogger(out io.WriteCloser, bufferSize int) *AsyncLogger {
	l := &AsyncLogger{
		out:  out,
		ch:   make(chan []byte, bufferSize),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *AsyncLogger) run() {
	defer close(l.done)
	for p := range l.ch {
		// There is nowhere to log a failure to write a log message.
		_, _ = l.out.Write(p)
	}
}

// Write queues the message without blocking. The buffer is copied since the
// caller may reuse p before the writer goroutine gets to it.
func (l *AsyncLogger) Write(p []byte) (int, error) {
	buf := make([]byte, len(p))
	copy(buf, p)

	select {
	case l.ch <- buf:
	default:
		fmt.Fprintln(os.Stderr, "asynclogger: log buffer is full, dropping message.")
	}
	return len(p), nil
}

// Close drains all queued messages and closes the underlying writer.
func (l *AsyncLogger) Close() error {
	l.closeOnce.Do(func() {
		close(l.ch)
		<-l.done
		l.closeErr = l.out.Close()
	})
	return l.closeErr
}
