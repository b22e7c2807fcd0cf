package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

const writerQueueDepth = 256

// writeOp is either a payload to append or, when ack is non-nil, a
// request to flush every sink and report the result.
type writeOp struct {
	data []byte
	ack  chan error
}

// asyncWriter decouples log emission from sink I/O: Write enqueues and a
// single goroutine fans the payload out to every buffered sink in order.
// The first sink error is sticky and fails all subsequent writes.
type asyncWriter struct {
	ops       chan writeOp
	drained   chan struct{}
	closeOnce sync.Once
	sinks     []*bufio.Writer
	firstErr  atomic.Pointer[error]
}

func newAsyncWriter(writers []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	w := &asyncWriter{
		ops:     make(chan writeOp, writerQueueDepth),
		drained: make(chan struct{}),
	}
	for _, dst := range writers {
		if dst == nil {
			continue
		}
		w.sinks = append(w.sinks, bufio.NewWriterSize(dst, bufSize))
	}
	go w.run()
	return w
}

func (w *asyncWriter) run() {
	defer close(w.drained)
	for op := range w.ops {
		if op.ack != nil {
			op.ack <- w.flushSinks()
			continue
		}
		if len(op.data) == 0 {
			continue
		}
		if err := w.fanOut(op.data); err != nil {
			w.recordErr(err)
		}
	}
	// channel closed: final flush so nothing buffered is lost
	if err := w.flushSinks(); err != nil {
		w.recordErr(err)
	}
}

// Write copies p and enqueues it; it blocks only when the queue is full,
// trading latency for not dropping log lines.
func (w *asyncWriter) Write(p []byte) error {
	if err := w.err(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	w.ops <- writeOp{data: buf}
	return nil
}

// Flush waits until everything enqueued before it has reached the sinks.
func (w *asyncWriter) Flush() error {
	if err := w.err(); err != nil {
		return err
	}
	ack := make(chan error, 1)
	w.ops <- writeOp{ack: ack}
	return <-ack
}

// Close drains the queue, flushes the sinks, and reports the first write
// error seen over the writer's lifetime. Safe to call more than once.
func (w *asyncWriter) Close() error {
	w.closeOnce.Do(func() { close(w.ops) })
	<-w.drained
	return w.err()
}

func (w *asyncWriter) fanOut(p []byte) error {
	for _, sink := range w.sinks {
		if _, err := sink.Write(p); err != nil {
			return err
		}
		if err := sink.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (w *asyncWriter) flushSinks() error {
	var errs []error
	for _, sink := range w.sinks {
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *asyncWriter) err() error {
	if p := w.firstErr.Load(); p != nil {
		return *p
	}
	return nil
}

func (w *asyncWriter) recordErr(err error) {
	if err == nil {
		return
	}
	w.firstErr.CompareAndSwap(nil, &err)
}
