package logging

import (
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bartossh/Base58/logger"
)

// Helper helps with writing logs to io.Writers.
// Helper implements logger.Logger interface.
// Writing is done concurrently with out blocking the current thread.
type Helper struct {
	callOnErr   func(error)
	callOnFatal func(error)
	writers     []io.Writer
	pending     *sync.WaitGroup
}

// New creates new Helper.
// callOnErr is called when writing fails, callOnFatal after a fatal log has been written.
func New(callOnErr, callOnFatal func(error), writers ...io.Writer) Helper {
	return Helper{callOnErr: callOnErr, callOnFatal: callOnFatal, writers: writers, pending: &sync.WaitGroup{}}
}

// Debug writes debug log.
func (h Helper) Debug(msg string) {
	h.write(newLog("debug", msg), false)
}

// Info writes info log.
func (h Helper) Info(msg string) {
	h.write(newLog("info", msg), false)
}

// Warn writes warning log.
func (h Helper) Warn(msg string) {
	h.write(newLog("warn", msg), false)
}

// Error writes error log.
func (h Helper) Error(msg string) {
	h.write(newLog("error", msg), false)
}

// Fatal writes fatal log.
func (h Helper) Fatal(msg string) {
	h.write(newLog("fatal", msg), true)
}

// Flush blocks until all logs issued so far are written.
func (h Helper) Flush() {
	h.pending.Wait()
}

func newLog(level, msg string) *logger.Log {
	return &logger.Log{
		ID:        primitive.NewObjectID(),
		Level:     level,
		Msg:       msg,
		CreatedAt: time.Now(),
	}
}

func (h Helper) write(l *logger.Log, fatal bool) {
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		raw, err := json.Marshal(l)
		if err != nil {
			h.callOnErr(err)
			return
		}
		for _, w := range h.writers {
			if _, err := w.Write(raw); err != nil {
				h.callOnErr(err)
			}
		}
		if fatal {
			h.callOnFatal(errors.New(l.Msg))
		}
	}()
}
