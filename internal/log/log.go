// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/caarlos0/env/v11"
)

// Settings are read from the environment.
type Settings struct {
	Level string `env:"EPICCTL_LOG" envDefault:"ERROR"`
	File  string `env:"EPICCTL_LOG_FILE"`
}

// InitLogger sets up Apex with a custom handler and a log level from the
// EPICCTL_LOG env variable. When EPICCTL_LOG_FILE is set, entries are
// appended to that file instead of stderr.
func InitLogger() {
	var s Settings
	if err := env.Parse(&s); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	var w io.Writer = os.Stderr
	if s.File != "" {
		if f, err := os.OpenFile(s.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil { //nolint:mnd
			w = f
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	log.SetHandler(NewCustomHandler(w))
	if lvl, err := log.ParseLevel(strings.ToLower(s.Level)); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(log.ErrorLevel)
	}
}

// Redirect points the installed handler at w. The browser uses it to keep
// log lines off the screen.
func Redirect(w io.Writer) {
	if l, ok := log.Log.(*log.Logger); ok {
		if h, ok := l.Handler.(*CustomHandler); ok {
			h.SetWriter(w)
			return
		}
	}
	log.SetHandler(NewCustomHandler(w))
}

// CustomHandler formats log messages and writes them to its writer.
type CustomHandler struct {
	mu sync.Mutex
	w  io.Writer
}

func NewCustomHandler(w io.Writer) *CustomHandler {
	return &CustomHandler{w: w}
}

func (h *CustomHandler) SetWriter(w io.Writer) {
	h.mu.Lock()
	h.w = w
	h.mu.Unlock()
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := e.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	level := strings.ToUpper(e.Level.String())

	msg := e.Message
	if err, ok := e.Fields["error"]; ok {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.w, "%s %.1s %s\n", timestamp.Format("2006-01-02 15:04:05"), level, msg)
	return err
}
