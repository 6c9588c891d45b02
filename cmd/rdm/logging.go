package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"
)

const (
	logDir      = "logs"
	logFileName = "rdm.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// logNow stamps rotated log names
var logNow = time.Now

// setupLogging routes the standard logger to logs/rdm.log when debug is set
// and discards it otherwise; stdout and stderr belong to the terminal UI.
// A log file above maxLogSize is rotated to a timestamped name first; if the
// rename fails the old file keeps growing and the failure is its first entry.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		gg.SetLogger(nil)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	var rotateErr error
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("rdm_%s.log", logNow().Format("20060102_150405")))
		rotateErr = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	gg.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelWarn})))
	if rotateErr != nil {
		log.Printf("log rotation failed, appending to %s: %v", logPath, rotateErr)
	}
	return f
}
