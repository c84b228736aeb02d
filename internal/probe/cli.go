package probe

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/spelltimer/pkg/logger"
)

const logFilePermission = 0600

// SetupLogging sends probe logs to stdout and to logFile. An empty logFile
// gets a timestamped name.
func SetupLogging(logFile string) (io.Closer, error) {
	if logFile == "" {
		logFile = "spell_probe_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.Init(logger.WithWriter(io.MultiWriter(os.Stdout, file))); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return file, nil
}

// ShowHelp prints usage information for the probe.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Spell Timer Probe
=================

Posts spell reports to a running spell timer and optionally waits for the
registered cooldowns to run out.

Usage:
  go run ./cmd/spell-probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -summoner int
        Reporting summoner id (required)
  -region string
        Region override sent with every report
  -text string
        Report text; repeat the flag to rotate several texts (default "럭스 점멸")
  -reports int
        Number of reports to post (default 1)
  -workers int
        Number of concurrent requests (default 4)
  -await
        Wait for every registered cooldown to run out
  -timeout duration
        Timeout for each POST /spell (default 10s)
  -log string
        Log file for probe output (default: spell_probe_TIMESTAMP.log)
  -help
        Show this help message

Examples:
  # One report, then wait for it
  go run ./cmd/spell-probe -summoner 1 -text "럭스 점멸" -await

  # Rotate two reports across 20 requests
  go run ./cmd/spell-probe -summoner 1 -text "럭스 점멸" -text "아리 점화" -reports 20
`)
}
