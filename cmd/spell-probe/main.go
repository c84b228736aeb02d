package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/okian/spelltimer/internal/probe"
)

const (
	defaultText     = "럭스 점멸"
	defaultDeadline = 15 * time.Minute
)

// textFlags collects repeated -text values.
type textFlags []string

func (t *textFlags) String() string { return strings.Join(*t, ",") }

func (t *textFlags) Set(v string) error {
	*t = append(*t, v)
	return nil
}

func main() {
	var texts textFlags
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		summoner = flag.Int64("summoner", 0, "Reporting summoner id")
		region   = flag.String("region", "", "Region override sent with every report")
		reports  = flag.Int("reports", 1, "Number of reports to post")
		workers  = flag.Int("workers", probe.DefaultWorkers, "Number of concurrent requests")
		await    = flag.Bool("await", false, "Wait for every registered cooldown to run out")
		timeout  = flag.Duration("timeout", probe.DefaultTimeout, "Timeout for each POST /spell")
		logFile  = flag.String("log", "", "Log file for probe output")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Var(&texts, "text", "Report text (repeatable)")
	flag.Parse()

	if *help {
		probe.ShowHelp(os.Stdout)
		return
	}
	if len(texts) == 0 {
		texts = textFlags{defaultText}
	}

	closer, err := probe.SetupLogging(*logFile)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), defaultDeadline)
	defer cancel()

	config := &probe.Config{
		BaseURL:    *baseURL,
		SummonerID: *summoner,
		Region:     *region,
		Texts:      texts,
		Reports:    *reports,
		Workers:    *workers,
		Await:      *await,
		Timeout:    *timeout,
		LogFile:    *logFile,
	}

	if _, err := probe.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		cancel()
		_ = closer.Close()
		os.Exit(1)
	}
}
