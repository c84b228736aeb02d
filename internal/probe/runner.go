package probe

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/spelltimer/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// reportResult is the outcome of one POST /spell.
type reportResult struct {
	outcome  string
	status   int
	response SpellResponse
}

// Run executes a complete probe and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if err := validate(config); err != nil {
		return nil, err
	}

	stats := &Stats{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	log := logger.Named("probe")

	log.Info(ctx, "starting spell probe",
		logger.String("runID", stats.RunID),
		logger.String("baseURL", config.BaseURL),
		logger.Int64("summonerID", config.SummonerID),
		logger.Int("reports", config.Reports),
		logger.Int("workers", workers(config)),
		logger.Bool("await", config.Await))

	client := newHTTPClient(strings.TrimRight(config.BaseURL, "/"))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, timeout(config)); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Submit reports concurrently
	results, err := submitReports(ctx, client, config, stats)
	if err != nil {
		return stats, fmt.Errorf("report submission failed: %w", err)
	}
	if stats.ReportsAccepted == 0 {
		return stats, ErrNoReportsAccepted
	}

	// Step 3: Wait for cooldowns
	if config.Await {
		if err := awaitCooldowns(ctx, client, config, results, stats); err != nil {
			return stats, fmt.Errorf("await failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	log.Info(ctx, "probe completed", logger.String("runID", stats.RunID))
	return stats, nil
}

func validate(config *Config) error {
	switch {
	case config == nil:
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	case strings.TrimSpace(config.BaseURL) == "":
		return fmt.Errorf("%w: base url is required", ErrInvalidConfig)
	case config.SummonerID <= 0:
		return fmt.Errorf("%w: summoner id must be positive", ErrInvalidConfig)
	case len(config.Texts) == 0:
		return fmt.Errorf("%w: at least one report text is required", ErrInvalidConfig)
	case config.Reports <= 0:
		return fmt.Errorf("%w: reports must be positive", ErrInvalidConfig)
	}
	return nil
}

func workers(config *Config) int {
	if config.Workers > 0 {
		return config.Workers
	}
	return DefaultWorkers
}

func timeout(config *Config) time.Duration {
	if config.Timeout > 0 {
		return config.Timeout
	}
	return DefaultTimeout
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, d time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if err := decodeBody(resp, nil); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// submitReports posts config.Reports reports, cycling through config.Texts.
// Individual failures are counted, not returned.
func submitReports(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) ([]reportResult, error) {
	results := make([]reportResult, config.Reports)
	var accepted, rejected, failed int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(config))
	for i := range results {
		i := i
		g.Go(func() error {
			req := SpellRequest{
				SummonerID: config.SummonerID,
				Region:     config.Region,
				Text:       config.Texts[i%len(config.Texts)],
			}
			requestID := stats.RunID + "-" + strconv.Itoa(i)
			results[i] = submitSingleReport(gctx, client, requestID, req, timeout(config))

			switch results[i].outcome {
			case outcomeAccepted:
				atomic.AddInt64(&accepted, 1)
			case outcomeRejected:
				atomic.AddInt64(&rejected, 1)
			default:
				atomic.AddInt64(&failed, 1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats.ReportsSubmitted = len(results)
	stats.ReportsAccepted = int(accepted)
	stats.ReportsRejected = int(rejected)
	stats.ReportsFailed = int(failed)

	logger.Get().Info(ctx, "report submission completed",
		logger.Int("accepted", stats.ReportsAccepted),
		logger.Int("rejected", stats.ReportsRejected),
		logger.Int("failed", stats.ReportsFailed))
	return results, nil
}

// submitSingleReport posts one report. A 4xx answer is a rejection; anything
// else that is not 201 is a failure.
func submitSingleReport(ctx context.Context, client *HTTPClient, requestID string, req SpellRequest, d time.Duration) reportResult {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	resp, err := client.PostJSON(ctx, "/spell", requestID, req)
	if err != nil {
		logger.Get().Debug(ctx, "report failed", logger.String("requestID", requestID), logger.Error(err))
		return reportResult{outcome: outcomeFailed}
	}

	switch {
	case resp.StatusCode == http.StatusCreated:
		var body SpellResponse
		if err := decodeBody(resp, &body); err != nil {
			return reportResult{outcome: outcomeFailed, status: resp.StatusCode}
		}
		return reportResult{outcome: outcomeAccepted, status: resp.StatusCode, response: body}
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		_ = decodeBody(resp, nil)
		return reportResult{outcome: outcomeRejected, status: resp.StatusCode}
	default:
		_ = decodeBody(resp, nil)
		return reportResult{outcome: outcomeFailed, status: resp.StatusCode}
	}
}

// awaitCooldowns waits once per distinct cooldown that was registered.
func awaitCooldowns(ctx context.Context, client *HTTPClient, config *Config, results []reportResult, stats *Stats) error {
	seen := make(map[string]struct{})
	var paths []string
	for _, r := range results {
		if r.outcome != outcomeAccepted {
			continue
		}
		p := awaitPath(r.response.SummonerID, r.response.ChampionName, r.response.SpellName)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	logger.Get().Info(ctx, "waiting for cooldowns", logger.Int("cooldowns", len(paths)))

	var completed, failed int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(config))
	for _, p := range paths {
		p := p
		g.Go(func() error {
			waited, err := awaitSingle(gctx, client, p)
			if err != nil {
				atomic.AddInt64(&failed, 1)
				logger.Get().Warn(gctx, "await failed", logger.String("path", p), logger.Error(err))
				return nil
			}
			atomic.AddInt64(&completed, 1)
			logger.Get().Info(gctx, "cooldown over",
				logger.String("message", waited.Message),
				logger.Int64("waitedMs", waited.WaitedMs))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	stats.AwaitsCompleted = int(completed)
	stats.AwaitsFailed = int(failed)
	return ctx.Err()
}

func awaitSingle(ctx context.Context, client *HTTPClient, path string) (AwaitResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, AwaitTimeout)
	defer cancel()

	resp, err := client.Get(ctx, path)
	if err != nil {
		return AwaitResponse{}, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = decodeBody(resp, nil)
		return AwaitResponse{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var body AwaitResponse
	if err := decodeBody(resp, &body); err != nil {
		return AwaitResponse{}, err
	}
	return body, nil
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var acceptRate, reportsPerSecond float64

	if stats.ReportsSubmitted > 0 {
		acceptRate = float64(stats.ReportsAccepted) / float64(stats.ReportsSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		reportsPerSecond = float64(stats.ReportsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.String("runID", stats.RunID),
		logger.Int("reportsSubmitted", stats.ReportsSubmitted),
		logger.Int("reportsAccepted", stats.ReportsAccepted),
		logger.Int("reportsRejected", stats.ReportsRejected),
		logger.Int("reportsFailed", stats.ReportsFailed),
		logger.Int("awaitsCompleted", stats.AwaitsCompleted),
		logger.Int("awaitsFailed", stats.AwaitsFailed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("reportsPerSecond", reportsPerSecond))
}
