package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/spelltimer/pkg/logger"
)

// championFile is the shape of Data Dragon's champion.json. Entries are
// keyed by internal id ("Aatrox"); Key carries the numeric champion id.
type championFile struct {
	Version string `json:"version"`
	Data    map[string]struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

// ChampionLoader fetches champion display names from Data Dragon.
type ChampionLoader struct {
	baseURL string
	version string
	locale  string
	http    *http.Client
	logger  logger.Logger
}

// NewChampionLoader builds a loader for
// {baseURL}/cdn/{version}/data/{locale}/champion.json.
func NewChampionLoader(baseURL, version, locale string, opts ...Option) *ChampionLoader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ChampionLoader{
		baseURL: strings.TrimRight(baseURL, "/"),
		version: version,
		locale:  locale,
		http:    o.client(),
		logger:  o.logger,
	}
}

// URL returns the champion.json location.
func (l *ChampionLoader) URL() string {
	return fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", l.baseURL, l.version, l.locale)
}

// Load returns champion names keyed by numeric champion id.
func (l *ChampionLoader) Load(ctx context.Context) (map[int64]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build champion request: %w", err)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch champion data: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: champion data status %d", ErrUnexpected, resp.StatusCode)
	}

	var file championFile
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: decode champion data: %w", ErrUnexpected, err)
	}

	names := make(map[int64]string, len(file.Data))
	for id, c := range file.Data {
		key, err := strconv.ParseInt(c.Key, 10, 64)
		if err != nil {
			l.logger.Warn(ctx, "skipping champion with non-numeric key",
				logger.String("champion", id),
				logger.String("key", c.Key),
			)
			continue
		}
		names[key] = c.Name
	}

	l.logger.Info(ctx, "champion data loaded",
		logger.String("version", file.Version),
		logger.String("locale", l.locale),
		logger.Int("count", len(names)),
	)
	return names, nil
}
