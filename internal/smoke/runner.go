// Package smoke drives a running service through canned resolution posts
// and verifies the outcomes end to end: HTTP decode, index lookups, scoring
// and team detection in one pass.
package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/rostermatch/internal/domain/model"
	"github.com/okian/rostermatch/pkg/logger"
)

// Config controls one smoke run.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Run executes every canned case against the service at cfg.BaseURL and
// returns an error describing the first batch of failures.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Named("smoke")
	client := &http.Client{Timeout: cfg.Timeout}

	if err := checkHealth(ctx, client, cfg.BaseURL); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	var failures []string
	for _, c := range Cases() {
		res, err := post(ctx, client, cfg.BaseURL, c.Text)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", c.Name, err))
			continue
		}
		if err := verify(c, res); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", c.Name, err))
			continue
		}
		log.Info(ctx, "case passed",
			logger.String("case", c.Name),
			logger.Int("matches", len(res.Matches)))
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d cases failed: %v", len(failures), len(Cases()), failures)
	}
	log.Info(ctx, "all cases passed", logger.Int("cases", len(Cases())))
	return nil
}

func checkHealth(ctx context.Context, client *http.Client, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status %d", resp.StatusCode)
	}
	return nil
}

func post(ctx context.Context, client *http.Client, baseURL, text string) (model.Resolution, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return model.Resolution{}, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/resolve", bytes.NewReader(body))
	if err != nil {
		return model.Resolution{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return model.Resolution{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.Resolution{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var res model.Resolution
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return model.Resolution{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return res, nil
}

// verify checks one case outcome against its expectations.
func verify(c Case, res model.Resolution) error {
	if c.WantTop == "" {
		if len(res.Matches) != 0 && len(c.WantTeams) == 0 {
			return fmt.Errorf("expected no matches, got %d", len(res.Matches))
		}
	} else {
		top, ok := res.Top()
		if !ok {
			return fmt.Errorf("expected top match %q, got none", c.WantTop)
		}
		if top.Entity.ID != c.WantTop {
			return fmt.Errorf("expected top match %q, got %q (score %.1f)", c.WantTop, top.Entity.ID, top.Score)
		}
	}

	detected := make(map[string]struct{}, len(res.Teams))
	for _, code := range res.Teams {
		detected[code] = struct{}{}
	}
	for _, want := range c.WantTeams {
		if _, ok := detected[want]; !ok {
			return fmt.Errorf("expected team %q in %v", want, res.Teams)
		}
	}

	if c.WantAmbiguous != res.Ambiguous {
		return fmt.Errorf("expected ambiguous=%v, got %v", c.WantAmbiguous, res.Ambiguous)
	}
	return nil
}
