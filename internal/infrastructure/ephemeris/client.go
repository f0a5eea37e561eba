// Package ephemeris is the HTTP adapter for the external calculation engine.
// All astronomical math happens on the engine side; this client only moves
// payloads. The Solar Set is derived locally from the returned chart data.
package ephemeris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client implements ports.Calculator against the ephemeris engine's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type natalChartRequest struct {
	Birth   domain.BirthData        `json:"birth_data"`
	Options ports.NatalChartOptions `json:"options"`
}

func (c *Client) CalculateNatalChart(ctx context.Context, birth domain.BirthData, opts ports.NatalChartOptions) (domain.ChartPayload, error) {
	var payload domain.ChartPayload
	if err := c.post(ctx, "/v1/natal-chart", natalChartRequest{Birth: birth, Options: opts}, &payload); err != nil {
		return domain.ChartPayload{}, err
	}
	if err := checkPositions(payload, domain.StageNatalChart); err != nil {
		return domain.ChartPayload{}, err
	}
	return payload, nil
}

// checkPositions rejects engine responses whose placements are internally
// inconsistent before they reach the core.
func checkPositions(payload domain.ChartPayload, stage string) error {
	for _, planet := range payload.Planets {
		if _, err := domain.PositionFromRecord(planet); err != nil {
			return domain.NewCalculationError(
				fmt.Sprintf("engine returned inconsistent position for %s", planet.Name), stage, err)
		}
	}
	return nil
}

// CalculateSolarSet derives the Solar Set locally; the engine already returned
// everything needed in the natal payload.
func (c *Client) CalculateSolarSet(_ context.Context, payload domain.ChartPayload) (domain.SolarSet, error) {
	return domain.DeriveSolarSet(payload)
}

type transitsRequest struct {
	Chart        domain.ChartPayload           `json:"chart"`
	TargetDate   string                        `json:"target_date"`
	OrbOverrides map[domain.AspectType]float64 `json:"orb_overrides,omitempty"`
}

func (c *Client) CalculateTransits(ctx context.Context, payload domain.ChartPayload, targetDate time.Time, orbOverrides map[domain.AspectType]float64) (domain.TransitPayload, error) {
	var result domain.TransitPayload
	err := c.post(ctx, "/v1/transits", transitsRequest{
		Chart:        payload,
		TargetDate:   targetDate.UTC().Format(time.RFC3339),
		OrbOverrides: orbOverrides,
	}, &result)
	return result, err
}

type solarReturnRequest struct {
	Birth domain.BirthData `json:"birth_data"`
	Year  int              `json:"year"`
}

func (c *Client) CalculateSolarReturn(ctx context.Context, birth domain.BirthData, year int) (domain.SolarReturnPayload, error) {
	var result domain.SolarReturnPayload
	if err := c.post(ctx, "/v1/solar-return", solarReturnRequest{Birth: birth, Year: year}, &result); err != nil {
		return domain.SolarReturnPayload{}, err
	}
	if err := checkPositions(result.Chart, domain.StageSolarReturn); err != nil {
		return domain.SolarReturnPayload{}, err
	}
	return result, nil
}

type chartSVGRequest struct {
	Birth    domain.BirthData    `json:"birth_data"`
	Chart    domain.ChartPayload `json:"chart"`
	Name     string              `json:"name"`
	Language string              `json:"language"`
}

type chartSVGResponse struct {
	SVG string `json:"svg"`
}

func (c *Client) GenerateChartSVG(ctx context.Context, birth domain.BirthData, payload domain.ChartPayload, name, language string) (string, error) {
	var result chartSVGResponse
	err := c.post(ctx, "/v1/chart-svg", chartSVGRequest{
		Birth:    birth,
		Chart:    payload,
		Name:     name,
		Language: language,
	}, &result)
	return result.SVG, err
}

func (c *Client) GetSupportedAspects() []domain.AspectType {
	return []domain.AspectType{
		domain.Conjunction,
		domain.Opposition,
		domain.Trine,
		domain.Square,
		domain.Sextile,
		domain.Semisquare,
		domain.Sesquiquadrate,
		domain.Quincunx,
	}
}

func (c *Client) GetDefaultOrbs() map[domain.AspectType]float64 {
	orbs := make(map[domain.AspectType]float64, len(c.GetSupportedAspects()))
	for _, t := range c.GetSupportedAspects() {
		orbs[t] = domain.DefaultOrb(t)
	}
	return orbs
}

// Ping checks engine reachability for the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ephemeris engine returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ephemeris request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("path", path).
			Bytes("body", snippet).
			Msg("ephemeris engine error")
		return fmt.Errorf("ephemeris engine returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
