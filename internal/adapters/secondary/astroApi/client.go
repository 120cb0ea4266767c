package astroApi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	GeoDetails     = "geo-details"
	Planets        = "planets"
	NavamsaInfo    = "navamsa-chart-info"
	HoroscopeSVG   = "horoscope-chart-svg-code"
	NavamsaSVG     = "navamsa-chart-svg-code"
	AshtakootScore = "match-making/ashtakoot-score"
)

// truncateString обрезает строку до указанной длины
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client - клиент для работы с астрологическим API
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewClient создаёт новый клиент для работы с астро-API
func NewClient(cfg *Config, log *slog.Logger) *Client {
	transport := &http.Transport{}

	if cfg.ShouldSkipSSL() {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		Log: log,
	}
}

// Settings настройки расчёта из конфига
func (c *Client) Settings() Settings {
	return Settings{
		ObservationPoint: c.cfg.ObservationPoint,
		Ayanamsha:        c.cfg.Ayanamsha,
		Language:         c.cfg.Language,
	}
}

// buildURL собирает полный URL из BaseURL и endpoint
func (c *Client) buildURL(endpoint string) string {
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + strings.TrimPrefix(endpoint, "/")
}

// setHeaders устанавливает стандартные заголовки для запросов к API
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.ApiKey != "" {
		req.Header.Set("x-api-key", c.cfg.ApiKey)
	}
}

// post одна попытка POST-запроса, возвращает поле output из обёртки
func (c *Client) post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.buildURL(endpoint)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	c.setHeaders(httpReq)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("astro API request failed [endpoint=%s]: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	rawJSON := string(body)

	if resp.StatusCode != http.StatusOK {
		c.Log.Debug("astro API returned non-200 status",
			"endpoint", endpoint,
			"status_code", resp.StatusCode,
			"body_preview", truncateString(rawJSON, 200),
		)
		return nil, fmt.Errorf("astro API error [endpoint=%s, status=%d]: %s", endpoint, resp.StatusCode, truncateString(rawJSON, 500))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.Log.Debug("failed to unmarshal astro API response",
			"endpoint", endpoint,
			"error", err,
			"body_preview", truncateString(rawJSON, 200),
		)
		return nil, fmt.Errorf("astro API unmarshal failed [endpoint=%s]: %w", endpoint, err)
	}

	if env.StatusCode != 0 && env.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("astro API error [endpoint=%s, statusCode=%d]: %s", endpoint, env.StatusCode, truncateString(rawJSON, 500))
	}

	if len(env.Output) == 0 {
		return nil, fmt.Errorf("astro API returned empty output [endpoint=%s]", endpoint)
	}

	return env.Output, nil
}

// GeoDetails геокодинг места, пустой срез если ничего не найдено
func (c *Client) GeoDetails(ctx context.Context, req GeoRequest) ([]GeoEntry, error) {
	output, err := c.post(ctx, GeoDetails, req)
	if err != nil {
		return nil, err
	}

	var entries []GeoEntry
	if err := json.Unmarshal(output, &entries); err != nil {
		return nil, fmt.Errorf("decode geo details: %w", err)
	}
	return entries, nil
}

// Planets знаки и ретроградность планет в D1
func (c *Client) Planets(ctx context.Context, req BirthPayload) (map[string]PlanetEntry, error) {
	output, err := c.post(ctx, Planets, req)
	if err != nil {
		return nil, err
	}
	return decodePlanetTable(output)
}

// Navamsa знаки планет в D9
func (c *Client) Navamsa(ctx context.Context, req BirthPayload) (map[string]PlanetEntry, error) {
	output, err := c.post(ctx, NavamsaInfo, req)
	if err != nil {
		return nil, err
	}
	return decodePlanetTable(output)
}

// ChartSVG готовая svg-картинка карты
func (c *Client) ChartSVG(ctx context.Context, endpoint string, req BirthPayload) (string, error) {
	output, err := c.post(ctx, endpoint, req)
	if err != nil {
		return "", err
	}

	var svg string
	if err := json.Unmarshal(output, &svg); err != nil {
		return "", fmt.Errorf("decode chart svg: %w", err)
	}
	if !strings.Contains(svg, "<svg") {
		return "", fmt.Errorf("chart svg payload is not svg markup")
	}
	return svg, nil
}

// Ashtakoot баллы совместимости пары
func (c *Client) Ashtakoot(ctx context.Context, req MatchRequest) (*MatchResult, error) {
	output, err := c.post(ctx, AshtakootScore, req)
	if err != nil {
		return nil, err
	}
	return decodeMatch(output)
}
