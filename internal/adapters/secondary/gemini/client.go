package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// Client обёртка над genai для запросов со строгой JSON-схемой ответа
type Client struct {
	client *genai.Client
	cfg    *Config
	log    *slog.Logger
}

// NewClient создаёт клиента Gemini API
func NewClient(ctx context.Context, cfg *Config, log *slog.Logger) (*Client, error) {
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.ApiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{
		client: client,
		cfg:    cfg,
		log:    log,
	}, nil
}

// GenerateJSON одна попытка генерации, ответ должен соответствовать schema
func (c *Client) GenerateJSON(ctx context.Context, systemPrompt, prompt string, schema *genai.Schema) (string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr(c.cfg.Temperature),
	}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed [model=%s]: %w", c.cfg.Model, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		c.log.Debug("gemini returned empty response", "model", c.cfg.Model)
		return "", fmt.Errorf("GenAI returned empty response [model=%s]", c.cfg.Model)
	}

	c.log.Debug("gemini response received",
		"model", c.cfg.Model,
		"response_size", len(text),
	)

	return text, nil
}
