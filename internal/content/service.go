// Package content proxies text generation to an OpenAI-compatible
// chat-completions API, in blocking and streaming forms.
package content

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultModel = "gpt-4o-mini"

type Service struct {
	client  *http.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewService builds the upstream client. The timeout applies to the
// blocking call only; streaming requests are bounded by the caller's
// context instead, since a generation can legitimately outlive any
// fixed budget.
func NewService(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Service {
	return &Service{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		logger:  logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (s *Service) post(ctx context.Context, payload chatRequest) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	return s.client.Do(req)
}

// Generate runs one blocking completion and returns the full text.
func (s *Service) Generate(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = defaultModel
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.post(ctx, chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("content: upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("content upstream error", "status", resp.StatusCode, "body", string(detail))
		return "", fmt.Errorf("content: upstream status %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("content: decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("content: upstream returned no choices")
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

// GenerateStream runs a streaming completion, calling fn for every
// text delta as it arrives. An error from fn, or cancellation of ctx,
// stops the upstream read promptly; nothing is buffered beyond the
// current line.
func (s *Service) GenerateStream(ctx context.Context, prompt, model string, fn func(chunk string) error) error {
	if model == "" {
		model = defaultModel
	}

	resp, err := s.post(ctx, chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   true,
	})
	if err != nil {
		return fmt.Errorf("content: upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("content upstream error", "status", resp.StatusCode, "body", string(detail))
		return fmt.Errorf("content: upstream status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			return nil
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			s.logger.Warn("content: skipping unparsable chunk", "data", data)
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if text := chunk.Choices[0].Delta.Content; text != "" {
			if err := fn(text); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}
