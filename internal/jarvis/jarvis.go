package jarvis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/progress"
)

// Fallback lines shown when the analysis core cannot be reached. The
// engine must keep working without it, so Summarize never returns an
// error.
const (
	FallbackNoKey       = "Сэр, отсутствует OPENROUTER_API_KEY. Добавьте ключ в окружение для анализа."
	FallbackUnavailable = "Сэр, канал связи с ядром анализа временно недоступен."
	FallbackEmpty       = "Сэр, ответ от ядра анализа не получен."
)

const systemPrompt = "You are Jarvis, strict and witty."

// Summarizer sends the recent progress series to an OpenRouter-compatible
// chat-completions endpoint and returns the analysis text.
type Summarizer struct {
	endpoint string
	apiKey   string
	model    string
	httpc    *http.Client
	log      *slog.Logger
}

func New(endpoint, apiKey, model string, log *slog.Logger) *Summarizer {
	return &Summarizer{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		httpc:    &http.Client{Timeout: 60 * time.Second},
		log:      log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Summarize analyzes the recent chart series. Every failure mode (missing
// key, transport error, bad status, empty reply) degrades to a fixed
// human-readable line.
func (s *Summarizer) Summarize(ctx context.Context, recent []progress.ChartPoint) string {
	if strings.TrimSpace(s.apiKey) == "" {
		return FallbackNoKey
	}

	data, err := json.Marshal(recent)
	if err != nil {
		s.log.Warn("jarvis payload encode failed", "error", err)
		return FallbackUnavailable
	}
	prompt := fmt.Sprintf(
		"You are Jarvis, an ironic British assistant. Address user only as %q. "+
			"Analyze discipline trends and behavior correlations, no generic praise. Data: %s",
		"Сэр", data,
	)

	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		s.log.Warn("jarvis request encode failed", "error", err)
		return FallbackUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		s.log.Warn("jarvis request build failed", "error", err)
		return FallbackUnavailable
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		s.log.Warn("jarvis call failed", "error", err)
		return FallbackUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		s.log.Warn("jarvis bad status", "status", resp.StatusCode)
		return fmt.Sprintf("Сэр, ядро анализа вернуло код %d. Проверьте ключ и лимиты.", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		s.log.Warn("jarvis response decode failed", "error", err)
		return FallbackEmpty
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return FallbackEmpty
	}
	return parsed.Choices[0].Message.Content
}
