package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-hrms/internal/config"

	"go.uber.org/zap"
)

const systemPrompt = "You are an HRMS employee feedback assistant. Keep replies concise, empathetic, and action-oriented."

//go:generate mockgen -source=feedback_reply.go -destination=mock/feedback_reply_mock.go -package=mock
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, text string) string
}

// NewReplyGenerator uses the completion API when a key is configured.
func NewReplyGenerator(cfg config.AssistantConfig, logger ...*zap.Logger) ReplyGenerator {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return LocalReplyGenerator{}
	}
	return NewRemoteReplyGenerator(cfg, logger...)
}

// LocalReplyGenerator answers from a fixed keyword table.
type LocalReplyGenerator struct{}

var cannedReplies = []struct {
	keywords []string
	reply    string
}{
	{[]string{"attendance", "check-in", "checkout"}, "Attendance issues noted. Please include date/time in your next message so HR can verify quickly."},
	{[]string{"leave"}, "Leave feedback received. Mention leave type and request dates so the team can review it accurately."},
	{[]string{"salary", "payroll"}, "Payroll feedback recorded. Share the month and expected vs actual amount so we can escalate to payroll."},
	{[]string{"manager", "team"}, "Thank you for sharing team feedback. HR will review this confidentially."},
	{[]string{"bug", "error", "issue"}, "Thanks for reporting this issue. Please add page name and exact steps so support can reproduce it."},
}

const defaultReply = "Thanks for your feedback. It has been recorded and will be reviewed by HR/admin."

func (LocalReplyGenerator) GenerateReply(_ context.Context, text string) string {
	lower := strings.ToLower(text)
	for _, c := range cannedReplies {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.reply
			}
		}
	}
	return defaultReply
}

// RemoteReplyGenerator calls an OpenAI-compatible responses endpoint and
// falls back to the local table on any failure.
type RemoteReplyGenerator struct {
	apiKey   string
	endpoint string
	model    string
	timeout  time.Duration
	http     *http.Client
	fallback ReplyGenerator
	logger   *zap.Logger
}

func NewRemoteReplyGenerator(cfg config.AssistantConfig, logger ...*zap.Logger) *RemoteReplyGenerator {
	l := zap.L().Named("feedback.assistant")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("feedback.assistant")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &RemoteReplyGenerator{
		apiKey:   cfg.APIKey,
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/v1/responses",
		model:    cfg.Model,
		timeout:  timeout,
		http:     &http.Client{Timeout: timeout},
		fallback: LocalReplyGenerator{},
		logger:   l,
	}
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model string              `json:"model"`
	Input []completionMessage `json:"input"`
}

type completionResponse struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

func (r completionResponse) text() string {
	if s := strings.TrimSpace(r.OutputText); s != "" {
		return s
	}
	var b strings.Builder
	for _, o := range r.Output {
		for _, c := range o.Content {
			if c.Type == "output_text" {
				b.WriteString(c.Text)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func (g *RemoteReplyGenerator) GenerateReply(ctx context.Context, text string) string {
	reply, err := g.complete(ctx, text)
	if err != nil {
		g.logger.Warn("assistant reply failed, using local reply", zap.Error(err))
		return g.fallback.GenerateReply(ctx, text)
	}
	if reply == "" {
		return g.fallback.GenerateReply(ctx, text)
	}
	return reply
}

func (g *RemoteReplyGenerator) complete(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	payload, err := json.Marshal(completionRequest{
		Model: g.model,
		Input: []completionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	var out completionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("decode assistant response: %w", err)
	}
	return out.text(), nil
}
