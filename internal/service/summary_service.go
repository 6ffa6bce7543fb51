package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atlasboard/tracker-service/internal/config"
	"github.com/atlasboard/tracker-service/internal/domain"
	"github.com/atlasboard/tracker-service/internal/persistence"
	apperrors "github.com/atlasboard/tracker-service/pkg/util"
)

// SummaryService proxies epic/ticket read paths to an external completion
// service and caches generated summaries in Redis. The completion service
// itself is an external collaborator consumed through a request/response
// contract.
type SummaryService struct {
	cfg    config.AIConfig
	client *http.Client
	redis  *persistence.Redis
	logger *zap.Logger
}

// NewSummaryService builds the service.
func NewSummaryService(cfg config.AIConfig, redis *persistence.Redis, logger *zap.Logger) *SummaryService {
	return &SummaryService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		redis:  redis,
		logger: logger,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize produces a short text summary of an epic or ticket and its
// comment thread. Repeated calls for an unchanged entity hit the cache.
func (s *SummaryService) Summarize(ctx context.Context, kind string, id int64, updatedAt time.Time, title, description string, comments []domain.Comment) (string, error) {
	if s.cfg.APIKey == "" {
		return "", apperrors.NewDomainError("SUMMARY_UNAVAILABLE", "summary service not configured",
			http.StatusServiceUnavailable, nil)
	}

	cacheKey := fmt.Sprintf("summary:%s:%d:%d", kind, id, updatedAt.Unix())
	if s.redis != nil && s.redis.Client != nil {
		if cached, err := s.redis.Client.Get(ctx, cacheKey).Result(); err == nil {
			return cached, nil
		}
	}

	summary, err := s.complete(ctx, buildPrompt(kind, title, description, comments))
	if err != nil {
		return "", err
	}

	if s.redis != nil && s.redis.Client != nil {
		ttl := time.Duration(s.cfg.CacheTTLMinutes) * time.Minute
		if err := s.redis.Client.Set(ctx, cacheKey, summary, ttl).Err(); err != nil {
			s.logger.Warn("failed to cache summary", zap.Error(err))
		}
	}
	return summary, nil
}

func (s *SummaryService) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You summarize project-tracking items concisely in a few sentences."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewInternalError(fmt.Errorf("completion service returned %d", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if len(parsed.Choices) == 0 {
		return "", apperrors.NewInternalError(fmt.Errorf("completion service returned no choices"))
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func buildPrompt(kind, title, description string, comments []domain.Comment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize this %s.\n\nTitle: %s\n", kind, title)
	if description != "" {
		fmt.Fprintf(&b, "Description: %s\n", description)
	}
	if len(comments) > 0 {
		b.WriteString("\nComments:\n")
		for _, comment := range comments {
			fmt.Fprintf(&b, "- %s\n", comment.Content)
		}
	}
	return b.String()
}
