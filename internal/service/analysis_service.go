package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/datachat-gateway/internal/config"
	"github.com/spec-kit/datachat-gateway/internal/persistence"
	apperrors "github.com/spec-kit/datachat-gateway/pkg/util"
)

// Analysis operations the gateway is willing to forward.
var analysisOps = map[string]bool{
	"load_dataset":     true,
	"preprocess_data":  true,
	"detect_anomalies": true,
	"plot_anomalies":   true,
}

// AnalysisResult is an upstream response ready to relay to the client.
type AnalysisResult struct {
	Status      int
	ContentType string
	Body        []byte
	Cached      bool
}

// AnalysisService forwards requests to the external analysis backend. The
// backend is opaque: bodies pass through untouched. Successful results for
// the pure operations are cached in Redis keyed by a body hash; load_dataset
// mutates upstream state and is never cached.
type AnalysisService struct {
	baseURL  string
	client   *http.Client
	cache    *persistence.Redis
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAnalysisService builds the proxy.
func NewAnalysisService(cfg config.AnalysisConfig, cache *persistence.Redis, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		baseURL:  cfg.BaseURL,
		client:   &http.Client{Timeout: cfg.Timeout()},
		cache:    cache,
		cacheTTL: cfg.CacheTTL(),
		logger:   logger,
	}
}

// Forward relays one analysis operation upstream and returns the raw result.
func (s *AnalysisService) Forward(ctx context.Context, op, contentType string, body []byte) (*AnalysisResult, error) {
	if !analysisOps[op] {
		return nil, apperrors.NewNotFound("analysis operation", map[string]any{"op": op})
	}

	cacheable := op != "load_dataset" && s.cacheTTL > 0
	key := analysisCacheKey(op, body)

	if cacheable {
		if cached, err := s.cache.Client.Get(ctx, key).Bytes(); err == nil {
			return &AnalysisResult{
				Status:      http.StatusOK,
				ContentType: "application/json",
				Body:        cached,
				Cached:      true,
			}, nil
		}
	}

	target, err := url.JoinPath(s.baseURL, op)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.NewBadGateway("analysis backend unavailable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewBadGateway("analysis backend response unreadable", err)
	}

	if cacheable && resp.StatusCode == http.StatusOK {
		if err := s.cache.Client.Set(ctx, key, respBody, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("analysis cache write failed", zap.Error(err))
		}
	}

	return &AnalysisResult{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}

func analysisCacheKey(op string, body []byte) string {
	sum := sha256.Sum256(body)
	return fmt.Sprintf("analysis:%s:%s", op, hex.EncodeToString(sum[:]))
}
