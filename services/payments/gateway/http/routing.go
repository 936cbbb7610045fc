package http

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/paylane/paylane/internal/pkg/constants"
	"github.com/paylane/paylane/internal/pkg/database"
	pkghttp "github.com/paylane/paylane/internal/pkg/http"
	"github.com/paylane/paylane/internal/pkg/logger"
	"github.com/paylane/paylane/internal/pkg/models"
)

// RoutingClient fetches routing probability predictions from the external
// smart routing service, with a short-lived Redis cache in front so ranking
// requests do not hammer the upstream.
type RoutingClient struct {
	cfg    *models.Config
	client *pkghttp.Client
	cache  *database.RedisClient
}

// NewRoutingClient creates a new routing service client
func NewRoutingClient(cfg *models.Config, cache *database.RedisClient) *RoutingClient {
	timeout := time.Duration(cfg.Routing.TimeoutSeconds) * time.Second
	return &RoutingClient{
		cfg:    cfg,
		client: pkghttp.NewClient(cfg.Routing.ServiceURL, timeout),
		cache:  cache,
	}
}

// GetPrediction returns the current probability distribution over payment
// method types, served from cache when fresh
func (g *RoutingClient) GetPrediction(ctx context.Context) (*models.RoutingPrediction, error) {
	if cached := g.fromCache(ctx); cached != nil {
		return cached, nil
	}

	var prediction models.RoutingPrediction
	if err := g.client.PostJSON(ctx, "/", nil, &prediction); err != nil {
		return nil, fmt.Errorf("routing service request failed: %w", err)
	}

	g.storeCache(ctx, &prediction)

	return &prediction, nil
}

func (g *RoutingClient) fromCache(ctx context.Context) *models.RoutingPrediction {
	if g.cache == nil {
		return nil
	}

	raw, err := g.cache.Get(ctx, constants.KeyRoutingProbs)
	if err != nil {
		return nil
	}

	var prediction models.RoutingPrediction
	if err := json.Unmarshal([]byte(raw), &prediction); err != nil {
		logger.Warn("Discarding malformed cached routing prediction", logger.Err(err))
		return nil
	}
	return &prediction
}

func (g *RoutingClient) storeCache(ctx context.Context, prediction *models.RoutingPrediction) {
	if g.cache == nil || g.cfg.Routing.CacheTTLSeconds <= 0 {
		return
	}

	raw, err := json.Marshal(prediction)
	if err != nil {
		return
	}

	ttl := time.Duration(g.cfg.Routing.CacheTTLSeconds) * time.Second
	if err := g.cache.Set(ctx, constants.KeyRoutingProbs, raw, ttl); err != nil {
		logger.Warn("Failed to cache routing prediction", logger.Err(err))
	}
}
