package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/paylane/paylane/internal/pkg/logger"
	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/internal/utils"
)

// Rank scores the user's active payment methods by blending each method's
// empirical success rate with the external probability signal for its type,
// and returns them best first. When the external service is unreachable the
// scorer degrades to a uniform distribution rather than failing.
func (uc *PaymentsUC) Rank(ctx context.Context, userID uuid.UUID) (*models.RankResult, error) {
	methods, err := uc.methodRepo.ListMethods(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	result := &models.RankResult{RankedAt: time.Now()}

	if len(methods) == 0 {
		result.Message = "No payment methods found for user"
		result.Ranked = []models.RankedMethod{}
		return result, nil
	}

	probs := uc.fetchProbs(ctx, result)

	weight := uc.cfg.Routing.SuccessRateWeight
	ranked := make([]models.RankedMethod, 0, len(methods))
	for _, method := range methods {
		score := method.SuccessRate()*weight + probs.For(method.Type)*(1-weight)
		ranked = append(ranked, models.RankedMethod{
			Method: method,
			Score:  utils.Round2(score * 100),
		})
	}

	// stable sort: ties keep the repository fetch order (newest first)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	result.Ranked = ranked
	result.BestMethod = ranked[0].Method

	return result, nil
}

// fetchProbs returns the external probability distribution, falling back to
// a uniform one in degraded mode
func (uc *PaymentsUC) fetchProbs(ctx context.Context, result *models.RankResult) models.RoutingProbs {
	prediction, err := uc.routingGW.GetPrediction(ctx)
	if err != nil {
		result.Degraded = true
		result.Message = "Routing service unavailable, using fallback scores"
		logger.Warn("Routing probability service unreachable, using uniform fallback",
			logger.Float64("fallback_prob", uc.cfg.Routing.FallbackProb),
			logger.Err(err),
		)
		return models.UniformRoutingProbs(uc.cfg.Routing.FallbackProb)
	}
	return prediction.Probs
}
