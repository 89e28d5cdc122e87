package service

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/repository"
	"aiact_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const modelScoreCacheTTL = time.Hour

// ModelScoreService derives a single capability score from a model's
// per-principle benchmark ratings. Each evaluated principle contributes
// its raw score weighted by 4/validCount, so partially evaluated models
// still scale to the same range; the sum is capped at the configured
// maximum. Unevaluated (null) principles are ignored, a model with no
// evaluated principle at all is reported unavailable rather than zero.
type ModelScoreService struct {
	Repo  *repository.AIModelRepository
	Redis *redis.Client
	Max   float64
}

func NewModelScoreService(repo *repository.AIModelRepository, rdb *redis.Client, max float64) *ModelScoreService {
	return &ModelScoreService{Repo: repo, Redis: rdb, Max: max}
}

func (s *ModelScoreService) CapabilityScore(modelID uint) (float64, error) {
	cacheKey := fmt.Sprintf("model_score:%d", modelID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(context.Background(), cacheKey).Result(); err == nil {
			if score, err := strconv.ParseFloat(cached, 64); err == nil {
				return score, nil
			}
		}
	}

	m, err := s.Repo.FindByID(modelID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, util.ErrModelNotFound
	}
	if err != nil {
		return 0, err
	}

	score, err := s.compute(m)
	if err != nil {
		return 0, err
	}

	if s.Redis != nil {
		s.Redis.Set(context.Background(), cacheKey, strconv.FormatFloat(score, 'f', -1, 64), modelScoreCacheTTL)
	}
	return score, nil
}

func (s *ModelScoreService) compute(m *model.AIModel) (float64, error) {
	scores, err := m.DecodePrincipleScores()
	if err != nil {
		return 0, fmt.Errorf("%w: model %s: %v", util.ErrModelScoreMissing, m.Slug, err)
	}

	var sum float64
	valid := 0
	for _, principle := range model.Principles {
		if v, ok := scores[principle]; ok && v != nil {
			sum += *v
			valid++
		}
	}
	if valid == 0 {
		return 0, fmt.Errorf("%w: model %s has no evaluated principle", util.ErrModelScoreMissing, m.Slug)
	}

	score := sum * (float64(len(model.Principles)) / float64(valid))
	if s.Max > 0 && score > s.Max {
		score = s.Max
	}
	return score, nil
}

// InvalidateCache drops the cached score after a model's ratings change.
func (s *ModelScoreService) InvalidateCache(modelID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), fmt.Sprintf("model_score:%d", modelID))
}
