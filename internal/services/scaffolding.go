package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/ccis"
	domainassessment "github.com/yungbote/ccis-backend/internal/domain/assessment"
	"github.com/yungbote/ccis-backend/internal/gaming"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
	"github.com/yungbote/ccis-backend/internal/repos"
	"github.com/yungbote/ccis-backend/internal/scaffolding"
)

const scaffoldingCacheTTL = 10 * time.Minute

type ScaffoldingService interface {
	CurrentConfig(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType) (*domainassessment.ScaffoldingState, error)
	Optimize(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType, perf scaffolding.Performance) (*scaffolding.OptimizationResult, error)
	AdjustForGaming(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType, analysis gaming.AnalysisResult) (*scaffolding.Adjustment, error)
	OptimizeForAdvancement(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType, perf scaffolding.Performance, target ccis.Level) (*scaffolding.AdvancementResult, error)
	InvalidateCache(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType)
}

type scaffoldingService struct {
	db          *gorm.DB
	log         *logger.Logger
	learnerRepo repos.LearnerRepo
	stateRepo   repos.ScaffoldingStateRepo
	rdb         *goredis.Client
}

func NewScaffoldingService(
	db *gorm.DB,
	log *logger.Logger,
	learnerRepo repos.LearnerRepo,
	stateRepo repos.ScaffoldingStateRepo,
	rdb *goredis.Client,
) ScaffoldingService {
	serviceLog := log.With("service", "ScaffoldingService")
	return &scaffoldingService{
		db:          db,
		log:         serviceLog,
		learnerRepo: learnerRepo,
		stateRepo:   stateRepo,
		rdb:         rdb,
	}
}

func scaffoldingCacheKey(learnerID uuid.UUID, competency ccis.CompetencyType) string {
	return fmt.Sprintf("scaffolding:%s:%s", learnerID.String(), competency)
}

// CurrentConfig reads through the cache: redis first, then the state row.
func (s *scaffoldingService) CurrentConfig(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType) (*domainassessment.ScaffoldingState, error) {
	key := scaffoldingCacheKey(learnerID, competency)

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var state domainassessment.ScaffoldingState
			if err := json.Unmarshal(raw, &state); err == nil {
				return &state, nil
			}
		}
	}

	state, err := s.stateRepo.GetByLearnerAndCompetency(ctx, nil, learnerID, string(competency))
	if err != nil {
		return nil, err
	}
	s.cacheState(ctx, key, state)
	return state, nil
}

// Optimize runs the full adjustment pipeline against the learner's cultural
// context and persists the outcome as the current configuration.
func (s *scaffoldingService) Optimize(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType, perf scaffolding.Performance) (*scaffolding.OptimizationResult, error) {
	culture, err := s.cultureFor(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	prev := s.previousConfig(ctx, learnerID, competency)
	result, err := scaffolding.CalculateOptimal(perf, culture, prev)
	if err != nil {
		return nil, err
	}

	if err := s.persistState(ctx, learnerID, competency, int(perf.CurrentLevel), result.Config, domainassessment.ScaffoldingSourceOptimized); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *scaffoldingService) AdjustForGaming(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType, analysis gaming.AnalysisResult) (*scaffolding.Adjustment, error) {
	state, err := s.CurrentConfig(ctx, learnerID, competency)
	if err != nil {
		return nil, err
	}

	var cfg scaffolding.Config
	if err := json.Unmarshal(state.Config, &cfg); err != nil {
		return nil, fmt.Errorf("decode scaffolding config: %w", err)
	}

	adj := scaffolding.AdjustForGaming(cfg, analysis)
	if adj.Changed {
		if err := s.persistState(ctx, learnerID, competency, state.Level, adj.Config, domainassessment.ScaffoldingSourceGaming); err != nil {
			return nil, err
		}
	}
	return &adj, nil
}

func (s *scaffoldingService) OptimizeForAdvancement(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType, perf scaffolding.Performance, target ccis.Level) (*scaffolding.AdvancementResult, error) {
	state, err := s.CurrentConfig(ctx, learnerID, competency)
	if err != nil {
		// No prior state: start from the level baseline.
		cfg, ok := scaffolding.BaselineForLevel(perf.CurrentLevel)
		if !ok {
			return nil, fmt.Errorf("%w: no baseline for level %d", pkgerrors.ErrBusinessRule, perf.CurrentLevel)
		}
		res, aerr := scaffolding.OptimizeForAdvancement(perf, cfg, target)
		if aerr != nil {
			return nil, aerr
		}
		if err := s.persistState(ctx, learnerID, competency, int(perf.CurrentLevel), res.Config, domainassessment.ScaffoldingSourceAdvancement); err != nil {
			return nil, err
		}
		return &res, nil
	}

	var cfg scaffolding.Config
	if err := json.Unmarshal(state.Config, &cfg); err != nil {
		return nil, fmt.Errorf("decode scaffolding config: %w", err)
	}

	res, err := scaffolding.OptimizeForAdvancement(perf, cfg, target)
	if err != nil {
		return nil, err
	}
	if err := s.persistState(ctx, learnerID, competency, int(perf.CurrentLevel), res.Config, domainassessment.ScaffoldingSourceAdvancement); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *scaffoldingService) InvalidateCache(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, scaffoldingCacheKey(learnerID, competency)).Err(); err != nil {
		s.log.Warn("failed to invalidate scaffolding cache", "error", err)
	}
}

func (s *scaffoldingService) cultureFor(ctx context.Context, learnerID uuid.UUID) (scaffolding.CulturalContext, error) {
	ls, err := s.learnerRepo.GetByIDs(ctx, nil, []uuid.UUID{learnerID})
	if err != nil {
		return scaffolding.CulturalContext{}, fmt.Errorf("load learner: %w", err)
	}
	if len(ls) == 0 {
		return scaffolding.CulturalContext{}, fmt.Errorf("%w: learner %s", pkgerrors.ErrNotFound, learnerID)
	}
	return scaffolding.CulturalContext{
		Region:   scaffolding.Region(ls[0].Region),
		Language: ls[0].Language,
	}, nil
}

func (s *scaffoldingService) previousConfig(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType) *scaffolding.Config {
	state, err := s.stateRepo.GetByLearnerAndCompetency(ctx, nil, learnerID, string(competency))
	if err != nil {
		return nil
	}
	var cfg scaffolding.Config
	if err := json.Unmarshal(state.Config, &cfg); err != nil {
		return nil
	}
	return &cfg
}

func (s *scaffoldingService) persistState(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType, level int, cfg scaffolding.Config, source string) error {
	state := &domainassessment.ScaffoldingState{
		ID:             uuid.New(),
		LearnerID:      learnerID,
		CompetencyType: string(competency),
		Level:          level,
		Config:         mustJSON(cfg),
		Source:         source,
		AppliedAt:      time.Now().UTC(),
	}
	if _, err := s.stateRepo.Upsert(ctx, nil, state); err != nil {
		return fmt.Errorf("persist scaffolding state: %w", err)
	}
	s.cacheState(ctx, scaffoldingCacheKey(learnerID, competency), state)
	return nil
}

func (s *scaffoldingService) cacheState(ctx context.Context, key string, state *domainassessment.ScaffoldingState) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, scaffoldingCacheTTL).Err(); err != nil {
		s.log.Warn("failed to cache scaffolding state", "error", err)
	}
}
