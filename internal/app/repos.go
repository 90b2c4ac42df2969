package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/platform/logger"
	"github.com/yungbote/ccis-backend/internal/repos"
)

type Repos struct {
	Learner              repos.LearnerRepo
	LearnerToken         repos.LearnerTokenRepo
	LearnerEvent         repos.LearnerEventRepo
	Session              repos.SessionRepo
	CompetencyAssessment repos.CompetencyAssessmentRepo
	GamingIncident       repos.GamingIncidentRepo
	ScaffoldingState     repos.ScaffoldingStateRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Learner:              repos.NewLearnerRepo(db, log),
		LearnerToken:         repos.NewLearnerTokenRepo(db, log),
		LearnerEvent:         repos.NewLearnerEventRepo(db, log),
		Session:              repos.NewSessionRepo(db, log),
		CompetencyAssessment: repos.NewCompetencyAssessmentRepo(db, log),
		GamingIncident:       repos.NewGamingIncidentRepo(db, log),
		ScaffoldingState:     repos.NewScaffoldingStateRepo(db, log),
	}
}
