package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/skillbridge/skillbridge/internal/core/events"
	"github.com/skillbridge/skillbridge/internal/skill"
	skillPostgres "github.com/skillbridge/skillbridge/internal/skill/postgres"
	"github.com/skillbridge/skillbridge/internal/skillgap"
	skillgapPostgres "github.com/skillbridge/skillbridge/internal/skillgap/postgres"

	assessmentPostgres "github.com/skillbridge/skillbridge/internal/assessment/postgres"
	"github.com/skillbridge/skillbridge/pkg/logger"
	"github.com/spf13/cobra"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rebuild training needs from stored assessments",
	Long:  `Re-evaluate every active assessment against the current benchmarks and criticality weights, rewriting training-need flags and records.`,
	Run: func(cmd *cobra.Command, args []string) {
		runRecompute()
	},
}

func runRecompute() {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	sqlDB, err := initDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}
	defer sqlDB.Close()

	gormDB, err := initGorm(sqlDB)
	if err != nil {
		log.Fatalf("failed to init orm: %v", err)
	}

	eventBus := events.NewEventBus(lg)

	skillRepo := skillPostgres.NewSkillRepository(gormDB)
	assessmentRepo := assessmentPostgres.NewAssessmentRepository(gormDB)
	needRepo := skillgapPostgres.NewTrainingNeedRepository(gormDB)

	skillService := skill.NewService(skillRepo, lg)
	skillgapService := skillgap.NewService(needRepo, assessmentRepo, skillService, eventBus, lg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	processed, err := skillgapService.RecomputeAll(ctx)
	if err != nil {
		log.Fatalf("recompute failed after %d assessments: %v", processed, err)
	}

	fmt.Printf("Recomputed training needs for %d assessments in %s\n", processed, time.Since(start).Round(time.Millisecond))
}
