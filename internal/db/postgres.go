package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/types"
	"github.com/wellnest-app/wellnest-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	//1) Get and Set Environment Variables
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "wellnest", log)

	//2) Construct DSN From Environment Variables
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	//3) Attempt DB Connection
	log.Info("Attempting to connect to Postgres DB now...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres DB", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres DB: %w", err)
	}
	serviceLog.Info("Successfully connected to Postgres DB")

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Starting AutoMigrateAll for all GORM models now...")

	err := s.db.AutoMigrate(
		&types.ChatSession{},
		&types.ChatMessage{},
		&types.ArchivedChat{},
		&types.ChatSummary{},
		&types.CheckIn{},
		&types.MedicalProfile{},
		&types.HealthCondition{},
		&types.Medication{},
	)
	if err != nil {
		s.log.Error("AutoMigrateAll failed", "error", err)
		return err
	}

	// Sub-sequences of the medical profile cascade with their profile.
	// Chat tables are keyed by the client-generated (session_id, user_id)
	// pair rather than a uuid FK, so no constraints are added there.
	if err := s.db.Exec(`
		ALTER TABLE "health_condition"
		DROP CONSTRAINT IF EXISTS "fk_health_condition_profile_id",
		ADD CONSTRAINT "fk_health_condition_profile_id"
		FOREIGN KEY ("profile_id")
		REFERENCES "medical_profile"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_health_condition_profile_id: %w", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "medication"
		DROP CONSTRAINT IF EXISTS "fk_medication_profile_id",
		ADD CONSTRAINT "fk_medication_profile_id"
		FOREIGN KEY ("profile_id")
		REFERENCES "medical_profile"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_medication_profile_id: %w", err)
	}

	s.log.Info("AutoMigrateAll completed successfully")
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
