package database

import (
	"aiact_backend/internal/config"
	"aiact_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Company{},
		&model.UseCase{},
		&model.QuestionnaireSection{},
		&model.QuestionnaireQuestion{},
		&model.UseCaseResponse{},
		&model.AIModel{},
		&model.ScoreHistory{},
		&model.UseCaseCollaborator{},
		&model.ProofDocument{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedQuestionnaire(db); err != nil {
		return nil, err
	}
	if err := seedModels(db); err != nil {
		return nil, err
	}

	return db, nil
}
