package postgres

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/halvora/transaction-service/internal/config"
	"github.com/halvora/transaction-service/internal/infrastructure/postgres/models"
)

func MustInitDB(cfg *config.TransactionConfig) *gorm.DB {
	dsn := cfg.TransactionDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.TransactionEventModel{}, &models.TransactionViewModel{}, &models.PaymentRequestInfoModel{})

	return db
}
