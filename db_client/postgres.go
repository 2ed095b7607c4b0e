package db_client

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/Strum355/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed schema.sql
var schema string

// Open connects to postgres, retrying while the server starts, and applies the schema
func Open(ctx context.Context, dsn string, attempts int) (*gorm.DB, error) {
	if attempts < 1 {
		attempts = 1
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := range attempts {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err == nil {
			if err = ping(ctx, db); err == nil {
				break
			}
		}
		if i == attempts-1 {
			break
		}
		log.WithFields(log.Fields{"attempt": i + 1}).Info("Waiting for Postgres to be ready...")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := db.WithContext(ctx).Exec(schema).Error; err != nil {
		return nil, fmt.Errorf("unable to apply schema: %w", err)
	}
	return db, nil
}

// ping checks the pool behind db answers, closing it when it does not
func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return err
	}
	return nil
}
