package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"youtube2mp3/model"

	"gorm.io/gorm"
)

// Conversion is a row of the conversions table
type Conversion struct {
	ID        uint `gorm:"primaryKey"`
	URL       string
	VideoID   string
	OutputDir string
	Playlist  bool
	Status    string
	Error     string
	Files     string // newline separated
	StartedAt time.Time
	ElapsedMs int64
}

func (Conversion) TableName() string {
	return "conversions"
}

func conversionFrom(e Entry) Conversion {
	return Conversion{
		URL:       e.URL,
		VideoID:   e.VideoID,
		OutputDir: e.OutputDir,
		Playlist:  e.Playlist,
		Status:    string(e.Status),
		Error:     e.Error,
		Files:     strings.Join(e.Files, "\n"),
		StartedAt: e.StartedAt,
		ElapsedMs: e.Elapsed.Milliseconds(),
	}
}

// PostgresStore logs every finished conversion, failed ones included
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Archived(ctx context.Context, url string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&Conversion{}).
		Where("url = ? AND status = ?", url, string(model.StatusSucceeded)).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("checking postgres archive: %w", err)
	}
	return n > 0, nil
}

func (s *PostgresStore) Record(ctx context.Context, e Entry) error {
	row := conversionFrom(e)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("writing postgres archive: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
