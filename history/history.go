package history

import (
	"context"
	"errors"
	"time"

	"youtube2mp3/config"
	"youtube2mp3/db_client"
	"youtube2mp3/model"
	"youtube2mp3/redis_client"
)

// Entry is one finished conversion as stored in the archive
type Entry struct {
	URL       string        `json:"url"`
	VideoID   string        `json:"video_id,omitempty"`
	OutputDir string        `json:"output_dir"`
	Playlist  bool          `json:"playlist"`
	Status    model.Status  `json:"status"`
	Error     string        `json:"error,omitempty"`
	Files     []string      `json:"files,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

// EntryFrom converts a job outcome into an archive entry
func EntryFrom(o model.Outcome) Entry {
	e := Entry{
		URL:       o.Job.URL,
		VideoID:   o.Job.VideoID,
		OutputDir: o.Job.OutputDir,
		Playlist:  o.Job.Playlist,
		Status:    o.Status,
		Files:     o.Files,
		StartedAt: o.StartedAt,
		Elapsed:   o.Elapsed,
	}
	if o.Err != nil {
		e.Error = o.Err.Error()
	}
	return e
}

// Store records finished conversions and answers whether a url was converted before
type Store interface {
	Archived(ctx context.Context, url string) (bool, error)
	Record(ctx context.Context, e Entry) error
	Close() error
}

// Nop is the store used when no archive backend is configured
type Nop struct{}

func (Nop) Archived(context.Context, string) (bool, error) { return false, nil }
func (Nop) Record(context.Context, Entry) error             { return nil }
func (Nop) Close() error                                    { return nil }

// Multi fans every call out to all of its stores
type Multi []Store

// Archived is true when any store has the url
func (m Multi) Archived(ctx context.Context, url string) (bool, error) {
	var errs []error
	for _, s := range m {
		ok, err := s.Archived(ctx, url)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			return true, nil
		}
	}
	return false, errors.Join(errs...)
}

func (m Multi) Record(ctx context.Context, e Entry) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Record(ctx, e))
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

// Open builds the store for the configured backends. Without any it returns Nop.
func Open(ctx context.Context, s config.Settings) (Store, error) {
	var stores Multi

	if s.RedisAddress != "" {
		rdb, err := redis_client.New(ctx, s.RedisAddress)
		if err != nil {
			return nil, err
		}
		stores = append(stores, NewRedisStore(rdb, time.Duration(s.HistoryTTL)*time.Second))
	}

	if s.DatabaseDSN != "" {
		db, err := db_client.Open(ctx, s.DatabaseDSN, s.DatabaseRetries)
		if err != nil {
			stores.Close()
			return nil, err
		}
		stores = append(stores, NewPostgresStore(db))
	}

	switch len(stores) {
	case 0:
		return Nop{}, nil
	case 1:
		return stores[0], nil
	}
	return stores, nil
}
