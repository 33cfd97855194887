package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/timesheet/internal/logging"
	"github.com/balkashynov/timesheet/internal/models"
)

// Store keeps the whole application state as one JSON blob in sqlite.
// Every mutation is a load/apply/save cycle under a single lock, so the
// one-open-session-per-job invariant holds even with concurrent callers.
type Store struct {
	mu    sync.Mutex
	db    *gorm.DB
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for store events
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the uuid generator, mostly for tests
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// Open sets up the database connection and runs migrations
func Open(dbPath string, opts ...Option) (*Store, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.AutoMigrate(&models.StateBlob{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &Store{
		db:    conn,
		log:   slog.Default(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logging.FieldComponent, logging.ComponentStore)
	s.log.Debug("database opened", logging.FieldPath, dbPath)

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Now returns the store's current time
func (s *Store) Now() time.Time {
	return s.now()
}

// Load returns a fresh copy of the persisted state
func (s *Store) Load(ctx context.Context) (*models.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Mutate loads the state, applies fn and saves the result. When fn returns an
// error nothing is saved, so a failed operation never leaves partial changes.
func (s *Store) Mutate(ctx context.Context, fn func(*models.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	return s.save(ctx, state)
}

func (s *Store) load(ctx context.Context) (*models.State, error) {
	var blob models.StateBlob
	err := s.db.WithContext(ctx).First(&blob, "blob_key = ?", models.StateKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	state, err := models.DecodeState([]byte(blob.Data), s.now())
	if err != nil {
		// A corrupt blob is never fatal; the next save replaces it.
		s.log.Warn("stored state is malformed, starting empty", logging.FieldError, err)
		return models.NewState(), nil
	}
	return state, nil
}

func (s *Store) save(ctx context.Context, state *models.State) error {
	data, err := models.EncodeState(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	blob := models.StateBlob{Key: models.StateKey, Data: string(data)}
	if err := s.db.WithContext(ctx).Save(&blob).Error; err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	s.log.Debug("state saved", "jobs", len(state.Jobs), "sessions", len(state.Sessions))
	return nil
}

// Import replaces the stored state with a blob in the storage format, such as
// one written by Dump. Unlike Load it refuses malformed input instead of
// starting empty.
func (s *Store) Import(ctx context.Context, data []byte) (*models.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := models.DecodeState(data, s.now())
	if err != nil {
		return nil, invalid("state", "cannot parse: %v", err)
	}
	if err := state.CheckActiveIndex(); err != nil {
		return nil, invalid("state", "inconsistent: %v", err)
	}
	if err := s.save(ctx, state); err != nil {
		return nil, err
	}
	s.log.Info("state imported", "jobs", len(state.Jobs), "sessions", len(state.Sessions))
	return state, nil
}

// Dump returns the stored state in the storage format
func (s *Store) Dump(ctx context.Context) ([]byte, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return models.EncodeState(state)
}
