package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/apper-canvas/stylehub-port-matrix/pkg/config"
	pkgerrors "github.com/apper-canvas/stylehub-port-matrix/pkg/errors"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type collectionRow struct {
	Name      string `gorm:"primaryKey;size:64"`
	Payload   []byte
	NextID    int64
	UpdatedAt time.Time
}

func (collectionRow) TableName() string { return "collections" }

// GormStore keeps one row per collection holding the serialized payload and
// the identity counter. Backed by sqlite for local runs or postgres.
type GormStore struct {
	conn *gorm.DB
}

// NewGorm boots a database-backed store using the provided configuration.
func NewGorm(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*GormStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}

	silent := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 silent,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := conn.WithContext(ctx).AutoMigrate(&collectionRow{}); err != nil {
		return nil, fmt.Errorf("migrating collections table: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "database store ready")
	}
	return &GormStore{conn: conn}, nil
}

func (s *GormStore) Load(ctx context.Context, collection string, out any) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	var row collectionRow
	err := s.conn.WithContext(ctx).First(&row, "name = ?", collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row.Payload = emptyCollection
	} else if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load collection "+collection)
	}
	if len(row.Payload) == 0 {
		row.Payload = emptyCollection
	}
	if err := json.Unmarshal(row.Payload, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode collection "+collection)
	}
	return nil
}

func (s *GormStore) Save(ctx context.Context, collection string, records any) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encode collection "+collection)
	}
	err = s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&collectionRow{Name: collection, Payload: raw, UpdatedAt: time.Now().UTC()}).
		Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "save collection "+collection)
	}
	return nil
}

func (s *GormStore) NextID(ctx context.Context, collection string) (int64, error) {
	if err := validateCollection(collection); err != nil {
		return 0, err
	}
	var next int64
	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row collectionRow
		err := tx.First(&row, "name = ?", collection).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = collectionRow{Name: collection, Payload: emptyCollection}
		} else if err != nil {
			return err
		}
		row.NextID++
		row.UpdatedAt = time.Now().UTC()
		next = row.NextID
		return tx.Save(&row).Error
	})
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "allocate id for "+collection)
	}
	return next, nil
}

func (s *GormStore) AdvanceCounter(ctx context.Context, collection string, to int64) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row collectionRow
		err := tx.First(&row, "name = ?", collection).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = collectionRow{Name: collection, Payload: emptyCollection}
		} else if err != nil {
			return err
		}
		if row.NextID >= to {
			return nil
		}
		row.NextID = to
		row.UpdatedAt = time.Now().UTC()
		return tx.Save(&row).Error
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "advance counter for "+collection)
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
