package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/apper-canvas/stylehub-port-matrix/pkg/config"
	pkgerrors "github.com/apper-canvas/stylehub-port-matrix/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace     = "stylehub"
	collectionPrefix = "collection"
	counterPrefix    = "counter"
)

// RedisStore keeps each collection as one serialized blob and uses native
// INCR for identity counters. This is the "remote record storage" binding:
// the service treats it as an opaque key/value collaborator.
type RedisStore struct {
	raw *redis.Client
}

// NewRedis bootstraps a redis-backed store and verifies connectivity.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func (s *RedisStore) Load(ctx context.Context, collection string, out any) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	raw, err := s.raw.Get(ctx, buildKey(collectionPrefix, collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		raw = emptyCollection
	} else if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load collection "+collection)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode collection "+collection)
	}
	return nil
}

func (s *RedisStore) Save(ctx context.Context, collection string, records any) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encode collection "+collection)
	}
	if err := s.raw.Set(ctx, buildKey(collectionPrefix, collection), raw, 0).Err(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "save collection "+collection)
	}
	return nil
}

func (s *RedisStore) NextID(ctx context.Context, collection string) (int64, error) {
	if err := validateCollection(collection); err != nil {
		return 0, err
	}
	next, err := s.raw.Incr(ctx, buildKey(counterPrefix, collection)).Result()
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "allocate id for "+collection)
	}
	return next, nil
}

func (s *RedisStore) AdvanceCounter(ctx context.Context, collection string, to int64) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	key := buildKey(counterPrefix, collection)
	current, err := s.raw.Get(ctx, key).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read counter for "+collection)
	}
	if current >= to {
		return nil
	}
	if err := s.raw.Set(ctx, key, to, 0).Err(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "advance counter for "+collection)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.raw.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.raw.Close()
}

func buildKey(parts ...string) string {
	clean := []string{keyNamespace}
	for _, part := range parts {
		if part == "" {
			continue
		}
		clean = append(clean, strings.TrimSpace(part))
	}
	return strings.Join(clean, ":")
}
