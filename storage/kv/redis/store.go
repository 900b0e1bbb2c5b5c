// Package rediskv backs the KeyValueStore contract with redis. Each
// collection blob lives under its own key; last writer wins in full, per the
// store's persistence contract.
package rediskv

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Axioms-Product/axiom-school-sub000/core"
)

type Store struct {
	client *redis.Client
}

var _ core.KeyValueStore = (*Store)(nil)

func Open(conf core.StorageConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.RedisAddr,
		Password: conf.RedisPassword,
		DB:       conf.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "connecting to redis")
	}
	return &Store{client: client}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", core.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "getting %q", key)
	}
	return val, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return errors.Wrapf(s.client.Set(ctx, key, value, 0).Err(), "setting %q", key)
}

func (s *Store) Close() error {
	return s.client.Close()
}
