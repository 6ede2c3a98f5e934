package db

import (
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key is missing or expired.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient defines the key-value operations the dashboard caches rely on.
type RedisClient interface {
	Set(key, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Ping() error
}
