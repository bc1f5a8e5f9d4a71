// Package cache stores JSON encoded reference data in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	// ErrCache возвращается при ошибках обращения к redis
	ErrCache = errors.New("cache: redis error")

	// ErrEncode возвращается, если значение не удалось (де)сериализовать
	ErrEncode = errors.New("cache: encoding error")
)

// Redis кэш поверх go-redis с общим префиксом ключей и TTL
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Options параметры подключения
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Prefix   string
}

// NewRedis создает клиента и проверяет соединение
func NewRedis(ctx context.Context, opts Options) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrCache, opts.Addr, err)
	}

	return NewRedisWithClient(client, opts.Prefix, opts.TTL), nil
}

// NewRedisWithClient оборачивает уже созданного клиента
func NewRedisWithClient(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

// Get читает ключ в dest. Возвращает false, если ключа нет
func (r *Redis) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrCache, key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", ErrEncode, key, err)
	}
	return true, nil
}

// Set сохраняет значение с TTL
func (r *Redis) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrEncode, key, err)
	}

	if err := r.client.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCache, key, err)
	}
	return nil
}

// Delete удаляет ключи
func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = r.prefix + key
	}

	if err := r.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("%w: del %v: %v", ErrCache, keys, err)
	}
	return nil
}

// Close закрывает соединение
func (r *Redis) Close() error {
	return r.client.Close()
}

// Noop кэш-заглушка, когда redis выключен в конфиге
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, interface{}) error         { return nil }
func (Noop) Delete(context.Context, ...string) error                { return nil }
func (Noop) Close() error                                           { return nil }
