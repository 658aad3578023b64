package redis

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

// Store keeps bridge state in redis. Every key is stored under namespace so
// several bridges can share one redis database.
type Store struct {
	pool      *redis.Pool
	namespace string
}

func timeoutDialOptions(db int, password string) []redis.DialOption {
	opts := []redis.DialOption{
		redis.DialConnectTimeout(5 * time.Second),
		redis.DialReadTimeout(5 * time.Second),
		redis.DialWriteTimeout(5 * time.Second),
		redis.DialDatabase(db),
	}
	if password != "" {
		opts = append(opts, redis.DialPassword(password))
	}
	return opts
}

func New(host string, port int, db int, password string, namespace string) *Store {
	redisAddr := fmt.Sprintf("%s:%d", host, port)
	return &Store{
		pool: &redis.Pool{
			MaxIdle:     5,
			IdleTimeout: 240 * time.Second,
			Dial: func() (redis.Conn, error) {
				return redis.Dial("tcp", redisAddr, timeoutDialOptions(db, password)...)
			},
		},
		namespace: namespace,
	}
}

// NewWithPool wraps an existing pool, mostly useful in tests.
func NewWithPool(pool *redis.Pool, namespace string) *Store {
	return &Store{pool: pool, namespace: namespace}
}

func (s *Store) key(k string) string {
	if s.namespace == "" {
		return k
	}
	return s.namespace + ":" + k
}

func (s *Store) unkey(k string) string {
	if s.namespace == "" {
		return k
	}
	return strings.TrimPrefix(k, s.namespace+":")
}

func (s *Store) Ping() error {
	conn := s.pool.Get()
	defer conn.Close()

	_, err := conn.Do("PING")
	return err
}

func (s *Store) Close() error {
	return s.pool.Close()
}

func (s *Store) Get(key string) ([]byte, error) {
	conn := s.pool.Get()
	defer conn.Close()

	value, err := redis.Bytes(conn.Do("GET", s.key(key)))
	if err == nil {
		return value, nil
	}

	if errors.Is(err, redis.ErrNil) {
		return nil, nil
	}

	zap.L().Error("redis GET failed", zap.String("key", key), zap.Error(err))
	return nil, err
}

func (s *Store) Has(key string) (bool, error) {
	conn := s.pool.Get()
	defer conn.Close()

	exists, err := redis.Bool(conn.Do("EXISTS", s.key(key)))
	if err != nil {
		zap.L().Error("redis EXISTS failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (s *Store) Set(key string, value []byte) error {
	conn := s.pool.Get()
	defer conn.Close()

	_, err := conn.Do("SET", s.key(key), value)
	if err != nil {
		zap.L().Error("redis SET failed", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

func (s *Store) Delete(key string) error {
	conn := s.pool.Get()
	defer conn.Close()

	_, err := conn.Do("DEL", s.key(key))
	if err != nil {
		zap.L().Error("redis DEL failed", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

// Keys scans every key under prefix. SCAN may return a key more than once,
// duplicates are dropped.
func (s *Store) Keys(prefix string) ([]string, error) {
	conn := s.pool.Get()
	defer conn.Close()

	pattern := escapeGlob(s.key(prefix)) + "*"
	seen := make(map[string]struct{})
	var cursor int64

	for {
		values, err := redis.Values(conn.Do("SCAN", cursor, "MATCH", pattern, "COUNT", 100))
		if err != nil {
			return nil, err
		}

		var keys []string
		_, err = redis.Scan(values, &cursor, &keys)
		if err != nil {
			return nil, err
		}

		for _, k := range keys {
			seen[s.unkey(k)] = struct{}{}
		}

		if cursor == 0 {
			break
		}
	}

	result := make([]string, 0, len(seen))
	for k := range seen {
		result = append(result, k)
	}
	sort.Strings(result)
	return result, nil
}

// Commit applies writes and deletes in one MULTI/EXEC transaction.
func (s *Store) Commit(writes map[string][]byte, deletes []string) error {
	conn := s.pool.Get()
	defer conn.Close()

	if err := conn.Send("MULTI"); err != nil {
		return err
	}
	for _, k := range deletes {
		if err := conn.Send("DEL", s.key(k)); err != nil {
			return err
		}
	}
	for k, v := range writes {
		if err := conn.Send("SET", s.key(k), v); err != nil {
			return err
		}
	}

	_, err := conn.Do("EXEC")
	if err != nil {
		zap.L().Error("redis EXEC failed", zap.Int("writes", len(writes)), zap.Int("deletes", len(deletes)), zap.Error(err))
		return err
	}

	return nil
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
