package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	usersKey      = "bookshop:users"
	usersOrderKey = "bookshop:users:order"
)

// HSETNX + RPUSH in one script so the order list only ever records winners.
var insertUserScript = redis.NewScript(`
if redis.call("HSETNX", KEYS[1], ARGV[1], ARGV[2]) == 0 then
  return 0
end
redis.call("RPUSH", KEYS[2], ARGV[1])
return 1
`)

// RedisRepo stores users as JSON in a hash keyed by username, plus a list
// keeping registration order.
type RedisRepo struct {
	rdb *redis.Client
}

func NewRedisRepo(rdb *redis.Client) *RedisRepo {
	return &RedisRepo{rdb: rdb}
}

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (r *RedisRepo) Insert(ctx context.Context, u User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	inserted, err := insertUserScript.Run(ctx, r.rdb, []string{usersKey, usersOrderKey}, u.Username, b).Int()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if inserted == 0 {
		return ErrDuplicateUsername
	}
	return nil
}

func (r *RedisRepo) Get(ctx context.Context, username string) (User, error) {
	res, err := r.rdb.HGet(ctx, usersKey, username).Bytes()
	if errors.Is(err, redis.Nil) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	var u User
	if err := json.Unmarshal(res, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *RedisRepo) List(ctx context.Context) ([]User, error) {
	names, err := r.rdb.LRange(ctx, usersOrderKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []User{}, nil
	}
	vals, err := r.rdb.HMGet(ctx, usersKey, names...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]User, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var u User
		if err := json.Unmarshal([]byte(s), &u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
