package redisstore

import (
	"context"
	"log/slog"
	"time"

	"semlog/app/config"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/samber/oops"
)

var _ do.Shutdownable = (*Client)(nil)

const timeout = 5 * time.Second

// Client stores episode documents under <prefix><episode> and adds the
// episode to the <prefix>index set.
type Client struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// New returns nil, nil when no address is configured.
func New(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di).Storage.Redis
	if cfg.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	return NewClient(rdb, cfg.Prefix, time.Duration(cfg.TTLHours)*time.Hour), nil
}

func NewClient(rdb *redis.Client, prefix string, ttl time.Duration) *Client {
	return &Client{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *Client) Key(episodeID string) string {
	return c.prefix + episodeID
}

func (c *Client) IndexKey() string {
	return c.prefix + "index"
}

func (c *Client) Write(episodeID, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	key := c.Key(episodeID)

	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, key, text, c.ttl)
	pipe.SAdd(ctx, c.IndexKey(), episodeID)
	if _, err := pipe.Exec(ctx); err != nil {
		return oops.In("redisstore").With("key", key).Wrapf(err, "failed to store episode document")
	}

	slog.Info("Episode document stored", "key", key)

	return nil
}

// Read returns a stored episode document.
func (c *Client) Read(ctx context.Context, episodeID string) (string, error) {
	text, err := c.rdb.Get(ctx, c.Key(episodeID)).Result()
	if err != nil {
		return "", oops.In("redisstore").With("episode", episodeID).Wrapf(err, "failed to read episode document")
	}
	return text, nil
}

func (c *Client) Shutdown() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
