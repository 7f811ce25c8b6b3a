// Package redisscript compiles, caches, and atomically executes Redis-side
// Lua scripts, and provides the non-blocking key enumeration primitive the
// windowed rate-limiting algorithms need for their Reset operation.
package redisscript

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"sync"

	"github.com/redis/go-redis/v9"
)

// scanBatchSize bounds each SCAN round-trip so a FindKeys call never blocks
// the single-threaded Redis event loop the way a KEYS sweep would.
const scanBatchSize = 100

// Script is a compiled, cacheable Lua script. Two Scripts built from
// identical source always wrap the same *redis.Script instance, so the
// EVALSHA fast path is shared across every Strategy that happens to embed
// the same .lua file.
type Script struct {
	inner *redis.Script
}

var scriptCache sync.Map // digest (string) -> *Script

// Compile returns the cached Script for src, compiling and caching it on
// first use. Concurrent first callers may both build a *Script, but
// LoadOrStore guarantees every caller observes the same instance afterward.
func Compile(src string) *Script {
	digest := digestOf(src)
	if cached, ok := scriptCache.Load(digest); ok {
		return cached.(*Script)
	}
	fresh := &Script{inner: redis.NewScript(src)}
	actual, _ := scriptCache.LoadOrStore(digest, fresh)
	return actual.(*Script)
}

func digestOf(src string) string {
	sum := sha1.Sum([]byte(src))
	return hex.EncodeToString(sum[:])
}

// Executor runs compiled Lua scripts against Redis and enumerates keys
// without ever issuing a blocking full-namespace sweep.
type Executor interface {
	// RunInts executes script and returns only the integer elements of its
	// reply, discarding any string elements. Use RunRaw instead when the
	// script also returns string-encoded floating point values.
	RunInts(ctx context.Context, script *Script, keys []string, args ...interface{}) ([]int64, error)

	// RunRaw executes script and returns its reply verbatim: each element is
	// either an int64 (a bare Lua number) or a string (anything the script
	// returned as a Lua string, such as a tostring()-encoded number).
	RunRaw(ctx context.Context, script *Script, keys []string, args ...interface{}) ([]interface{}, error)

	// DeleteKeys removes the given keys. A no-op if keys is empty.
	DeleteKeys(ctx context.Context, keys ...string) error

	// FindKeys returns every key matching pattern, gathered via repeated
	// cursor-based SCAN calls rather than a single KEYS sweep. The result is
	// unordered and may transiently contain duplicates under concurrent
	// mutation of the keyspace; callers must tolerate both.
	FindKeys(ctx context.Context, pattern string) ([]string, error)
}

// Client is the Executor backed by a real *redis.Client.
type Client struct {
	rdb *redis.Client
}

// New wraps rdb as an Executor.
func New(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

func (c *Client) RunRaw(ctx context.Context, script *Script, keys []string, args ...interface{}) ([]interface{}, error) {
	reply, err := script.inner.Run(ctx, c.rdb, keys, args...).Result()
	if err != nil {
		return nil, wrapStorageErr("eval", err)
	}
	values, ok := reply.([]interface{})
	if !ok {
		return nil, wrapStorageErr("eval", errUnexpectedReply)
	}
	return values, nil
}

func (c *Client) RunInts(ctx context.Context, script *Script, keys []string, args ...interface{}) ([]int64, error) {
	values, err := c.RunRaw(ctx, script, keys, args...)
	if err != nil {
		return nil, err
	}
	ints := make([]int64, 0, len(values))
	for _, v := range values {
		if n, ok := v.(int64); ok {
			ints = append(ints, n)
		}
	}
	return ints, nil
}

func (c *Client) DeleteKeys(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return wrapStorageErr("del", err)
	}
	return nil
}

func (c *Client) FindKeys(ctx context.Context, pattern string) ([]string, error) {
	seen := make(map[string]struct{})
	var cursor uint64
	for {
		var (
			batch []string
			err   error
		)
		batch, cursor, err = c.rdb.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return nil, wrapStorageErr("scan", err)
		}
		for _, key := range batch {
			seen[key] = struct{}{}
		}
		if cursor == 0 {
			break
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	return keys, nil
}
