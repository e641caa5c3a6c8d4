// Package redis provides the Redis client behind the redis credential store.
//
// It wraps go-redis with the project logger, key prefixing, JSON helpers and
// component lifecycle (Start/Stop/Health):
//
//	c := redis.NewComponent(redis.Config{Addr: "localhost:6379", KeyPrefix: "labauth"}, log)
//	if err := c.Start(ctx); err != nil { ... }
//	created, err := c.Client().SetNXJSON(ctx, c.Client().Key("identity", "alice"), rec, 0)
package redis
