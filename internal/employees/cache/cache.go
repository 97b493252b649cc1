package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

const (
	employeeListKey = "shiftboard:employees:list" // JSON array of the full staff register
	defaultTTL      = 5 * time.Minute
)

// EmployeeCache keeps the serialized employee list in Redis.
type EmployeeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEmployeeCache creates a cache whose entries expire after ttl.
func NewEmployeeCache(client *redis.Client, ttl time.Duration) *EmployeeCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &EmployeeCache{client: client, ttl: ttl}
}

// Get returns the cached list. The boolean is false on a miss.
func (c *EmployeeCache) Get(ctx context.Context) ([]domain.Employee, bool, error) {
	data, err := c.client.Get(ctx, employeeListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read employee cache: %w", err)
	}

	var out []domain.Employee
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal employee cache: %w", err)
	}
	return out, true, nil
}

// Set stores the list, replacing any previous entry.
func (c *EmployeeCache) Set(ctx context.Context, list []domain.Employee) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal employees: %w", err)
	}
	if err := c.client.Set(ctx, employeeListKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write employee cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached list.
func (c *EmployeeCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, employeeListKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate employee cache: %w", err)
	}
	return nil
}
