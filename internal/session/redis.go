// Package session keeps short-lived per-session state in Redis: the latest
// triage result for a chat session and a sliding quota for AI-backed calls.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/healthmate/healthmate/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	analysisTTL     = 24 * time.Hour
	rateLimitWindow = time.Hour
)

// RedisManager implements domain.SessionState on a Redis client.
type RedisManager struct {
	client    *redis.Client
	rateLimit int
}

// NewRedisManager connects to Redis and verifies the connection.
func NewRedisManager(host, port string, rateLimit int) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client, rateLimit: rateLimit}, nil
}

// SetLatestAnalysis caches the most recent triage result for a session.
// Entries expire after 24 hours so abandoned sessions clean themselves up.
func (m *RedisManager) SetLatestAnalysis(ctx context.Context, sessionID string, result *domain.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	key := fmt.Sprintf("session:%s:analysis", sessionID)
	return m.client.Set(ctx, key, data, analysisTTL).Err()
}

// GetLatestAnalysis returns the cached triage result for a session, or nil
// when none is cached.
func (m *RedisManager) GetLatestAnalysis(ctx context.Context, sessionID string) (*domain.AnalysisResult, error) {
	key := fmt.Sprintf("session:%s:analysis", sessionID)
	data, err := m.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached analysis: %w", err)
	}
	return &result, nil
}

// AllowAICall increments the caller's hourly counter and reports whether the
// call is within quota.
func (m *RedisManager) AllowAICall(ctx context.Context, callerKey string) (bool, error) {
	if m.rateLimit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("quota:%s:ai", callerKey)
	count, err := m.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		m.client.Expire(ctx, key, rateLimitWindow)
	}
	return count <= int64(m.rateLimit), nil
}

// Close closes the Redis connection.
func (m *RedisManager) Close() error {
	return m.client.Close()
}
