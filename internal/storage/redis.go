package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smart-resume-analyzer/internal/config"
	"smart-resume-analyzer/internal/constants"
	"smart-resume-analyzer/internal/types"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound 缓存未命中
var ErrNotFound = redis.Nil

// Redis 简历抽取结果缓存，按文件 MD5 复用
type Redis struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedisAdapter 创建 Redis 客户端并挂上 OpenTelemetry 钩子
func NewRedisAdapter(ctx context.Context, cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})

	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("failed to instrument Redis with OpenTelemetry: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return NewRedisWithClient(client, cfg.ExtractionTTL()), nil
}

// NewRedisWithClient 使用已有客户端
func NewRedisWithClient(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{Client: client, ttl: ttl}
}

// Close closes the Redis client connection
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// GetExtraction 读取缓存的抽取结果，未命中返回 ErrNotFound
func (r *Redis) GetExtraction(ctx context.Context, nlpModel, fileMD5 string) (*types.ExtractedResume, error) {
	val, err := r.Client.Get(ctx, constants.ExtractionCacheKey(nlpModel, fileMD5)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("读取抽取缓存失败: %w", err)
	}

	var resume types.ExtractedResume
	if err := json.Unmarshal(val, &resume); err != nil {
		return nil, fmt.Errorf("解析抽取缓存失败: %w", err)
	}
	if resume.Skills == nil {
		resume.Skills = []string{}
	}
	return &resume, nil
}

// SetExtraction 写入抽取结果
func (r *Redis) SetExtraction(ctx context.Context, nlpModel, fileMD5 string, resume *types.ExtractedResume) error {
	data, err := json.Marshal(resume)
	if err != nil {
		return fmt.Errorf("序列化抽取结果失败: %w", err)
	}
	if err := r.Client.Set(ctx, constants.ExtractionCacheKey(nlpModel, fileMD5), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("写入抽取缓存失败: %w", err)
	}
	return nil
}
