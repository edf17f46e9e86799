package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	"smart-resume-analyzer/internal/config"
	"smart-resume-analyzer/internal/logger"
)

// Storage 存储管理器，聚合所有存储相关依赖。MySQL 必需，其余按配置启用
type Storage struct {
	// 关系型数据库，分析结果表
	MySQL *MySQL

	// 对象存储，原始简历归档
	MinIO *MinIO

	// 键值存储，抽取结果缓存
	Redis *Redis

	// 消息队列，分析完成事件
	RabbitMQ *RabbitMQ
}

// NewStorage 创建存储管理器。MySQL 失败直接返回错误，可选组件失败只记录警告
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	s := &Storage{}
	var err error

	s.MySQL, err = NewMySQL(&cfg.MySQL)
	if err != nil {
		return nil, fmt.Errorf("初始化MySQL失败: %w", err)
	}

	if cfg.MinIO.Endpoint != "" {
		var minioLogger *log.Logger
		if cfg.Logger.Level == "debug" {
			minioLogger = log.New(logger.Logger, "[MinIOStorage] ", log.LstdFlags)
		} else {
			minioLogger = log.New(io.Discard, "", 0)
		}
		s.MinIO, err = NewMinIO(ctx, &cfg.MinIO, minioLogger)
		if err != nil {
			logger.Warn().Err(err).Str("endpoint", cfg.MinIO.Endpoint).Msg("初始化MinIO失败, 不归档上传文件")
			s.MinIO = nil
		}
	}

	if cfg.Redis.Address != "" {
		s.Redis, err = NewRedisAdapter(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("初始化Redis失败, 不缓存抽取结果")
			s.Redis = nil
		}
	}

	if cfg.RabbitMQ.URL != "" {
		s.RabbitMQ, err = NewRabbitMQ(&cfg.RabbitMQ)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化RabbitMQ失败, 不发布分析事件")
			s.RabbitMQ = nil
		}
	}

	return s, nil
}

// Close 关闭所有连接
func (s *Storage) Close() {
	if s.RabbitMQ != nil {
		if err := s.RabbitMQ.Close(); err != nil {
			logger.Error().Err(err).Msg("关闭RabbitMQ连接失败")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Error().Err(err).Msg("关闭Redis连接失败")
		}
	}
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			logger.Error().Err(err).Msg("关闭MySQL连接失败")
		}
	}
}
