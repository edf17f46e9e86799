package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"

	"smart-resume-analyzer/internal/config"
	"smart-resume-analyzer/internal/constants"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIO 原始简历归档
type MinIO struct {
	client *minio.Client
	bucket string
	logger *log.Logger
}

// NewMinIO 创建MinIO客户端并确保存储桶存在
func NewMinIO(ctx context.Context, cfg *config.MinIOConfig, logger *log.Logger) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{client: client, bucket: cfg.BucketName, logger: logger}
	if err := m.ensureBucketExists(ctx, cfg.Location); err != nil {
		return nil, err
	}
	logger.Printf("[MinIO] Client initialized for endpoint: %s, bucket: %s", cfg.Endpoint, cfg.BucketName)
	return m, nil
}

func (m *MinIO) ensureBucketExists(ctx context.Context, location string) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", m.bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: location}); err != nil {
		return fmt.Errorf("创建存储桶 %s 失败: %w", m.bucket, err)
	}
	m.logger.Printf("[MinIO] Bucket %s created", m.bucket)
	return nil
}

// ArchiveObjectKey 归档对象键: resumes/{analysisID}/{basename}
func ArchiveObjectKey(analysisID, localPath string) string {
	return path.Join(constants.ArchiveObjectPrefix, analysisID, filepath.Base(localPath))
}

// ArchiveUpload 把本地保存的简历上传到存储桶，返回对象键
func (m *MinIO) ArchiveUpload(ctx context.Context, analysisID, localPath, fileMD5 string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("打开待归档文件失败: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("读取待归档文件信息失败: %w", err)
	}

	objectKey := ArchiveObjectKey(analysisID, localPath)
	_, err = m.client.PutObject(ctx, m.bucket, objectKey, f, info.Size(), minio.PutObjectOptions{
		ContentType: constants.PDFContentType,
		UserMetadata: map[string]string{
			"analysis-id": analysisID,
			"file-md5":    fileMD5,
		},
	})
	if err != nil {
		return "", fmt.Errorf("上传对象 %s/%s 失败: %w", m.bucket, objectKey, err)
	}
	m.logger.Printf("[MinIO] Archived %s as %s/%s (%d bytes)", localPath, m.bucket, objectKey, info.Size())
	return objectKey, nil
}
