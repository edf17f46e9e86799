package processor

import (
	"context"

	"smart-resume-analyzer/internal/storage"
	"smart-resume-analyzer/internal/storage/models"
	"smart-resume-analyzer/internal/types"
)

//
// 解析相关接口
//

// PDFExtractor PDF提取器接口
type PDFExtractor interface {
	// ExtractFromFile 从PDF文件提取纯文本和页数
	ExtractFromFile(ctx context.Context, filePath string) (*types.PDFDocument, error)
}

// ResumeExtractor 简历字段抽取器接口
type ResumeExtractor interface {
	// Extract 从简历文件中抽取姓名、邮箱、电话、页数与技能
	Extract(ctx context.Context, filePath string) (*types.ExtractedResume, error)
}

//
// 存储相关接口
//

// ResultStore 分析结果存储
type ResultStore interface {
	// InsertAnalysisRecord 追加一条记录，成功后回填 ID
	InsertAnalysisRecord(ctx context.Context, record *models.AnalysisRecord) error

	// ListAnalysisRecords 返回全部记录
	ListAnalysisRecords(ctx context.Context) ([]models.AnalysisRecord, error)
}

// ObjectArchive 原始简历归档
type ObjectArchive interface {
	ArchiveUpload(ctx context.Context, analysisID, localPath, fileMD5 string) (string, error)
}

// ExtractionCache 抽取结果缓存，键为抽取模型与文件 MD5
type ExtractionCache interface {
	GetExtraction(ctx context.Context, nlpModel, fileMD5 string) (*types.ExtractedResume, error)
	SetExtraction(ctx context.Context, nlpModel, fileMD5 string, resume *types.ExtractedResume) error
}

// EventPublisher 分析完成事件发布
type EventPublisher interface {
	PublishAnalysisCompleted(ctx context.Context, msg storage.AnalysisCompletedMessage) error
}

var (
	_ ResultStore     = (*storage.MySQL)(nil)
	_ ObjectArchive   = (*storage.MinIO)(nil)
	_ ExtractionCache = (*storage.Redis)(nil)
	_ EventPublisher  = (*storage.RabbitMQ)(nil)
)
