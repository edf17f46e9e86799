package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"smart-resume-analyzer/internal/config"
	"smart-resume-analyzer/internal/logger"
	"smart-resume-analyzer/internal/metrics"
	"smart-resume-analyzer/internal/recommender"
	"smart-resume-analyzer/internal/storage"
	"smart-resume-analyzer/internal/storage/models"
	"smart-resume-analyzer/internal/tracing"
	"smart-resume-analyzer/internal/types"
	"smart-resume-analyzer/pkg/utils"

	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "smart-resume-analyzer/processor"

// AnalysisService 简历分析流程：保存上传、抽取、分类、推荐、入库
type AnalysisService struct {
	cfg       config.AnalyzerConfig
	extractor ResumeExtractor
	store     ResultStore

	archive ObjectArchive
	cache   ExtractionCache
	events  EventPublisher

	courses *recommender.CourseRecommender
	metrics *metrics.AnalyzerMetrics
	tracer  trace.Tracer
	now     func() time.Time
}

// ServiceOption 分析服务可选组件
type ServiceOption func(*AnalysisService)

// WithArchive 启用原始简历归档
func WithArchive(a ObjectArchive) ServiceOption {
	return func(s *AnalysisService) { s.archive = a }
}

// WithCache 启用抽取结果缓存
func WithCache(c ExtractionCache) ServiceOption {
	return func(s *AnalysisService) { s.cache = c }
}

// WithEvents 启用分析完成事件
func WithEvents(p EventPublisher) ServiceOption {
	return func(s *AnalysisService) { s.events = p }
}

// WithCourseRecommender 注入课程推荐器，测试时可使用固定种子
func WithCourseRecommender(r *recommender.CourseRecommender) ServiceOption {
	return func(s *AnalysisService) { s.courses = r }
}

// WithMetrics 记录分析指标
func WithMetrics(m *metrics.AnalyzerMetrics) ServiceOption {
	return func(s *AnalysisService) { s.metrics = m }
}

// WithTracerProvider 使用指定的 TracerProvider，默认取全局
func WithTracerProvider(tp trace.TracerProvider) ServiceOption {
	return func(s *AnalysisService) { s.tracer = tp.Tracer(tracerName) }
}

// WithClock 替换时间源
func WithClock(now func() time.Time) ServiceOption {
	return func(s *AnalysisService) { s.now = now }
}

// NewAnalysisService 创建分析服务。store 为 nil 时只能做不入库的预览
func NewAnalysisService(cfg config.AnalyzerConfig, extractor ResumeExtractor, store ResultStore, opts ...ServiceOption) *AnalysisService {
	s := &AnalysisService{
		cfg:       cfg,
		extractor: extractor,
		store:     store,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.courses == nil {
		s.courses = recommender.NewCourseRecommender(nil)
	}
	return s
}

// SaveUpload 把上传内容写入 upload_dir/<basename>，同名文件会被覆盖，分析后不清理
func (s *AnalysisService) SaveUpload(ctx context.Context, filename string, r io.Reader) (string, error) {
	base := filepath.Base(filename)
	if !strings.EqualFold(filepath.Ext(base), ".pdf") {
		return "", ErrUnsupportedFile
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0755); err != nil {
		return "", NewSaveUploadError("", fmt.Sprintf("创建上传目录失败: %v", err))
	}

	dst := filepath.Join(s.cfg.UploadDir, base)
	f, err := os.Create(dst)
	if err != nil {
		return "", NewSaveUploadError("", err.Error())
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return "", NewSaveUploadError("", err.Error())
	}
	logger.Ctx(ctx).Debug().Str("path", dst).Int64("bytes", n).Msg("上传文件已保存")
	return dst, nil
}

// AnalyzeFile 分析已保存的简历并写入结果表。
// 抽取失败返回 ErrExtractionFailed 且不写入记录；写入失败返回 ErrPersistFailed。
// 归档、缓存、事件失败只记录日志
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string, courseCount int) (*types.AnalysisResult, error) {
	if s.store == nil {
		return nil, ErrStoreNotInit
	}

	ctx, span := s.tracer.Start(ctx, "AnalysisService.AnalyzeFile")
	defer span.End()
	span.SetAttributes(attribute.String("resume.path", tracing.SafePath(path)))

	log := logger.Ctx(ctx)
	result, fileMD5, err := s.extractAndBuild(ctx, path, courseCount)
	if err != nil {
		s.metrics.RecordAnalysis(metrics.OutcomeNoResult, "")
		tracing.RecordError(span, err, tracing.ErrorTypeExtraction)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("analysis.id", result.AnalysisID),
		attribute.String("analysis.predicted_field", result.PredictedField),
		attribute.String("candidate.email", tracing.SafeAttributeValue("email", result.Email, tracing.DefaultMaxLength)),
	)

	record := BuildRecord(result)
	if err := s.store.InsertAnalysisRecord(ctx, record); err != nil {
		s.metrics.RecordAnalysis(metrics.OutcomeFailed, "")
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		log.Error().Err(err).Str("analysis_id", result.AnalysisID).Msg("分析结果写入失败")
		return nil, NewPersistError(result.AnalysisID, err.Error())
	}
	result.RecordID = record.ID

	archiveKey := s.archiveUpload(ctx, result.AnalysisID, path, fileMD5)
	s.publishCompleted(ctx, result, fileMD5, archiveKey)

	s.metrics.RecordAnalysis(metrics.OutcomeAnalyzed, result.PredictedField)
	span.SetStatus(codes.Ok, "")
	log.Info().
		Str("analysis_id", result.AnalysisID).
		Uint64("record_id", result.RecordID).
		Str("predicted_field", result.PredictedField).
		Str("candidate_level", result.CandidateLevel).
		Int("skills", len(result.Skills)).
		Strs("courses", recommender.CourseNames(result.RecommendedCourses)).
		Msg("简历分析完成")
	return result, nil
}

// Preview 只做抽取与推荐，不入库，供命令行使用
func (s *AnalysisService) Preview(ctx context.Context, path string, courseCount int) (*types.AnalysisResult, error) {
	result, _, err := s.extractAndBuild(ctx, path, courseCount)
	return result, err
}

// ListRecords 管理端读取全部记录
func (s *AnalysisService) ListRecords(ctx context.Context) ([]models.AnalysisRecord, error) {
	if s.store == nil {
		return nil, ErrStoreNotInit
	}
	return s.store.ListAnalysisRecords(ctx)
}

func (s *AnalysisService) extractAndBuild(ctx context.Context, path string, courseCount int) (*types.AnalysisResult, string, error) {
	analysisID := newAnalysisID()
	log := logger.Ctx(ctx)

	fileMD5, err := utils.CalculateFileMD5(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("读取上传文件失败")
		return nil, "", NewExtractionError(analysisID, err.Error())
	}

	extracted, err := s.extract(ctx, path, fileMD5)
	if err != nil {
		log.Warn().Err(err).Str("analysis_id", analysisID).Str("path", path).Msg("简历解析失败，跳过分析")
		return nil, fileMD5, NewExtractionError(analysisID, err.Error())
	}

	result := s.BuildAnalysis(extracted, courseCount)
	result.AnalysisID = analysisID
	return result, fileMD5, nil
}

func (s *AnalysisService) extract(ctx context.Context, path, fileMD5 string) (*types.ExtractedResume, error) {
	log := logger.Ctx(ctx)

	if cached, ok := s.lookupCache(ctx, fileMD5); ok {
		return cached, nil
	}

	start := time.Now()
	extracted, err := s.extractor.Extract(ctx, path)
	s.metrics.ObserveExtraction(time.Since(start))
	if err != nil {
		return nil, err
	}
	if !extracted.HasContent() {
		return nil, errors.New("抽取结果为空")
	}
	if extracted.Skills == nil {
		extracted.Skills = []string{}
	}

	if s.cache != nil {
		cacheCtx, span := s.tracer.Start(ctx, "ExtractionCache.Set")
		if err := s.cache.SetExtraction(cacheCtx, s.cfg.NLPModel, fileMD5, extracted); err != nil {
			tracing.RecordError(span, err, tracing.ErrorTypeRedis)
			s.metrics.RecordSideEffectFailure("cache")
			log.Warn().Err(err).Msg("写入抽取缓存失败")
		}
		span.End()
	}
	return extracted, nil
}

// lookupCache 只有命中且内容非空时返回 true，读取失败按未命中处理
func (s *AnalysisService) lookupCache(ctx context.Context, fileMD5 string) (*types.ExtractedResume, bool) {
	if s.cache == nil {
		return nil, false
	}
	ctx, span := s.tracer.Start(ctx, "ExtractionCache.Get")
	defer span.End()

	cached, err := s.cache.GetExtraction(ctx, s.cfg.NLPModel, fileMD5)
	switch {
	case err == nil && cached.HasContent():
		s.metrics.RecordCacheLookup(true)
		logger.Ctx(ctx).Debug().Str("file_md5", fileMD5).Msg("命中抽取缓存")
		return cached, true
	case err == nil, errors.Is(err, storage.ErrNotFound):
		s.metrics.RecordCacheLookup(false)
	default:
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		s.metrics.RecordSideEffectFailure("cache")
		logger.Ctx(ctx).Warn().Err(err).Msg("读取抽取缓存失败")
	}
	return nil, false
}

// BuildAnalysis 由抽取结果推导方向、建议技能、课程、层级与评分。
// 方向为空时不推荐课程
func (s *AnalysisService) BuildAnalysis(extracted *types.ExtractedResume, courseCount int) *types.AnalysisResult {
	if courseCount == 0 {
		courseCount = s.cfg.DefaultCourseCount
	}

	field, recommendedSkills := recommender.Classify(extracted.Skills)
	courses := []types.CourseLink{}
	if profile, ok := recommender.ProfileFor(field); ok {
		courses = s.courses.Recommend(profile.Courses, courseCount)
	}

	score, tips := recommender.ScoreResume(extracted.Text)
	skills := make([]string, len(extracted.Skills))
	copy(skills, extracted.Skills)

	return &types.AnalysisResult{
		Timestamp:          s.now().Format(models.TimestampLayout),
		Name:               extracted.Name,
		Email:              extracted.Email,
		Phone:              extracted.Phone,
		PageCount:          extracted.PageCount,
		CandidateLevel:     string(recommender.LevelFor(extracted.PageCount)),
		Skills:             skills,
		PredictedField:     string(field),
		RecommendedSkills:  recommendedSkills,
		RecommendedCourses: courses,
		ResumeScore:        score,
		ResumeTips:         tips,
		ResumeVideo:        s.courses.Pick(recommender.ResumeVideos),
		InterviewVideo:     s.courses.Pick(recommender.InterviewVideos),
	}
}

// BuildRecord 把分析结果转换为结果表的一行
func BuildRecord(result *types.AnalysisResult) *models.AnalysisRecord {
	return &models.AnalysisRecord{
		Name:               result.Name,
		Email:              result.Email,
		ResumeScore:        strconv.Itoa(result.ResumeScore),
		Timestamp:          result.Timestamp,
		PageCount:          strconv.Itoa(result.PageCount),
		PredictedField:     result.PredictedField,
		CandidateLevel:     result.CandidateLevel,
		ActualSkills:       utils.ConvertArrayToJSON(result.Skills),
		RecommendedSkills:  utils.ConvertArrayToJSON(result.RecommendedSkills),
		RecommendedCourses: utils.ConvertArrayToJSON(recommender.CourseNames(result.RecommendedCourses)),
	}
}

func (s *AnalysisService) archiveUpload(ctx context.Context, analysisID, path, fileMD5 string) string {
	if s.archive == nil {
		return ""
	}
	ctx, span := s.tracer.Start(ctx, "ObjectArchive.ArchiveUpload")
	defer span.End()

	key, err := s.archive.ArchiveUpload(ctx, analysisID, path, fileMD5)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeObjectStore)
		s.metrics.RecordSideEffectFailure("archive")
		logger.Ctx(ctx).Warn().Err(err).Str("analysis_id", analysisID).Msg("归档原始简历失败")
		return ""
	}
	return key
}

func (s *AnalysisService) publishCompleted(ctx context.Context, result *types.AnalysisResult, fileMD5, archiveKey string) {
	if s.events == nil {
		return
	}
	msg := storage.AnalysisCompletedMessage{
		AnalysisID:     result.AnalysisID,
		RecordID:       result.RecordID,
		FileMD5:        fileMD5,
		ArchiveKey:     archiveKey,
		PredictedField: result.PredictedField,
		CandidateLevel: result.CandidateLevel,
		ResumeScore:    result.ResumeScore,
		SkillCount:     len(result.Skills),
		AnalyzedAt:     s.now(),
	}
	ctx, span := s.tracer.Start(ctx, "EventPublisher.PublishAnalysisCompleted")
	defer span.End()

	if err := s.events.PublishAnalysisCompleted(ctx, msg); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRabbitMQ)
		s.metrics.RecordSideEffectFailure("event")
		logger.Ctx(ctx).Warn().Err(err).Str("analysis_id", result.AnalysisID).Msg("发布分析完成事件失败")
	}
}

func newAnalysisID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Must(uuid.NewV4()).String()
	}
	return id.String()
}
