package processor

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"smart-resume-analyzer/internal/config"
	"smart-resume-analyzer/internal/metrics"
	"smart-resume-analyzer/internal/recommender"
	"smart-resume-analyzer/internal/storage"
	"smart-resume-analyzer/internal/storage/models"
	"smart-resume-analyzer/internal/types"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// MockResumeExtractor 模拟字段抽取器
type MockResumeExtractor struct {
	resume *types.ExtractedResume
	err    error
	calls  int
}

func (m *MockResumeExtractor) Extract(ctx context.Context, filePath string) (*types.ExtractedResume, error) {
	m.calls++
	return m.resume, m.err
}

// MockResultStore 模拟结果表
type MockResultStore struct {
	mu        sync.Mutex
	records   []models.AnalysisRecord
	insertErr error
	nextID    uint64
}

func (m *MockResultStore) InsertAnalysisRecord(ctx context.Context, record *models.AnalysisRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.nextID++
	record.ID = m.nextID
	m.records = append(m.records, *record)
	return nil
}

func (m *MockResultStore) ListAnalysisRecords(ctx context.Context) ([]models.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AnalysisRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// MockArchive 模拟对象存储
type MockArchive struct {
	keys []string
	err  error
}

func (m *MockArchive) ArchiveUpload(ctx context.Context, analysisID, localPath, fileMD5 string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	key := storage.ArchiveObjectKey(analysisID, localPath)
	m.keys = append(m.keys, key)
	return key, nil
}

// MockCache 模拟抽取缓存
type MockCache struct {
	entries map[string]*types.ExtractedResume
	getErr  error
	setErr  error
}

func newMockCache() *MockCache {
	return &MockCache{entries: make(map[string]*types.ExtractedResume)}
}

func (m *MockCache) GetExtraction(ctx context.Context, nlpModel, fileMD5 string) (*types.ExtractedResume, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	r, ok := m.entries[nlpModel+":"+fileMD5]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return r, nil
}

func (m *MockCache) SetExtraction(ctx context.Context, nlpModel, fileMD5 string, resume *types.ExtractedResume) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[nlpModel+":"+fileMD5] = resume
	return nil
}

// MockPublisher 模拟事件发布
type MockPublisher struct {
	messages []storage.AnalysisCompletedMessage
	err      error
}

func (m *MockPublisher) PublishAnalysisCompleted(ctx context.Context, msg storage.AnalysisCompletedMessage) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func testAnalyzerConfig(t *testing.T) config.AnalyzerConfig {
	t.Helper()
	return config.AnalyzerConfig{
		NLPModel:           config.ModelRuleBasedEN,
		UploadDir:          t.TempDir(),
		DefaultCourseCount: 4,
		MaxUploadSizeMB:    20,
	}
}

func writeUpload(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestService(t *testing.T, extractor ResumeExtractor, store ResultStore, opts ...ServiceOption) (*AnalysisService, config.AnalyzerConfig) {
	t.Helper()
	cfg := testAnalyzerConfig(t)
	base := []ServiceOption{
		WithCourseRecommender(recommender.NewCourseRecommender(rand.New(rand.NewSource(7)))),
		WithClock(func() time.Time { return fixedNow }),
	}
	return NewAnalysisService(cfg, extractor, store, append(base, opts...)...), cfg
}

func TestAnalyzeFileDataScience(t *testing.T) {
	extractor := &MockResumeExtractor{resume: &types.ExtractedResume{
		Name:      "John Doe",
		Email:     "john.doe@example.com",
		Phone:     "+16502530000",
		PageCount: 1,
		Skills:    []string{"TensorFlow", "React"},
		Text:      "John Doe\nObjective\nProjects\nSkills: TensorFlow, React",
	}}
	store := &MockResultStore{}
	svc, cfg := newTestService(t, extractor, store)
	path := writeUpload(t, cfg.UploadDir, "cv.pdf", "%PDF-1.4 fake")

	result, err := svc.AnalyzeFile(context.Background(), path, 0)
	require.NoError(t, err)

	assert.NotEmpty(t, result.AnalysisID)
	assert.Equal(t, "Data Science", result.PredictedField)
	assert.Len(t, result.RecommendedSkills, 16)
	assert.Len(t, result.RecommendedCourses, 4)
	assert.Equal(t, "Fresher", result.CandidateLevel)
	assert.Equal(t, 40, result.ResumeScore)
	assert.Equal(t, "2024-05-01 10:00:00", result.Timestamp)
	assert.NotNil(t, result.ResumeVideo)
	assert.NotNil(t, result.InterviewVideo)
	assert.Equal(t, uint64(1), result.RecordID)

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, "John Doe", rec.Name)
	assert.Equal(t, "john.doe@example.com", rec.Email)
	assert.Equal(t, "1", rec.PageCount)
	assert.Equal(t, "40", rec.ResumeScore)
	assert.Equal(t, "Fresher", rec.CandidateLevel)
	assert.Equal(t, []string{"TensorFlow", "React"}, models.StringList(rec.ActualSkills))
	assert.Len(t, models.StringList(rec.RecommendedSkills), 16)
	assert.Equal(t, recommender.CourseNames(result.RecommendedCourses), models.StringList(rec.RecommendedCourses))
}

func TestAnalyzeFileNoFieldMatch(t *testing.T) {
	extractor := &MockResumeExtractor{resume: &types.ExtractedResume{
		Email:     "ops@example.com",
		PageCount: 3,
		Skills:    []string{"COBOL"},
	}}
	store := &MockResultStore{}
	svc, cfg := newTestService(t, extractor, store)
	path := writeUpload(t, cfg.UploadDir, "legacy.pdf", "%PDF-1.4 cobol")

	result, err := svc.AnalyzeFile(context.Background(), path, 5)
	require.NoError(t, err)

	assert.Equal(t, "", result.PredictedField)
	assert.Empty(t, result.RecommendedSkills)
	assert.Empty(t, result.RecommendedCourses)
	assert.Equal(t, "Experienced", result.CandidateLevel)

	require.Len(t, store.records, 1)
	assert.Equal(t, "", store.records[0].PredictedField)
	assert.JSONEq(t, `[]`, string(store.records[0].RecommendedCourses))
	assert.JSONEq(t, `["COBOL"]`, string(store.records[0].ActualSkills))
}

func TestAnalyzeFileCourseCountClamped(t *testing.T) {
	extractor := &MockResumeExtractor{resume: &types.ExtractedResume{
		PageCount: 2,
		Skills:    []string{"django"},
	}}
	svc, cfg := newTestService(t, extractor, &MockResultStore{})
	path := writeUpload(t, cfg.UploadDir, "web.pdf", "%PDF-1.4 web")

	result, err := svc.AnalyzeFile(context.Background(), path, 50)
	require.NoError(t, err)
	assert.Equal(t, "Web Development", result.PredictedField)
	assert.Len(t, result.RecommendedCourses, recommender.MaxCourseCount)
	assert.Equal(t, "Intermediate", result.CandidateLevel)
}

func TestAnalyzeFileExtractionFailure(t *testing.T) {
	cases := map[string]*MockResumeExtractor{
		"extractor error": {err: errors.New("broken pdf")},
		"empty result":    {resume: &types.ExtractedResume{PageCount: 1}},
		"nil result":      {},
	}
	for name, extractor := range cases {
		t.Run(name, func(t *testing.T) {
			store := &MockResultStore{}
			m := metrics.NewAnalyzerMetrics("test")
			svc, cfg := newTestService(t, extractor, store, WithMetrics(m))
			path := writeUpload(t, cfg.UploadDir, "bad.pdf", "not really a pdf")

			result, err := svc.AnalyzeFile(context.Background(), path, 0)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrExtractionFailed)

			var analysisErr *AnalysisError
			require.ErrorAs(t, err, &analysisErr)
			assert.Equal(t, "extract", analysisErr.Op)
			assert.Empty(t, store.records)
		})
	}
}

func TestAnalyzeFileMissingUpload(t *testing.T) {
	extractor := &MockResumeExtractor{resume: &types.ExtractedResume{Skills: []string{"Python"}}}
	store := &MockResultStore{}
	svc, cfg := newTestService(t, extractor, store)

	_, err := svc.AnalyzeFile(context.Background(), filepath.Join(cfg.UploadDir, "missing.pdf"), 0)
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.Equal(t, 0, extractor.calls)
	assert.Empty(t, store.records)
}

func TestAnalyzeFilePersistFailure(t *testing.T) {
	extractor := &MockResumeExtractor{resume: &types.ExtractedResume{PageCount: 1, Skills: []string{"Swift"}}}
	store := &MockResultStore{insertErr: errors.New("connection refused")}
	publisher := &MockPublisher{}
	svc, cfg := newTestService(t, extractor, store, WithEvents(publisher))
	path := writeUpload(t, cfg.UploadDir, "ios.pdf", "%PDF-1.4 ios")

	result, err := svc.AnalyzeFile(context.Background(), path, 0)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrPersistFailed)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, publisher.messages)
}

func TestAnalyzeFileStoreNotConfigured(t *testing.T) {
	svc, _ := newTestService(t, &MockResumeExtractor{}, nil)
	_, err := svc.AnalyzeFile(context.Background(), "x.pdf", 0)
	assert.ErrorIs(t, err, ErrStoreNotInit)

	_, err = svc.ListRecords(context.Background())
	assert.ErrorIs(t, err, ErrStoreNotInit)
}

func TestAnalyzeFileUsesCache(t *testing.T) {
	extractor := &MockResumeExtractor{resume: &types.ExtractedResume{PageCount: 1, Skills: []string{"Figma"}}}
	cache := newMockCache()
	m := metrics.NewAnalyzerMetrics("test")
	svc, cfg := newTestService(t, extractor, &MockResultStore{}, WithCache(cache), WithMetrics(m))
	path := writeUpload(t, cfg.UploadDir, "design.pdf", "%PDF-1.4 design")

	first, err := svc.AnalyzeFile(context.Background(), path, 0)
	require.NoError(t, err)
	second, err := svc.AnalyzeFile(context.Background(), path, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, extractor.calls)
	assert.Len(t, cache.entries, 1)
	assert.Equal(t, "UI/UX Design", first.PredictedField)
	assert.Equal(t, first.PredictedField, second.PredictedField)
	assert.NotEqual(t, first.AnalysisID, second.AnalysisID)
}

func TestAnalyzeFileSideEffectsAreBestEffort(t *testing.T) {
	extractor := &MockResumeExtractor{resume: &types.ExtractedResume{PageCount: 1, Skills: []string{"Kotlin"}}}
	store := &MockResultStore{}
	cache := newMockCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	m := metrics.NewAnalyzerMetrics("test")
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	svc, cfg := newTestService(t, extractor, store,
		WithArchive(&MockArchive{err: errors.New("minio down")}),
		WithCache(cache),
		WithEvents(&MockPublisher{err: errors.New("amqp down")}),
		WithMetrics(m),
		WithTracerProvider(tp),
	)
	path := writeUpload(t, cfg.UploadDir, "android.pdf", "%PDF-1.4 android")

	result, err := svc.AnalyzeFile(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Equal(t, "Android Development", result.PredictedField)
	assert.Len(t, store.records, 1)

	count, err := testutil.GatherAndCount(m.Registry(), "resume_analyzer_analysis_side_effect_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	errorTypes := map[string]string{}
	statuses := map[string]codes.Code{}
	for _, span := range recorder.Ended() {
		statuses[span.Name()] = span.Status().Code
		for _, kv := range span.Attributes() {
			if kv.Key == "error.type" {
				errorTypes[span.Name()] = kv.Value.AsString()
			}
		}
	}
	assert.Equal(t, map[string]string{
		"ExtractionCache.Get":                     "redis",
		"ExtractionCache.Set":                     "redis",
		"ObjectArchive.ArchiveUpload":             "object_store",
		"EventPublisher.PublishAnalysisCompleted": "rabbitmq",
	}, errorTypes)
	assert.Equal(t, codes.Ok, statuses["AnalysisService.AnalyzeFile"], "旁路失败不影响主流程状态")
}

func TestAnalyzeFileArchivesAndPublishes(t *testing.T) {
	extractor := &MockResumeExtractor{resume: &types.ExtractedResume{PageCount: 1, Skills: []string{"Python", "Keras"}}}
	archive := &MockArchive{}
	publisher := &MockPublisher{}
	svc, cfg := newTestService(t, extractor, &MockResultStore{}, WithArchive(archive), WithEvents(publisher))
	path := writeUpload(t, cfg.UploadDir, "ds.pdf", "%PDF-1.4 ds")

	result, err := svc.AnalyzeFile(context.Background(), path, 2)
	require.NoError(t, err)

	require.Len(t, archive.keys, 1)
	assert.True(t, strings.HasSuffix(archive.keys[0], "/ds.pdf"))

	require.Len(t, publisher.messages, 1)
	msg := publisher.messages[0]
	assert.Equal(t, result.AnalysisID, msg.AnalysisID)
	assert.Equal(t, result.RecordID, msg.RecordID)
	assert.Equal(t, archive.keys[0], msg.ArchiveKey)
	assert.Equal(t, "Data Science", msg.PredictedField)
	assert.Equal(t, 2, msg.SkillCount)
	assert.Len(t, msg.FileMD5, 32)
	assert.Equal(t, fixedNow, msg.AnalyzedAt)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	extractor := &MockResumeExtractor{resume: &types.ExtractedResume{PageCount: 2, Skills: []string{"Flutter"}}}
	store := &MockResultStore{}
	svc, cfg := newTestService(t, extractor, store)
	path := writeUpload(t, cfg.UploadDir, "preview.pdf", "%PDF-1.4 preview")

	result, err := svc.Preview(context.Background(), path, 3)
	require.NoError(t, err)
	assert.Equal(t, "Android Development", result.PredictedField)
	assert.Len(t, result.RecommendedCourses, 3)
	assert.Zero(t, result.RecordID)
	assert.Empty(t, store.records)
}

func TestSaveUpload(t *testing.T) {
	svc, cfg := newTestService(t, &MockResumeExtractor{}, &MockResultStore{})

	path, err := svc.SaveUpload(context.Background(), "../../etc/My CV.PDF", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.UploadDir, "My CV.PDF"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	// 同名上传覆盖旧文件
	_, err = svc.SaveUpload(context.Background(), "My CV.PDF", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))
}

func TestSaveUploadRejectsNonPDF(t *testing.T) {
	svc, cfg := newTestService(t, &MockResumeExtractor{}, &MockResultStore{})

	for _, name := range []string{"resume.docx", "resume", "resume.pdf.exe"} {
		_, err := svc.SaveUpload(context.Background(), name, strings.NewReader("data"))
		assert.ErrorIs(t, err, ErrUnsupportedFile, name)
	}
	entries, err := os.ReadDir(cfg.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildRecord(t *testing.T) {
	result := &types.AnalysisResult{
		Name:               "Jane",
		Email:              "jane@example.com",
		Timestamp:          "2024-05-01 10:00:00",
		PageCount:          2,
		CandidateLevel:     "Intermediate",
		Skills:             []string{"Figma"},
		PredictedField:     "UI/UX Design",
		RecommendedSkills:  []string{"Prototyping"},
		RecommendedCourses: []types.CourseLink{{Name: "Course A", Link: "https://a"}},
		ResumeScore:        80,
	}

	rec := BuildRecord(result)
	assert.Equal(t, "2", rec.PageCount)
	assert.Equal(t, "80", rec.ResumeScore)
	assert.Equal(t, "UI/UX Design", rec.PredictedField)
	assert.JSONEq(t, `["Figma"]`, string(rec.ActualSkills))
	assert.JSONEq(t, `["Prototyping"]`, string(rec.RecommendedSkills))
	assert.JSONEq(t, `["Course A"]`, string(rec.RecommendedCourses))
	assert.Zero(t, rec.ID)
}
