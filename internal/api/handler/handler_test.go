package handler_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"smart-resume-analyzer/internal/api/handler"
	"smart-resume-analyzer/internal/processor"
	"smart-resume-analyzer/internal/storage/models"
	"smart-resume-analyzer/internal/types"
	"smart-resume-analyzer/pkg/utils"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// mockAnalyzer 记录收到的参数并返回预设结果
type mockAnalyzer struct {
	saveErr     error
	analyzeErr  error
	result      *types.AnalysisResult
	savedName   string
	savedBody   string
	courseCount int
	analyzed    bool
}

func (m *mockAnalyzer) SaveUpload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	data, _ := io.ReadAll(r)
	m.savedName = filename
	m.savedBody = string(data)
	return "/tmp/uploads/" + filename, nil
}

func (m *mockAnalyzer) AnalyzeFile(ctx context.Context, path string, courseCount int) (*types.AnalysisResult, error) {
	m.analyzed = true
	m.courseCount = courseCount
	return m.result, m.analyzeErr
}

type mockLister struct {
	records []models.AnalysisRecord
	err     error
}

func (m *mockLister) ListRecords(ctx context.Context) ([]models.AnalysisRecord, error) {
	return m.records, m.err
}

func newTestEngine(analyzer handler.Analyzer, lister handler.RecordLister, maxBytes int64) *server.Hertz {
	h := server.New(server.WithHostPorts("127.0.0.1:0"))
	ah := handler.NewAnalysisHandler(analyzer, maxBytes)
	adm := handler.NewAdminHandler(lister)
	h.POST("/api/v1/resume/analyze", ah.HandleAnalyze)
	h.GET("/api/v1/admin/records", adm.HandleListRecords)
	h.GET("/api/v1/admin/records.csv", adm.HandleExportCSV)
	return h
}

func createMultipartForm(t *testing.T, fileName, contentType string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	partHeader.Set("Content-Type", contentType)
	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func performUpload(h *server.Hertz, body *bytes.Buffer, contentType string) *ut.ResponseRecorder {
	return ut.PerformRequest(h.Engine, "POST", "/api/v1/resume/analyze",
		&ut.Body{Body: body, Len: body.Len()},
		ut.Header{Key: "Content-Type", Value: contentType},
	)
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	analyzer := &mockAnalyzer{result: &types.AnalysisResult{
		AnalysisID:        "id-1",
		Name:              "John Doe",
		PageCount:         1,
		CandidateLevel:    "Fresher",
		Skills:            []string{"TensorFlow"},
		PredictedField:    "Data Science",
		RecommendedSkills: []string{"Keras"},
		RecordID:          3,
	}}
	h := newTestEngine(analyzer, &mockLister{}, 1<<20)

	body, ct := createMultipartForm(t, "cv.pdf", "application/pdf", []byte("%PDF-1.4"), map[string]string{"course_count": "6"})
	resp := performUpload(h, body, ct)
	require.Equal(t, http.StatusOK, resp.Code)

	var out types.AnalyzeResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, types.StatusAnalyzed, out.Status)
	require.NotNil(t, out.Analysis)
	assert.Equal(t, "Data Science", out.Analysis.PredictedField)
	assert.Equal(t, uint64(3), out.Analysis.RecordID)
	assert.Contains(t, out.Markdown, "Hello John Doe")

	assert.Equal(t, "cv.pdf", analyzer.savedName)
	assert.Equal(t, "%PDF-1.4", analyzer.savedBody)
	assert.Equal(t, 6, analyzer.courseCount)
}

func TestHandleAnalyzeCourseCount(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"0", 1},
		{"42", 10},
		{"-3", 1},
		{" 4 ", 4},
	}
	for _, tc := range cases {
		analyzer := &mockAnalyzer{result: &types.AnalysisResult{}}
		h := newTestEngine(analyzer, &mockLister{}, 0)
		fields := map[string]string{}
		if tc.raw != "" {
			fields["course_count"] = tc.raw
		}
		body, ct := createMultipartForm(t, "cv.pdf", "application/pdf", []byte("%PDF"), fields)
		resp := performUpload(h, body, ct)
		require.Equal(t, http.StatusOK, resp.Code, tc.raw)
		assert.Equal(t, tc.want, analyzer.courseCount, tc.raw)
	}
}

func TestHandleAnalyzeInvalidCourseCount(t *testing.T) {
	analyzer := &mockAnalyzer{}
	h := newTestEngine(analyzer, &mockLister{}, 0)
	body, ct := createMultipartForm(t, "cv.pdf", "application/pdf", []byte("%PDF"), map[string]string{"course_count": "many"})
	resp := performUpload(h, body, ct)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.False(t, analyzer.analyzed)
}

func TestHandleAnalyzeNoResult(t *testing.T) {
	analyzer := &mockAnalyzer{analyzeErr: processor.NewExtractionError("id-2", "broken pdf")}
	h := newTestEngine(analyzer, &mockLister{}, 0)

	body, ct := createMultipartForm(t, "cv.pdf", "application/octet-stream", []byte("garbage"), nil)
	resp := performUpload(h, body, ct)
	require.Equal(t, http.StatusOK, resp.Code)

	var out types.AnalyzeResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, types.StatusNoResult, out.Status)
	assert.Nil(t, out.Analysis)
	assert.Empty(t, out.Markdown)
}

func TestHandleAnalyzePersistFailure(t *testing.T) {
	analyzer := &mockAnalyzer{analyzeErr: processor.NewPersistError("id-3", "connection refused")}
	h := newTestEngine(analyzer, &mockLister{}, 0)

	body, ct := createMultipartForm(t, "cv.pdf", "application/pdf", []byte("%PDF"), nil)
	resp := performUpload(h, body, ct)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "connection refused")
}

func TestErrorResponsesRecordedOnRequestSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	h := server.New(server.WithHostPorts("127.0.0.1:0"))
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		c, span := tp.Tracer("test").Start(c, string(ctx.Path()))
		defer span.End()
		ctx.Next(c)
	})
	ah := handler.NewAnalysisHandler(&mockAnalyzer{analyzeErr: processor.NewPersistError("id-4", "db down")}, 0)
	adm := handler.NewAdminHandler(&mockLister{err: errors.New("db down")})
	h.POST("/api/v1/resume/analyze", ah.HandleAnalyze)
	h.GET("/api/v1/admin/records", adm.HandleListRecords)

	body, ct := createMultipartForm(t, "cv.txt", "text/plain", []byte("hello"), nil)
	require.Equal(t, http.StatusUnsupportedMediaType, performUpload(h, body, ct).Code)
	body, ct = createMultipartForm(t, "cv.pdf", "application/pdf", []byte("%PDF"), nil)
	require.Equal(t, http.StatusInternalServerError, performUpload(h, body, ct).Code)
	require.Equal(t, http.StatusInternalServerError,
		ut.PerformRequest(h.Engine, "GET", "/api/v1/admin/records", nil).Code)

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	wantStatus := []int64{415, 500, 500}
	wantCategory := []string{"client_error", "server_error", "server_error"}
	for i, span := range spans {
		attrs := map[string]attribute.Value{}
		for _, kv := range span.Attributes() {
			attrs[string(kv.Key)] = kv.Value
		}
		assert.Equal(t, codes.Error, span.Status().Code, span.Name())
		assert.Equal(t, "http", attrs["error.type"].AsString())
		assert.Equal(t, wantStatus[i], attrs["http.status_code"].AsInt64())
		assert.Equal(t, wantCategory[i], attrs["error.category"].AsString())
	}
}

func TestHandleAnalyzeRejectsUploads(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		h := newTestEngine(&mockAnalyzer{}, &mockLister{}, 0)
		body := new(bytes.Buffer)
		w := multipart.NewWriter(body)
		require.NoError(t, w.WriteField("course_count", "3"))
		require.NoError(t, w.Close())
		resp := performUpload(h, body, w.FormDataContentType())
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("wrong extension", func(t *testing.T) {
		analyzer := &mockAnalyzer{}
		h := newTestEngine(analyzer, &mockLister{}, 0)
		body, ct := createMultipartForm(t, "cv.docx", "application/pdf", []byte("PK"), nil)
		resp := performUpload(h, body, ct)
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.Code)
		assert.Empty(t, analyzer.savedName)
	})

	t.Run("wrong mime type", func(t *testing.T) {
		h := newTestEngine(&mockAnalyzer{}, &mockLister{}, 0)
		body, ct := createMultipartForm(t, "cv.pdf", "image/png", []byte("png"), nil)
		resp := performUpload(h, body, ct)
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.Code)
	})

	t.Run("too large", func(t *testing.T) {
		analyzer := &mockAnalyzer{}
		h := newTestEngine(analyzer, &mockLister{}, 4)
		body, ct := createMultipartForm(t, "cv.pdf", "application/pdf", []byte("%PDF-1.4 large"), nil)
		resp := performUpload(h, body, ct)
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
		assert.False(t, analyzer.analyzed)
	})

	t.Run("save failure", func(t *testing.T) {
		analyzer := &mockAnalyzer{saveErr: processor.NewSaveUploadError("", "disk full")}
		h := newTestEngine(analyzer, &mockLister{}, 0)
		body, ct := createMultipartForm(t, "cv.pdf", "application/pdf", []byte("%PDF"), nil)
		resp := performUpload(h, body, ct)
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.False(t, analyzer.analyzed)
	})
}

func adminRecords() []models.AnalysisRecord {
	return []models.AnalysisRecord{
		{
			ID: 1, Name: "John Doe", Email: "john.doe@example.com", ResumeScore: "60",
			Timestamp: "2024-05-01 10:00:00", PageCount: "1", PredictedField: "Data Science",
			CandidateLevel:     "Fresher",
			ActualSkills:       utils.ConvertArrayToJSON([]string{"Python", "TensorFlow"}),
			RecommendedSkills:  utils.ConvertArrayToJSON([]string{"Keras"}),
			RecommendedCourses: utils.ConvertArrayToJSON([]string{"Machine Learning by Andrew NG"}),
		},
		{
			ID: 2, ResumeScore: "0", Timestamp: "2024-05-02 11:00:00", PageCount: "3",
			CandidateLevel:     "Experienced",
			ActualSkills:       utils.ConvertArrayToJSON([]string{"COBOL"}),
			RecommendedSkills:  utils.ConvertArrayToJSON(nil),
			RecommendedCourses: utils.ConvertArrayToJSON(nil),
		},
	}
}

func TestHandleListRecords(t *testing.T) {
	h := newTestEngine(&mockAnalyzer{}, &mockLister{records: adminRecords()}, 0)

	resp := ut.PerformRequest(h.Engine, "GET", "/api/v1/admin/records", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var out struct {
		Count   int `json:"count"`
		Records []struct {
			ID             uint64   `json:"id"`
			PredictedField string   `json:"predicted_field"`
			ActualSkills   []string `json:"actual_skills"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Count)
	require.Len(t, out.Records, 2)
	assert.Equal(t, "Data Science", out.Records[0].PredictedField)
	assert.Equal(t, []string{"Python", "TensorFlow"}, out.Records[0].ActualSkills)
	assert.Equal(t, "", out.Records[1].PredictedField)
}

func TestHandleListRecordsFailure(t *testing.T) {
	h := newTestEngine(&mockAnalyzer{}, &mockLister{err: errors.New("db down")}, 0)
	resp := ut.PerformRequest(h.Engine, "GET", "/api/v1/admin/records", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)

	resp = ut.PerformRequest(h.Engine, "GET", "/api/v1/admin/records.csv", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHandleExportCSV(t *testing.T) {
	h := newTestEngine(&mockAnalyzer{}, &mockLister{records: adminRecords()}, 0)

	resp := ut.PerformRequest(h.Engine, "GET", "/api/v1/admin/records.csv", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "user_data.csv")

	rows, err := csv.NewReader(bytes.NewReader(resp.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.AnalysisRecord{}.Columns(), rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Data Science", rows[1][6])
	assert.Equal(t, `["Python","TensorFlow"]`, rows[1][8])
	assert.Equal(t, `[]`, rows[2][10])
}

func TestHandleExportCSVEmptyTable(t *testing.T) {
	h := newTestEngine(&mockAnalyzer{}, &mockLister{records: []models.AnalysisRecord{}}, 0)

	resp := ut.PerformRequest(h.Engine, "GET", "/api/v1/admin/records.csv", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	rows, err := csv.NewReader(bytes.NewReader(resp.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
