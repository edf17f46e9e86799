package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strconv"
	"strings"

	"smart-resume-analyzer/internal/constants"
	"smart-resume-analyzer/internal/logger"
	"smart-resume-analyzer/internal/processor"
	"smart-resume-analyzer/internal/recommender"
	"smart-resume-analyzer/internal/render"
	"smart-resume-analyzer/internal/tracing"
	"smart-resume-analyzer/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/trace"
)

// Analyzer 上传分析所需的服务能力
type Analyzer interface {
	SaveUpload(ctx context.Context, filename string, r io.Reader) (string, error)
	AnalyzeFile(ctx context.Context, path string, courseCount int) (*types.AnalysisResult, error)
}

// AnalysisHandler 处理简历上传与分析
type AnalysisHandler struct {
	analyzer       Analyzer
	maxUploadBytes int64
}

// NewAnalysisHandler maxUploadBytes 不大于 0 时不限制文件大小
func NewAnalysisHandler(analyzer Analyzer, maxUploadBytes int64) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, maxUploadBytes: maxUploadBytes}
}

// HandleAnalyze POST /api/v1/resume/analyze
func (h *AnalysisHandler) HandleAnalyze(c context.Context, ctx *app.RequestContext) {
	log := logger.Ctx(c)

	fileHeader, err := ctx.FormFile(constants.UploadFormField)
	if err != nil {
		abortWithError(c, ctx, consts.StatusBadRequest, err, "文件未找到")
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		err = fmt.Errorf("文件大小 %d 超过上限 %d", fileHeader.Size, h.maxUploadBytes)
		abortWithError(c, ctx, consts.StatusRequestEntityTooLarge, err, "文件过大")
		return
	}
	if !isPDFUpload(fileHeader.Filename, fileHeader.Header.Get("Content-Type")) {
		abortWithError(c, ctx, consts.StatusUnsupportedMediaType, processor.ErrUnsupportedFile, processor.ErrUnsupportedFile.Error())
		return
	}

	courseCount, err := parseCourseCount(ctx.PostForm(constants.CourseCountFormField))
	if err != nil {
		abortWithError(c, ctx, consts.StatusBadRequest, err, "course_count 必须是整数")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, ctx, consts.StatusInternalServerError, err, "打开文件失败")
		return
	}
	defer file.Close()

	path, err := h.analyzer.SaveUpload(c, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, processor.ErrUnsupportedFile) {
			abortWithError(c, ctx, consts.StatusUnsupportedMediaType, err, err.Error())
			return
		}
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("保存上传文件失败")
		abortWithError(c, ctx, consts.StatusInternalServerError, err, "保存上传文件失败")
		return
	}

	result, err := h.analyzer.AnalyzeFile(c, path, courseCount)
	switch {
	case err == nil:
		ctx.JSON(consts.StatusOK, types.AnalyzeResponse{
			Status:   types.StatusAnalyzed,
			Analysis: result,
			Markdown: render.Markdown(result),
		})
	case errors.Is(err, processor.ErrExtractionFailed):
		// 解析失败不写记录，也不报错
		ctx.JSON(consts.StatusOK, types.AnalyzeResponse{Status: types.StatusNoResult})
	default:
		log.Error().Err(err).Str("path", path).Msg("简历分析失败")
		abortWithError(c, ctx, consts.StatusInternalServerError, err, err.Error())
	}
}

// abortWithError 返回错误响应，并把错误记到当前请求的 span 上
func abortWithError(c context.Context, ctx *app.RequestContext, status int, err error, message string) {
	tracing.RecordHTTPError(trace.SpanFromContext(c), err, status)
	ctx.JSON(status, utils.H{"error": message})
}

// isPDFUpload 扩展名必须是 .pdf，声明了 Content-Type 时还须是 PDF 或通用二进制类型
func isPDFUpload(filename, contentType string) bool {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return false
	}
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case constants.PDFContentType, "application/x-pdf", "application/octet-stream":
		return true
	default:
		return false
	}
}

// parseCourseCount 空值取默认，越界值收敛到 [1,10]
func parseCourseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return recommender.MinCourseCount, nil
	}
	return recommender.ClampCourseCount(n), nil
}
