package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"smart-resume-analyzer/internal/types"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

// LedongthucPDFExtractor 纯 Go 的 PDF 解析后端，不依赖 eino
type LedongthucPDFExtractor struct {
	logger zerolog.Logger
}

// NewLedongthucPDFExtractor 创建解析器
func NewLedongthucPDFExtractor(logger zerolog.Logger) *LedongthucPDFExtractor {
	return &LedongthucPDFExtractor{logger: logger}
}

// ExtractFromFile 实现 processor.PDFExtractor
func (l *LedongthucPDFExtractor) ExtractFromFile(ctx context.Context, filePath string) (*types.PDFDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	startTime := time.Now()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file %s: %w", filePath, err)
	}
	defer f.Close()

	doc, err := l.extract(r)
	if err != nil {
		return nil, fmt.Errorf("ledongthuc PDF parser failed for %s: %w", filePath, err)
	}
	doc.Metadata["source_file_path"] = filePath

	l.logger.Debug().
		Str("file", filePath).
		Int("pages", doc.PageCount).
		Int("chars", len(doc.Text)).
		Dur("duration", time.Since(startTime)).
		Msg("PDF提取完成")
	return doc, nil
}

func (l *LedongthucPDFExtractor) extract(r *pdf.Reader) (doc *types.PDFDocument, err error) {
	// 第三方库遇到损坏文件会 panic
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("PDF解析异常: %v", rec)
		}
	}()

	pageCount := r.NumPage()
	plain, err := r.GetPlainText()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, plain); err != nil {
		return nil, err
	}

	return &types.PDFDocument{
		Text:      buf.String(),
		PageCount: pageCount,
		Metadata: map[string]interface{}{
			"page_count":  pageCount,
			"text_length": buf.Len(),
			"backend":     "ledongthuc",
		},
	}, nil
}
