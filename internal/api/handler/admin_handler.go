package handler

import (
	"bytes"
	"context"

	"smart-resume-analyzer/internal/logger"
	"smart-resume-analyzer/internal/render"
	"smart-resume-analyzer/internal/storage/models"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// RecordLister 管理端读取结果表
type RecordLister interface {
	ListRecords(ctx context.Context) ([]models.AnalysisRecord, error)
}

// AdminHandler 管理端导出
type AdminHandler struct {
	records RecordLister
}

func NewAdminHandler(records RecordLister) *AdminHandler {
	return &AdminHandler{records: records}
}

// HandleListRecords GET /api/v1/admin/records
func (h *AdminHandler) HandleListRecords(c context.Context, ctx *app.RequestContext) {
	records, err := h.records.ListRecords(c)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("读取分析记录失败")
		abortWithError(c, ctx, consts.StatusInternalServerError, err, "读取分析记录失败")
		return
	}
	ctx.JSON(consts.StatusOK, utils.H{
		"count":   len(records),
		"records": records,
	})
}

// HandleExportCSV GET /api/v1/admin/records.csv，列表列保持 JSON 数组文本
func (h *AdminHandler) HandleExportCSV(c context.Context, ctx *app.RequestContext) {
	records, err := h.records.ListRecords(c)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("读取分析记录失败")
		abortWithError(c, ctx, consts.StatusInternalServerError, err, "读取分析记录失败")
		return
	}

	var buf bytes.Buffer
	if err := render.RecordsCSV(&buf, records); err != nil {
		logger.Ctx(c).Error().Err(err).Msg("生成CSV失败")
		abortWithError(c, ctx, consts.StatusInternalServerError, err, "生成CSV失败")
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="user_data.csv"`)
	ctx.Data(consts.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
