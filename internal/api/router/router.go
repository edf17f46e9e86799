package router

import (
	"context"
	"crypto/subtle"
	"net/http"

	"smart-resume-analyzer/internal/api/handler"
	"smart-resume-analyzer/internal/constants"
	"smart-resume-analyzer/internal/logger"
	"smart-resume-analyzer/internal/metrics"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"github.com/hertz-contrib/keyauth"
)

type routeOptions struct {
	metrics     *metrics.AnalyzerMetrics
	metricsPath string
	adminAPIKey string
}

// Option 路由可选项
type Option func(*routeOptions)

// WithMetrics 记录请求指标并暴露 path
func WithMetrics(m *metrics.AnalyzerMetrics, path string) Option {
	return func(o *routeOptions) {
		o.metrics = m
		o.metricsPath = path
	}
}

// WithAdminAPIKey 为管理端接口启用 X-Admin-Key 校验，key 为空时不校验
func WithAdminAPIKey(key string) Option {
	return func(o *routeOptions) { o.adminAPIKey = key }
}

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, analysisHandler *handler.AnalysisHandler, adminHandler *handler.AdminHandler, opts ...Option) {
	o := &routeOptions{metricsPath: "/metrics"}
	for _, opt := range opts {
		opt(o)
	}

	h.Use(RequestID())
	if o.metrics != nil {
		h.Use(o.metrics.Middleware())
		h.GET(o.metricsPath, httpHandler(o.metrics.Handler()))
	}

	api := h.Group("/api/v1")
	api.POST("/resume/analyze", analysisHandler.HandleAnalyze)

	admin := api.Group("/admin")
	if o.adminAPIKey != "" {
		admin.Use(AdminAuth(o.adminAPIKey))
	}
	admin.GET("/records", adminHandler.HandleListRecords)
	admin.GET("/records.csv", adminHandler.HandleExportCSV)

	// 添加健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}

// httpHandler 把 net/http 的 Handler 挂到 Hertz 路由上
func httpHandler(next http.Handler) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		req, err := adaptor.GetCompatRequest(&ctx.Request)
		if err != nil {
			logger.Ctx(c).Error().Err(err).Msg("转换请求失败")
			ctx.AbortWithStatus(consts.StatusInternalServerError)
			return
		}
		next.ServeHTTP(adaptor.GetCompatResponseWriter(&ctx.Response), req.WithContext(c))
	}
}

// RequestID 沿用请求头中的 X-Request-ID，没有时生成，并放入日志上下文
func RequestID() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		requestID := string(ctx.GetHeader(constants.RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(constants.RequestIDHeader, requestID)
		ctx.Next(logger.WithRequestID(c, requestID))
	}
}

// AdminAuth 校验 X-Admin-Key
func AdminAuth(apiKey string) app.HandlerFunc {
	return keyauth.New(
		keyauth.WithKeyLookUp("header:"+constants.AdminKeyHeader, ""),
		keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1, nil
		}),
		keyauth.WithErrorHandler(func(c context.Context, ctx *app.RequestContext, err error) {
			logger.Ctx(c).Warn().Str("path", string(ctx.Path())).Msg("管理端鉴权失败")
			ctx.AbortWithStatusJSON(consts.StatusUnauthorized, utils.H{"error": "未授权访问"})
		}),
	)
}
