package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smart-resume-analyzer/internal/api/handler"
	"smart-resume-analyzer/internal/api/router"
	"smart-resume-analyzer/internal/config"
	appCoreLogger "smart-resume-analyzer/internal/logger"
	"smart-resume-analyzer/internal/metrics"
	"smart-resume-analyzer/internal/processor"
	"smart-resume-analyzer/internal/storage"
	"smart-resume-analyzer/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

var (
	version     = "1.0.0"                 //nolint:gochecknoglobals
	serviceName = "smart-resume-analyzer" //nolint:gochecknoglobals
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}

	closer, err := initLogger(cfg.Logger)
	if err != nil {
		glog.Fatalf("初始化日志失败: %v", err)
	}
	defer closer()
	glog.Infof("配置加载成功, 版本: %s", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = serviceName
	}
	shutdownTracing, err := tracing.InitProvider(ctx, cfg.Tracing)
	if err != nil {
		glog.Warnf("初始化链路追踪失败, 继续运行: %v", err)
	}

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	extractor, err := processor.BuildResumeExtractor(ctx, &cfg.Analyzer, appCoreLogger.Logger)
	if err != nil {
		glog.Fatalf("初始化简历抽取器失败: %v", err)
	}
	glog.Infof("简历抽取器初始化成功, 模型: %s", cfg.Analyzer.NLPModel)

	var analyzerMetrics *metrics.AnalyzerMetrics
	if cfg.Metrics.Enabled {
		analyzerMetrics = metrics.NewAnalyzerMetrics(serviceName)
	}

	service := processor.NewAnalysisService(cfg.Analyzer, extractor, storageManager.MySQL,
		serviceOptions(storageManager, analyzerMetrics)...)
	glog.Info("AnalysisService初始化成功")

	tracer, tracerCfg := hertztracing.NewServerTracer()
	h := server.New(
		tracer,
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(cfg.MaxUploadBytes()+1024*1024),
	)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxDebugf(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxDebugf(c, "Response: status %d", ctx.Response.StatusCode())
	})

	routeOpts := []router.Option{router.WithAdminAPIKey(cfg.Admin.APIKey)}
	if analyzerMetrics != nil {
		routeOpts = append(routeOpts, router.WithMetrics(analyzerMetrics, cfg.Metrics.Path))
	}
	router.RegisterRoutes(h,
		handler.NewAnalysisHandler(service, int64(cfg.MaxUploadBytes())),
		handler.NewAdminHandler(service),
		routeOpts...,
	)
	glog.Info("HTTP路由注册成功")
	if cfg.Admin.APIKey == "" {
		glog.Warn("admin.api_key 为空，管理端接口未启用鉴权")
	}

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)
	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("服务器关闭失败: %v", err)
	}
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			glog.Warnf("关闭链路追踪失败: %v", err)
		}
	}
	glog.Info("优雅退出完成")
}

// serviceOptions 只为成功初始化的可选组件注入依赖
func serviceOptions(s *storage.Storage, m *metrics.AnalyzerMetrics) []processor.ServiceOption {
	opts := []processor.ServiceOption{processor.WithMetrics(m)}
	if s.MinIO != nil {
		opts = append(opts, processor.WithArchive(s.MinIO))
		glog.Info("已启用原始简历归档")
	}
	if s.Redis != nil {
		opts = append(opts, processor.WithCache(s.Redis))
		glog.Info("已启用抽取结果缓存")
	}
	if s.RabbitMQ != nil {
		opts = append(opts, processor.WithEvents(s.RabbitMQ))
		glog.Info("已启用分析完成事件")
	}
	return opts
}

// initLogger 初始化全局 zerolog，并作为 Hertz 的日志后端
func initLogger(cfg config.LoggerConfig) (func(), error) {
	closer, err := appCoreLogger.Init(cfg)
	if err != nil {
		return nil, err
	}

	hertzCompatibleLogger := hertzadapter.From(appCoreLogger.Logger)
	glog.SetLogger(hertzCompatibleLogger)
	if cfg.Level == "debug" {
		glog.SetLevel(glog.LevelDebug)
	} else {
		glog.SetLevel(glog.LevelInfo)
	}

	return func() { _ = closer.Close() }, nil
}
