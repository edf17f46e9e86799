package processor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"smart-resume-analyzer/internal/config"
	"smart-resume-analyzer/internal/parser"

	"github.com/rs/zerolog"
)

// BuildPDFExtractor 根据配置返回PDF解析器实现
func BuildPDFExtractor(ctx context.Context, cfg *config.AnalyzerConfig, logger zerolog.Logger) (PDFExtractor, error) {
	switch cfg.PDFBackend {
	case config.PDFBackendLedongthuc:
		logger.Info().Msg("使用 ledongthuc/pdf 作为PDF解析器")
		return parser.NewLedongthucPDFExtractor(logger.With().Str("component", "ledongthuc_pdf").Logger()), nil
	case config.PDFBackendEino, "":
		extractor, err := parser.NewEinoPDFTextExtractor(ctx,
			parser.WithEinoLogger(logger.With().Str("component", "eino_pdf").Logger()),
			parser.WithEinoTimeout(cfg.PDFTimeout()),
		)
		if err != nil {
			return nil, err
		}
		logger.Info().Dur("timeout", extractor.Timeout()).Msg("使用 Eino 作为PDF解析器")
		return extractor, nil
	default:
		return nil, fmt.Errorf("未知的PDF解析后端: %s", cfg.PDFBackend)
	}
}

// BuildResumeExtractor 按 nlp_model 构建字段抽取器，runtime_env_path 下的 skills.csv 存在时扩充技能词表
func BuildResumeExtractor(ctx context.Context, cfg *config.AnalyzerConfig, logger zerolog.Logger) (ResumeExtractor, error) {
	if cfg.NLPModel != config.ModelRuleBasedEN {
		return nil, fmt.Errorf("不支持的抽取模型: %s", cfg.NLPModel)
	}

	pdfExtractor, err := BuildPDFExtractor(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := []parser.ResumeExtractorOption{
		parser.WithPhoneRegion(cfg.DefaultPhoneRegion),
		parser.WithExtractorLogger(logger.With().Str("component", "resume_extractor").Logger()),
	}

	if skillsPath := parser.SkillsFilePath(cfg.RuntimeEnvPath); skillsPath != "" {
		skills, err := parser.LoadSkillsFile(skillsPath)
		switch {
		case err == nil:
			opts = append(opts, parser.WithExtraSkills(skills...))
			logger.Info().Str("path", skillsPath).Int("count", len(skills)).Msg("已加载扩展技能词表")
		case errors.Is(err, os.ErrNotExist):
			logger.Debug().Str("path", skillsPath).Msg("未找到扩展技能词表，使用内置词表")
		default:
			return nil, err
		}
	}

	return parser.NewRuleBasedResumeExtractor(pdfExtractor, opts...), nil
}
