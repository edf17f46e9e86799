package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"smart-resume-analyzer/internal/logger"
	"smart-resume-analyzer/internal/processor"
	"smart-resume-analyzer/internal/recommender"
	"smart-resume-analyzer/internal/render"
	"smart-resume-analyzer/internal/storage"
	"smart-resume-analyzer/internal/types"

	"github.com/spf13/cobra"
)

var (
	analyzeCourses int
	analyzeFormat  string
	analyzeSeed    int64
	analyzeSave    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.pdf>",
	Short: "分析一份简历并输出结果面板",
	Long:  "解析本地 PDF 简历，预测方向并推荐技能与课程。默认不写数据库，--save 时写入 user_data 表。",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeCourses, "courses", "n", 0, "推荐课程数量 (1-10)，0 使用配置默认值")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "markdown", "输出格式: markdown, json")
	analyzeCmd.Flags().Int64Var(&analyzeSeed, "seed", 0, "课程随机种子，0 表示按时间播种")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "把结果写入 MySQL")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeFormat != "markdown" && analyzeFormat != "json" {
		return fmt.Errorf("不支持的输出格式: %s", analyzeFormat)
	}
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("无法访问文件 %s: %w", path, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	extractor, err := processor.BuildResumeExtractor(ctx, &cfg.Analyzer, logger.Logger)
	if err != nil {
		return err
	}

	var opts []processor.ServiceOption
	if analyzeSeed != 0 {
		opts = append(opts, processor.WithCourseRecommender(recommender.NewCourseRecommender(rand.New(rand.NewSource(analyzeSeed)))))
	}

	var result *types.AnalysisResult
	if analyzeSave {
		mysql, dbErr := storage.NewMySQL(&cfg.MySQL)
		if dbErr != nil {
			return fmt.Errorf("连接MySQL失败: %w", dbErr)
		}
		defer mysql.Close()
		result, err = processor.NewAnalysisService(cfg.Analyzer, extractor, mysql, opts...).AnalyzeFile(ctx, path, analyzeCourses)
	} else {
		result, err = processor.NewAnalysisService(cfg.Analyzer, extractor, nil, opts...).Preview(ctx, path, analyzeCourses)
	}
	if errors.Is(err, processor.ErrExtractionFailed) {
		fmt.Fprintln(cmd.ErrOrStderr(), "未能从该文件解析出简历内容")
		logger.Debug().Err(err).Msg("解析失败")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err = fmt.Fprint(out, render.Markdown(result))
	return err
}
