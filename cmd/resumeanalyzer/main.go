// Package main 简历分析命令行工具，离线分析本地 PDF 或导出结果表
package main

import (
	"fmt"
	"os"

	"smart-resume-analyzer/internal/config"
	"smart-resume-analyzer/internal/logger"

	"github.com/spf13/cobra"
)

var (
	configPath string
	pdfBackend string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "resumeanalyzer",
	Short: "Smart Resume Analyzer 命令行工具",
	Long:  "解析本地 PDF 简历并输出方向预测、技能与课程推荐，或导出 user_data 表。",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		_, err := logger.Init(config.LoggerConfig{Level: level, Format: "pretty", TimeFormat: "15:04:05"})
		return err
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径，为空时按默认位置查找，找不到则使用内置默认值")
	rootCmd.PersistentFlags().StringVar(&pdfBackend, "pdf-backend", "", "覆盖 analyzer.pdf_backend (eino|ledongthuc)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
}

// loadConfig 读取配置，默认位置都没有配置文件时退回内置默认值
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if configPath != "" {
			return nil, err
		}
		logger.Debug().Err(err).Msg("未找到配置文件，使用默认配置")
		cfg = config.DefaultConfig()
	}
	if pdfBackend != "" {
		cfg.Analyzer.PDFBackend = pdfBackend
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
