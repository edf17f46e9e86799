package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"smart-resume-analyzer/internal/logger"
	"smart-resume-analyzer/internal/processor"

	"github.com/spf13/cobra"
)

var (
	extractFormat string
	extractMaxLen int
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "只做字段抽取，输出姓名、联系方式、页数、技能与正文",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "text", "输出格式: text, json")
	extractCmd.Flags().IntVar(&extractMaxLen, "maxlen", 1000, "显示的正文最大长度，设为-1显示全部")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
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
	resume, err := extractor.Extract(ctx, args[0])
	if err != nil {
		return fmt.Errorf("抽取失败: %w", err)
	}

	text := resume.Text
	if extractMaxLen >= 0 && len([]rune(text)) > extractMaxLen {
		text = string([]rune(text)[:extractMaxLen]) + "..."
	}

	out := cmd.OutOrStdout()
	if extractFormat == "json" {
		view := *resume
		view.Text = text
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	fmt.Fprintf(out, "姓名: %s\n", resume.Name)
	fmt.Fprintf(out, "邮箱: %s\n", resume.Email)
	fmt.Fprintf(out, "电话: %s\n", resume.Phone)
	fmt.Fprintf(out, "页数: %d\n", resume.PageCount)
	fmt.Fprintf(out, "技能: %s\n", strings.Join(resume.Skills, ", "))
	fmt.Fprintf(out, "\n正文:\n%s\n", text)
	return nil
}
