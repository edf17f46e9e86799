package main

import (
	"context"
	"encoding/json"
	"fmt"

	"smart-resume-analyzer/internal/render"
	"smart-resume-analyzer/internal/storage"

	"github.com/spf13/cobra"
)

var recordsFormat string

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "导出 user_data 表",
	Args:  cobra.NoArgs,
	RunE:  runRecords,
}

func init() {
	recordsCmd.Flags().StringVarP(&recordsFormat, "format", "f", "csv", "输出格式: csv, json")
	rootCmd.AddCommand(recordsCmd)
}

func runRecords(cmd *cobra.Command, _ []string) error {
	if recordsFormat != "csv" && recordsFormat != "json" {
		return fmt.Errorf("不支持的输出格式: %s", recordsFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mysql, err := storage.NewMySQL(&cfg.MySQL)
	if err != nil {
		return fmt.Errorf("连接MySQL失败: %w", err)
	}
	defer mysql.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	records, err := mysql.ListAnalysisRecords(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if recordsFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	return render.RecordsCSV(out, records)
}
