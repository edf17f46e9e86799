package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"smart-resume-analyzer/internal/storage/models"
)

// RecordsCSV 按表列顺序写出全部记录，列表列保持 JSON 数组文本
func RecordsCSV(w io.Writer, records []models.AnalysisRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.AnalysisRecord{}.Columns()); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.FormatUint(r.ID, 10),
			r.Name,
			r.Email,
			r.ResumeScore,
			r.Timestamp,
			r.PageCount,
			r.PredictedField,
			r.CandidateLevel,
			string(r.ActualSkills),
			string(r.RecommendedSkills),
			string(r.RecommendedCourses),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
