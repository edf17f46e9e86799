package storage

import "time"

// AnalysisCompletedMessage 分析完成事件，路由键 resume.analyzed
type AnalysisCompletedMessage struct {
	AnalysisID     string    `json:"analysis_id"`
	RecordID       uint64    `json:"record_id"`
	FileMD5        string    `json:"file_md5"`
	ArchiveKey     string    `json:"archive_key,omitempty"` // MinIO 中的对象键，未归档时为空
	PredictedField string    `json:"predicted_field"`
	CandidateLevel string    `json:"candidate_level"`
	ResumeScore    int       `json:"resume_score"`
	SkillCount     int       `json:"skill_count"`
	AnalyzedAt     time.Time `json:"analyzed_at"`
}
