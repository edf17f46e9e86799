package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// TimestampLayout 记录时间戳的存储格式
const TimestampLayout = "2006-01-02 15:04:05"

// AnalysisRecord 一次简历分析的结果，只追加不修改。列名沿用 user_data 表的既有结构
type AnalysisRecord struct {
	ID                 uint64         `gorm:"column:ID;primaryKey;autoIncrement" json:"id"`
	Name               string         `gorm:"column:Name;type:varchar(100);not null" json:"name"`
	Email              string         `gorm:"column:Email_ID;type:varchar(50);not null" json:"email"`
	ResumeScore        string         `gorm:"column:resume_score;type:varchar(8);not null" json:"resume_score"`
	Timestamp          string         `gorm:"column:Timestamp;type:varchar(50);not null" json:"timestamp"`
	PageCount          string         `gorm:"column:Page_no;type:varchar(5);not null" json:"page_count"`
	PredictedField     string         `gorm:"column:Predicted_Field;type:varchar(25);not null" json:"predicted_field"`
	CandidateLevel     string         `gorm:"column:User_level;type:varchar(30);not null" json:"candidate_level"`
	ActualSkills       datatypes.JSON `gorm:"column:Actual_skills;type:json;not null" json:"actual_skills"`
	RecommendedSkills  datatypes.JSON `gorm:"column:Recommended_skills;type:json;not null" json:"recommended_skills"`
	RecommendedCourses datatypes.JSON `gorm:"column:Recommended_courses;type:json;not null" json:"recommended_courses"`
}

func (AnalysisRecord) TableName() string {
	return "user_data"
}

// Columns 导出 CSV 时的列顺序
func (AnalysisRecord) Columns() []string {
	return []string{
		"ID", "Name", "Email_ID", "resume_score", "Timestamp", "Page_no",
		"Predicted_Field", "User_level", "Actual_skills", "Recommended_skills", "Recommended_courses",
	}
}

// StringList 把 JSON 数组列还原为字符串切片，格式不对时返回空
func StringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
