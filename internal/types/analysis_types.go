package types

// ExtractedResume 抽取器对一份简历的输出，请求结束后丢弃
type ExtractedResume struct {
	Name      string   `json:"name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	PageCount int      `json:"page_count"`
	Skills    []string `json:"skills"` // 保持抽取器给出的顺序
	Text      string   `json:"text,omitempty"`
}

// HasContent 抽取结果是否可用于分析
func (r *ExtractedResume) HasContent() bool {
	if r == nil {
		return false
	}
	return r.Name != "" || r.Email != "" || r.Phone != "" || len(r.Skills) > 0 || r.Text != ""
}

// CourseLink 课程或视频
type CourseLink struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// ResumeTip 简历评分项
type ResumeTip struct {
	Section string `json:"section"`
	Present bool   `json:"present"`
	Message string `json:"message"`
}

// AnalysisResult 一次分析返回给调用方的全部内容
type AnalysisResult struct {
	AnalysisID         string       `json:"analysis_id"`
	Timestamp          string       `json:"timestamp"`
	Name               string       `json:"name,omitempty"`
	Email              string       `json:"email,omitempty"`
	Phone              string       `json:"phone,omitempty"`
	PageCount          int          `json:"page_count"`
	CandidateLevel     string       `json:"candidate_level"`
	Skills             []string     `json:"skills"`
	PredictedField     string       `json:"predicted_field"`
	RecommendedSkills  []string     `json:"recommended_skills"`
	RecommendedCourses []CourseLink `json:"recommended_courses"`
	ResumeScore        int          `json:"resume_score"`
	ResumeTips         []ResumeTip  `json:"resume_tips"`
	ResumeVideo        *CourseLink  `json:"resume_video,omitempty"`
	InterviewVideo     *CourseLink  `json:"interview_video,omitempty"`
	RecordID           uint64       `json:"record_id"`
}

// AnalyzeResponse 上传分析接口响应
type AnalyzeResponse struct {
	Status   string          `json:"status"`
	Analysis *AnalysisResult `json:"analysis,omitempty"`
	Markdown string          `json:"markdown,omitempty"`
}

// 分析接口状态
const (
	StatusAnalyzed = "ANALYZED"
	StatusNoResult = "NO_RESULT"
)

// PDFDocument PDF 解析后的纯文本与页数
type PDFDocument struct {
	Text      string                 `json:"text"`
	PageCount int                    `json:"page_count"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}
