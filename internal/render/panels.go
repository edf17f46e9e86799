// Package render 把分析结果渲染为 Markdown 面板，HTTP 响应与命令行共用
package render

import (
	"fmt"
	"strings"

	"smart-resume-analyzer/internal/types"
)

// Markdown 依次输出基本信息、层级、技能、推荐、评分与视频面板。
// 缺失的姓名、邮箱、电话不输出对应行，方向为空时不输出推荐面板
func Markdown(r *types.AnalysisResult) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	writeBasicInfo(&b, r)
	writeLevel(&b, r)
	writeSkills(&b, r)
	writeRecommendation(&b, r)
	writeScore(&b, r)
	writeVideos(&b, r)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeBasicInfo(b *strings.Builder, r *types.AnalysisResult) {
	b.WriteString("## Resume Analysis\n\n")
	if r.Name != "" {
		fmt.Fprintf(b, "### Hello %s\n\n", r.Name)
	}
	b.WriteString("### Your Basic info\n\n")
	if r.Name != "" {
		fmt.Fprintf(b, "- Name: %s\n", r.Name)
	}
	if r.Email != "" {
		fmt.Fprintf(b, "- Email: %s\n", r.Email)
	}
	if r.Phone != "" {
		fmt.Fprintf(b, "- Contact: %s\n", r.Phone)
	}
	fmt.Fprintf(b, "- Resume pages: %d\n\n", r.PageCount)
}

func writeLevel(b *strings.Builder, r *types.AnalysisResult) {
	switch r.CandidateLevel {
	case "Fresher":
		b.WriteString("**You are looking Fresher.**\n\n")
	case "Intermediate":
		b.WriteString("**You are at intermediate level!**\n\n")
	case "Experienced":
		b.WriteString("**You are at experience level!**\n\n")
	}
}

func writeSkills(b *strings.Builder, r *types.AnalysisResult) {
	b.WriteString("### Skills Recommendation💡\n\n")
	writeList(b, "Your Current Skills", r.Skills)
}

func writeRecommendation(b *strings.Builder, r *types.AnalysisResult) {
	if r.PredictedField == "" {
		return
	}
	fmt.Fprintf(b, "**Our analysis says you are looking for %s Jobs.**\n\n", r.PredictedField)
	writeList(b, "Recommended skills for you", r.RecommendedSkills)

	if len(r.RecommendedCourses) == 0 {
		return
	}
	b.WriteString("### Courses & Certificates🎓 Recommendations\n\n")
	for i, c := range r.RecommendedCourses {
		fmt.Fprintf(b, "%d. [%s](%s)\n", i+1, c.Name, c.Link)
	}
	b.WriteString("\n")
}

func writeScore(b *strings.Builder, r *types.AnalysisResult) {
	if len(r.ResumeTips) == 0 {
		return
	}
	b.WriteString("### Resume Tips & Ideas💡\n\n")
	for _, tip := range r.ResumeTips {
		mark := "[-]"
		if tip.Present {
			mark = "[+]"
		}
		fmt.Fprintf(b, "- %s %s\n", mark, tip.Message)
	}
	fmt.Fprintf(b, "\n**Your Resume Writing Score: %d**\n\n", r.ResumeScore)
}

func writeVideos(b *strings.Builder, r *types.AnalysisResult) {
	if r.ResumeVideo != nil {
		b.WriteString("### Bonus Video for Resume Writing Tips💡\n\n")
		fmt.Fprintf(b, "[%s](%s)\n\n", r.ResumeVideo.Name, r.ResumeVideo.Link)
	}
	if r.InterviewVideo != nil {
		b.WriteString("### Bonus Video for Interview👨‍💼 Tips💡\n\n")
		fmt.Fprintf(b, "[%s](%s)\n\n", r.InterviewVideo.Name, r.InterviewVideo.Link)
	}
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: (none)\n\n", title)
		return
	}
	fmt.Fprintf(b, "%s: %s\n\n", title, strings.Join(items, ", "))
}
