package recommender

import (
	"strings"

	"smart-resume-analyzer/internal/types"
)

type scoredSection struct {
	name     string
	headings []string
	points   int
	present  string
	missing  string
}

// 每个章节 20 分，满分 100
var scoredSections = []scoredSection{
	{
		name:     "Objective",
		headings: []string{"career objective", "objective"},
		points:   20,
		present:  "Awesome! You have added an Objective.",
		missing:  "Please add your career objective, it will give your career intention to the recruiters.",
	},
	{
		name:     "Declaration",
		headings: []string{"declaration"},
		points:   20,
		present:  "Awesome! You have added a Declaration.",
		missing:  "Please add a Declaration. It gives recruiters the assurance that everything written on your resume is true.",
	},
	{
		name:     "Hobbies",
		headings: []string{"hobbies", "interests"},
		points:   20,
		present:  "Awesome! You have added your Hobbies.",
		missing:  "Please add Hobbies. It shows your personality to the recruiters and whether you fit the role.",
	},
	{
		name:     "Achievements",
		headings: []string{"achievements", "accomplishments"},
		points:   20,
		present:  "Awesome! You have added your Achievements.",
		missing:  "Please add Achievements. It shows that you are capable for the required position.",
	},
	{
		name:     "Projects",
		headings: []string{"academic projects", "personal projects", "projects", "project"},
		points:   20,
		present:  "Awesome! You have added your Projects.",
		missing:  "Please add Projects. It shows whether you have done work related to the required position.",
	},
}

// ScoreResume 按简历中出现的章节标题行打分，正文里提到章节名不计分
func ScoreResume(text string) (int, []types.ResumeTip) {
	lines := strings.Split(text, "\n")
	score := 0
	tips := make([]types.ResumeTip, 0, len(scoredSections))
	for _, sec := range scoredSections {
		tip := types.ResumeTip{Section: sec.name, Message: sec.missing}
		if hasHeading(lines, sec.headings) {
			tip.Present = true
			tip.Message = sec.present
			score += sec.points
		}
		tips = append(tips, tip)
	}
	return score, tips
}

func hasHeading(lines []string, headings []string) bool {
	for _, line := range lines {
		if _, _, ok := MatchHeading(line, headings...); ok {
			return true
		}
	}
	return false
}
