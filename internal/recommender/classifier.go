package recommender

import "strings"

// Classify 按技能顺序找到第一个命中任一关键词集合的技能，由它决定方向。
// 同一技能命中多个方向时按 FieldPriority 取第一个；之后的技能不再参与判断。
// 没有命中时返回空方向和空建议列表。
func Classify(skills []string) (Field, []string) {
	for _, skill := range skills {
		lower := strings.ToLower(skill)
		for _, profile := range FieldPriority {
			if profile.Matches(lower) {
				recommended := make([]string, len(profile.RecommendedSkills))
				copy(recommended, profile.RecommendedSkills)
				return profile.Field, recommended
			}
		}
	}
	return FieldNone, []string{}
}
