package recommender

// CandidateLevel 由简历页数粗略推断的经验层级
type CandidateLevel string

const (
	LevelFresher      CandidateLevel = "Fresher"
	LevelIntermediate CandidateLevel = "Intermediate"
	LevelExperienced  CandidateLevel = "Experienced"
)

// LevelFor 1 页为 Fresher，2 页为 Intermediate，其余（包括 0 和负数）都归为 Experienced
func LevelFor(pageCount int) CandidateLevel {
	switch pageCount {
	case 1:
		return LevelFresher
	case 2:
		return LevelIntermediate
	default:
		return LevelExperienced
	}
}
