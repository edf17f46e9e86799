package recommender

import (
	"math/rand"
	"sync"
	"time"

	"smart-resume-analyzer/internal/types"
)

// 课程推荐数量范围
const (
	MinCourseCount     = 1
	MaxCourseCount     = 10
	DefaultCourseCount = 4
)

// CourseRecommender 打乱课程目录后取前 N 项；随机源由调用方注入
type CourseRecommender struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewCourseRecommender rnd 为 nil 时使用按当前时间播种的随机源
func NewCourseRecommender(rnd *rand.Rand) *CourseRecommender {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CourseRecommender{rnd: rnd}
}

// ClampCourseCount 0 表示使用默认值，其余取值限制在 [1,10]
func ClampCourseCount(count int) int {
	switch {
	case count == 0:
		return DefaultCourseCount
	case count < MinCourseCount:
		return MinCourseCount
	case count > MaxCourseCount:
		return MaxCourseCount
	default:
		return count
	}
}

// Recommend 返回 count 门不重复的课程。目录本身不会被修改
func (r *CourseRecommender) Recommend(catalog []types.CourseLink, count int) []types.CourseLink {
	count = ClampCourseCount(count)
	if len(catalog) == 0 {
		return []types.CourseLink{}
	}

	shuffled := make([]types.CourseLink, len(catalog))
	copy(shuffled, catalog)

	r.mu.Lock()
	r.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	r.mu.Unlock()

	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// Pick 随机取一项，目录为空时返回 nil
func (r *CourseRecommender) Pick(catalog []types.CourseLink) *types.CourseLink {
	if len(catalog) == 0 {
		return nil
	}
	r.mu.Lock()
	idx := r.rnd.Intn(len(catalog))
	r.mu.Unlock()
	picked := catalog[idx]
	return &picked
}

// CourseNames 提取课程名称，用于日志与入库
func CourseNames(courses []types.CourseLink) []string {
	names := make([]string, 0, len(courses))
	for _, c := range courses {
		names = append(names, c.Name)
	}
	return names
}
