// Package recommender 根据简历技能推断目标方向，并给出技能与课程建议
package recommender

import "smart-resume-analyzer/internal/types"

// Field 职业方向
type Field string

// 可预测的方向，取值即展示名称与入库值
const (
	FieldNone               Field = ""
	FieldDataScience        Field = "Data Science"
	FieldWebDevelopment     Field = "Web Development"
	FieldAndroidDevelopment Field = "Android Development"
	FieldIOSDevelopment     Field = "IOS Development"
	FieldUIUXDesign         Field = "UI/UX Design"
)

// FieldProfile 某一方向的关键词集合、建议技能与课程目录
type FieldProfile struct {
	Field             Field
	Keywords          map[string]struct{}
	RecommendedSkills []string
	Courses           []types.CourseLink
}

// Matches 关键词匹配：小写后精确匹配，不做子串或模糊匹配
func (p FieldProfile) Matches(lowerSkill string) bool {
	_, ok := p.Keywords[lowerSkill]
	return ok
}

func keywordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// FieldPriority 同一技能命中多个方向时，排在前面的方向优先
var FieldPriority = []FieldProfile{
	{
		Field:    FieldDataScience,
		Keywords: keywordSet("tensorflow", "keras", "pytorch", "machine learning", "deep learning", "flask", "streamlit"),
		RecommendedSkills: []string{
			"Data Visualization", "Predictive Analysis", "Statistical Modeling", "Data Mining",
			"Clustering & Classification", "Data Analytics", "Quantitative Analysis", "Web Scraping",
			"ML Algorithms", "Keras", "Pytorch", "Probability", "Scikit-learn", "Tensorflow", "Flask", "Streamlit",
		},
		Courses: DataScienceCourses,
	},
	{
		Field: FieldWebDevelopment,
		Keywords: keywordSet("react", "django", "node js", "react js", "php", "laravel", "magento", "wordpress",
			"javascript", "angular js", "c#", "flask"),
		RecommendedSkills: []string{
			"React", "Django", "Node JS", "React JS", "php", "laravel", "Magento", "wordpress",
			"Javascript", "Angular JS", "c#", "Flask",
		},
		Courses: WebCourses,
	},
	{
		Field:             FieldAndroidDevelopment,
		Keywords:          keywordSet("android", "android development", "flutter", "kotlin", "xml", "kivy"),
		RecommendedSkills: []string{"Java", "Kotlin", "XML", "Flutter", "Kivy", "Android Studio", "SDK"},
		Courses:           AndroidCourses,
	},
	{
		Field:             FieldIOSDevelopment,
		Keywords:          keywordSet("ios", "ios development", "swift", "cocoa", "cocoa touch", "xcode"),
		RecommendedSkills: []string{"XCode", "Swift", "Cocoa", "Cocoa Touch"},
		Courses:           IOSCourses,
	},
	{
		Field: FieldUIUXDesign,
		Keywords: keywordSet("ux", "adobe xd", "figma", "zeplin", "balsamiq", "ui", "prototyping", "wireframes",
			"storyframes", "adobe photoshop", "photoshop", "editing", "adobe illustrator", "illustrator",
			"adobe after effects", "after effects", "adobe premier pro", "premier pro", "adobe indesign", "indesign",
			"wireframe", "solid", "grasp", "user research", "user experience"),
		RecommendedSkills: []string{
			"UX", "Wireframes", "Adobe XD", "Figma", "Prototyping", "Adobe Illustrator", "User Research", "Storyboarding",
		},
		Courses: UIUXCourses,
	},
}

// ProfileFor 返回方向对应的配置
func ProfileFor(field Field) (FieldProfile, bool) {
	for _, p := range FieldPriority {
		if p.Field == field {
			return p, true
		}
	}
	return FieldProfile{}, false
}

// AllKeywords 所有方向关键词的并集，抽取器用它补充技能词表
func AllKeywords() []string {
	var words []string
	seen := make(map[string]struct{})
	for _, p := range FieldPriority {
		for w := range p.Keywords {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}
	return words
}
