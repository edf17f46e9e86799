package parser

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"smart-resume-analyzer/internal/recommender"
	"smart-resume-analyzer/internal/types"

	"github.com/nyaruka/phonenumbers"
	"github.com/rs/zerolog"
)

// ErrNoText PDF 中没有可用文本（扫描件或空文件）
var ErrNoText = errors.New("PDF中未提取到文本")

// SkillsFileName 运行时目录下的技能词表文件名
const SkillsFileName = "skills.csv"

const maxSkillNgram = 3

var (
	emailRegex      = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneCandidates = regexp.MustCompile(`\+?\(?\d[\d \-().]{7,}\d`)
	spaceRegex      = regexp.MustCompile(`[ \t\f\v]+`)
)

// 常见技能，补充各方向关键词之外的词表
var defaultSkills = []string{
	"python", "java", "c++", "golang", "rust", "ruby", "scala", "matlab",
	"sql", "mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle",
	"html", "css", "typescript", "vue", "bootstrap", "jquery", "express", "spring", "rest",
	"git", "docker", "kubernetes", "linux", "aws", "azure", "gcp", "jenkins",
	"pandas", "numpy", "scikit-learn", "opencv", "nlp", "data analysis", "data visualization",
	"excel", "tableau", "power bi", "hadoop", "spark", "statistics",
	"communication", "leadership", "teamwork", "problem solving", "project management",
}

// 同时是普通英文单词的技能词，只在技能章节内计入
var proseSkills = map[string]struct{}{
	"solid": {}, "grasp": {}, "editing": {}, "spring": {}, "express": {}, "excel": {},
}

// 带点号或连写的框架名统一为方向关键词的写法
var skillAliases = map[string]string{
	"node.js": "Node JS", "nodejs": "Node JS",
	"react.js": "React JS", "reactjs": "React JS",
	"angular.js": "Angular JS", "angularjs": "Angular JS",
	"vue.js": "Vue", "vuejs": "Vue",
	"express.js": "Express", "expressjs": "Express",
}

var (
	skillHeadings = []string{
		"technical skills", "key skills", "core skills", "skills & tools", "skills and tools",
		"skill set", "skills", "technologies", "tools",
	}
	otherHeadings = []string{
		"career objective", "objective", "summary", "profile", "education",
		"work experience", "professional experience", "experience", "internships",
		"academic projects", "personal projects", "projects", "achievements", "accomplishments",
		"certifications", "hobbies", "interests", "languages", "declaration", "contact",
	}
)

type pdfSource interface {
	ExtractFromFile(ctx context.Context, filePath string) (*types.PDFDocument, error)
}

// RuleBasedResumeExtractor 基于规则的英文简历抽取：正则取联系方式，词表匹配技能
type RuleBasedResumeExtractor struct {
	pdf        pdfSource
	vocabulary map[string]struct{}
	region     string
	logger     zerolog.Logger
}

// ResumeExtractorOption 抽取器配置项
type ResumeExtractorOption func(*RuleBasedResumeExtractor)

// WithPhoneRegion 解析不带国家码号码时使用的默认地区，如 "IN"、"CN"
func WithPhoneRegion(region string) ResumeExtractorOption {
	return func(r *RuleBasedResumeExtractor) {
		if region != "" {
			r.region = strings.ToUpper(region)
		}
	}
}

// WithExtractorLogger 设置日志
func WithExtractorLogger(logger zerolog.Logger) ResumeExtractorOption {
	return func(r *RuleBasedResumeExtractor) {
		r.logger = logger
	}
}

// WithExtraSkills 追加技能词
func WithExtraSkills(skills ...string) ResumeExtractorOption {
	return func(r *RuleBasedResumeExtractor) {
		for _, s := range skills {
			r.addSkill(s)
		}
	}
}

// NewRuleBasedResumeExtractor 创建抽取器。pdf 负责把文件转为文本和页数
func NewRuleBasedResumeExtractor(pdf pdfSource, options ...ResumeExtractorOption) *RuleBasedResumeExtractor {
	r := &RuleBasedResumeExtractor{
		pdf:        pdf,
		vocabulary: make(map[string]struct{}),
		region:     "IN",
		logger:     zerolog.Nop(),
	}
	for _, s := range defaultSkills {
		r.addSkill(s)
	}
	for _, s := range recommender.AllKeywords() {
		r.addSkill(s)
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *RuleBasedResumeExtractor) addSkill(skill string) {
	skill = strings.ToLower(strings.TrimSpace(skill))
	if skill == "" {
		return
	}
	r.vocabulary[skill] = struct{}{}
}

// VocabularySize 词表大小
func (r *RuleBasedResumeExtractor) VocabularySize() int {
	return len(r.vocabulary)
}

// LoadSkillsFile 读取逗号分隔的技能词表，文件可有多行
func LoadSkillsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析技能词表 %s 失败: %w", path, err)
	}

	var skills []string
	for _, record := range records {
		for _, field := range record {
			if s := strings.TrimSpace(field); s != "" {
				skills = append(skills, s)
			}
		}
	}
	return skills, nil
}

// SkillsFilePath 运行时目录下的词表路径；目录为空时返回空串
func SkillsFilePath(runtimeEnvPath string) string {
	if runtimeEnvPath == "" {
		return ""
	}
	return filepath.Join(runtimeEnvPath, SkillsFileName)
}

// Extract 实现 processor.ResumeExtractor
func (r *RuleBasedResumeExtractor) Extract(ctx context.Context, filePath string) (*types.ExtractedResume, error) {
	doc, err := r.pdf.ExtractFromFile(ctx, filePath)
	if err != nil {
		return nil, err
	}
	text := NormalizeText(doc.Text)
	if text == "" {
		return nil, ErrNoText
	}

	resume := r.ExtractFromText(text)
	resume.PageCount = doc.PageCount

	r.logger.Debug().
		Str("file", filePath).
		Int("pages", resume.PageCount).
		Int("skills", len(resume.Skills)).
		Bool("has_email", resume.Email != "").
		Bool("has_phone", resume.Phone != "").
		Msg("简历字段抽取完成")
	return resume, nil
}

// ExtractFromText 从已规整的文本中抽取字段，不设置页数
func (r *RuleBasedResumeExtractor) ExtractFromText(text string) *types.ExtractedResume {
	return &types.ExtractedResume{
		Name:   extractName(text),
		Email:  emailRegex.FindString(text),
		Phone:  r.extractPhone(text),
		Skills: r.extractSkills(text),
		Text:   text,
	}
}

// NormalizeText 合并行内空白、去掉空行
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(spaceRegex.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// 姓名取前几行中第一行由 2 到 4 个纯字母单词组成的文本
func extractName(text string) string {
	lines := strings.SplitN(text, "\n", 6)
	for i, line := range lines {
		if i >= 5 {
			break
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		ok := true
		for _, w := range words {
			for _, c := range strings.TrimRight(w, ".") {
				if !unicode.IsLetter(c) && c != '-' && c != '\'' {
					ok = false
					break
				}
			}
			if !ok {
				break
			}
		}
		if ok && !looksLikeHeading(line) {
			return line
		}
	}
	return ""
}

var headingWords = map[string]struct{}{
	"resume": {}, "curriculum": {}, "vitae": {}, "objective": {}, "summary": {}, "profile": {},
	"education": {}, "skills": {}, "experience": {}, "projects": {}, "contact": {},
}

func looksLikeHeading(line string) bool {
	for _, w := range strings.Fields(strings.ToLower(line)) {
		if _, ok := headingWords[w]; ok {
			return true
		}
	}
	return false
}

func (r *RuleBasedResumeExtractor) extractPhone(text string) string {
	var fallback string
	for _, candidate := range phoneCandidates.FindAllString(text, -1) {
		candidate = strings.TrimSpace(candidate)
		num, err := phonenumbers.Parse(candidate, r.region)
		if err == nil && phonenumbers.IsValidNumber(num) {
			return phonenumbers.Format(num, phonenumbers.E164)
		}
		if fallback == "" {
			digits := countDigits(candidate)
			if digits >= 10 && digits <= 13 {
				fallback = candidate
			}
		}
	}
	return fallback
}

func countDigits(s string) int {
	n := 0
	for _, c := range s {
		if unicode.IsDigit(c) {
			n++
		}
	}
	return n
}

// 按出现顺序返回命中词表的技能，保留原文大小写，忽略大小写去重
func (r *RuleBasedResumeExtractor) extractSkills(text string) []string {
	skills := make([]string, 0)
	seen := make(map[string]struct{})
	inSkills := false

	for _, line := range strings.Split(text, "\n") {
		if _, rest, ok := recommender.MatchHeading(line, skillHeadings...); ok {
			inSkills, line = true, rest
		} else if _, rest, ok := recommender.MatchHeading(line, otherHeadings...); ok {
			inSkills, line = false, rest
		}

		tokens := tokenize(line)
		for i := range tokens {
			for n := maxSkillNgram; n >= 1; n-- {
				if i+n > len(tokens) {
					continue
				}
				phrase := strings.Join(tokens[i:i+n], " ")
				key := strings.ToLower(phrase)
				if _, prose := proseSkills[key]; prose && !inSkills {
					continue
				}
				if canonical, ok := skillAliases[key]; ok {
					phrase, key = canonical, strings.ToLower(canonical)
				}
				if _, ok := r.vocabulary[key]; !ok {
					continue
				}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				skills = append(skills, phrase)
			}
		}
	}
	return skills
}

// tokenize 按非字母数字切分，保留 + # . 以识别 c++、c#、node.js
func tokenize(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' || r == '-')
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".-")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
