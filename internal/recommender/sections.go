package recommender

import "strings"

// MatchHeading 判断一行是否为章节标题。整行等于标题，或以 "标题:" / "标题 -" 开头时命中，
// rest 为冒号或短横线之后的同行内容，如 "Skills: Go, Docker" 中的 "Go, Docker"
func MatchHeading(line string, headings ...string) (heading, rest string, ok bool) {
	line = strings.TrimSpace(line)
	for _, h := range headings {
		if len(line) < len(h) || !strings.EqualFold(line[:len(h)], h) {
			continue
		}
		after := line[len(h):]
		remainder := strings.TrimSpace(after)
		switch {
		case remainder == "":
			return h, "", true
		case remainder[0] == ':':
			return h, strings.TrimSpace(remainder[1:]), true
		case remainder[0] == '-' && after[0] == ' ':
			// "Objective-C" 不是标题
			return h, strings.TrimSpace(remainder[1:]), true
		}
	}
	return "", "", false
}
