package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"doc-intel-go/internal/types"
)

// headingPatterns 标题的文字模式："1. Xxx"、"1.1 Xxx"、全大写、"Chapter N"、"Section N"
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\.\s+[A-Z]`),
	regexp.MustCompile(`^\d+\.\d+\s+[A-Z]`),
	regexp.MustCompile(`^[A-Z][A-Z\s]{3,}$`),
	regexp.MustCompile(`^Chapter\s+\d+`),
	regexp.MustCompile(`^Section\s+\d+`),
}

// headingKeywords 常见章节名，命中即视为标题
var headingKeywords = []string{
	"introduction", "overview", "summary", "conclusion", "abstract",
	"background", "methodology", "results", "discussion", "references",
}

// IsHeading 判断一个文本块是否为标题。规则按序取首个命中：
// 长度界限 → 字号加粗 → 文字模式 → 章节关键词。
// 对相同的 (文本, 字号, 加粗) 输入结果恒定。
func IsHeading(block types.TextBlock) bool {
	text := strings.TrimSpace(block.Text)
	length := utf8.RuneCountInString(text)
	if length < 3 || length > 200 {
		return false
	}

	if block.FontSize > 12 && block.IsBold {
		return true
	}

	for _, p := range headingPatterns {
		if p.MatchString(text) {
			return true
		}
	}

	lower := strings.ToLower(text)
	for _, kw := range headingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// AssociateContent 为标题收集关联正文：取同页中纵向位置在标题之下
// （坐标为左上角原点，y 值更大即更靠下）的正文块；同页无结果时
// 回退到下一页开头的正文块。最多取前 3 块，用空格连接。
//
// 这是基于版面位置的近似：不感知分栏，也不在下一个标题处截断，
// 版面不规则时可能吸入不相关的尾部文本。
func AssociateContent(heading types.TextBlock, bodyText []types.TextBlock, pages []types.Page, pageNumber int) string {
	var collected []string

	for _, block := range bodyText {
		if block.BBox.Y0 > heading.BBox.Y0 {
			collected = append(collected, block.Text)
		}
	}

	// pageNumber 从 1 开始，因此 pages[pageNumber] 即下一页
	if len(collected) == 0 && pageNumber < len(pages) {
		for _, block := range pages[pageNumber].BodyText {
			collected = append(collected, block.Text)
		}
	}

	if len(collected) > 3 {
		collected = collected[:3]
	}
	return strings.Join(collected, " ")
}
