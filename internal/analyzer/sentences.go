package analyzer

import (
	"strings"
	"unicode"
)

// sentenceTerminators 句子结束符，包含天城文的句号（danda）
const sentenceTerminators = ".!?।"

// SplitSentences 把文本切分为句子。只在结束符后面紧跟空白或
// 文本末尾时断句，避免把 "3.5"、"1.1 Overview" 这类序号切碎。
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if !strings.ContainsRune(sentenceTerminators, r) {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// firstRunes 取前 n 个码点，文本不足时原样返回
func firstRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
