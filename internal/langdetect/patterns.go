package langdetect

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// languagePattern 某语言允许的字母表字符类
type languagePattern struct {
	tag string
	re  *regexp.Regexp
}

// languagePatterns 固定枚举顺序，平局时先声明的语言胜出
var languagePatterns = []languagePattern{
	{"en", regexp.MustCompile(`[a-zA-Z\s]+`)},
	{"es", regexp.MustCompile(`[a-zA-ZáéíóúñüÁÉÍÓÚÑÜ\s]+`)},
	{"fr", regexp.MustCompile(`[a-zA-ZàâäéèêëïîôöùûüÿçÀÂÄÉÈÊËÏÎÔÖÙÛÜŸÇ\s]+`)},
	{"de", regexp.MustCompile(`[a-zA-ZäöüßÄÖÜ\s]+`)},
	{"hi", regexp.MustCompile(`[\x{0900}-\x{097F}\s]+`)},
	{"it", regexp.MustCompile(`[a-zA-ZàèéìíîòóùÀÈÉÌÍÎÒÓÙ\s]+`)},
	{"pt", regexp.MustCompile(`[a-zA-ZàáâãçéêíóôõúÀÁÂÃÇÉÊÍÓÔÕÚ\s]+`)},
}

// patternStrategy 末级兜底：统计各语言字母表的匹配密度（匹配数/文本长度），
// 取密度最高者；没有任何匹配时返回默认语言。纯静态表，无副作用。
type patternStrategy struct{}

func (patternStrategy) Name() string { return "pattern" }

func (patternStrategy) Detect(text string) (string, error) {
	lowered := strings.ToLower(text)
	length := utf8.RuneCountInString(lowered)
	if length == 0 {
		return DefaultLanguage, nil
	}

	best := DefaultLanguage
	bestDensity := 0.0
	found := false
	for _, p := range languagePatterns {
		matches := len(p.re.FindAllString(lowered, -1))
		if matches == 0 {
			continue
		}
		density := float64(matches) / float64(length)
		if !found || density > bestDensity {
			best = p.tag
			bestDensity = density
			found = true
		}
	}
	return best, nil
}
