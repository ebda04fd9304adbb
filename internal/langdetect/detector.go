// Package langdetect 提供级联式的文本语言识别：
// 统计模型（lingua）→ 独立分类器（whatlanggo）→ 字符模式兜底。
// 任何一级失败都只是换下一级，整个检测过程永不报错。
package langdetect

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
	"github.com/pemistahl/lingua-go"
)

// DefaultLanguage 检测不出结果时的默认语言标签
const DefaultLanguage = "en"

// shortTextRunes 低于该长度（去除首尾空白后按码点计）直接返回默认语言
const shortTextRunes = 10

// Strategy 单个语言识别策略，失败时返回错误交给下一级
type Strategy interface {
	Name() string
	Detect(text string) (string, error)
}

// Detector 级联语言检测器，对外是纯函数语义，可并发复用
type Detector struct {
	strategies []Strategy
}

// NewDetector 按固定顺序装配检测策略
func NewDetector() *Detector {
	return &Detector{
		strategies: []Strategy{
			newLinguaStrategy(),
			whatlangStrategy{},
			patternStrategy{},
		},
	}
}

// Detect 返回文本的语言标签，过短文本与全部策略落空时返回 "en"
func (d *Detector) Detect(text string) string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < shortTextRunes {
		return DefaultLanguage
	}
	for _, s := range d.strategies {
		if tag, err := s.Detect(text); err == nil {
			return tag
		}
	}
	return DefaultLanguage
}

// SupportedLanguages 返回模式表声明的语言标签，顺序即平局裁决顺序
func (d *Detector) SupportedLanguages() []string {
	tags := make([]string, 0, len(languagePatterns))
	for _, p := range languagePatterns {
		tags = append(tags, p.tag)
	}
	return tags
}

// IsSupported 判断语言标签是否在支持集合内
func (d *Detector) IsSupported(tag string) bool {
	for _, p := range languagePatterns {
		if p.tag == tag {
			return true
		}
	}
	return false
}

// linguaStrategy 基于 lingua 统计模型的主策略，结果确定性由库本身保证
type linguaStrategy struct {
	detector lingua.LanguageDetector
}

func newLinguaStrategy() *linguaStrategy {
	return &linguaStrategy{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Spanish,
				lingua.French,
				lingua.German,
				lingua.Hindi,
				lingua.Italian,
				lingua.Portuguese,
			).
			Build(),
	}
}

func (s *linguaStrategy) Name() string { return "lingua" }

func (s *linguaStrategy) Detect(text string) (string, error) {
	lang, ok := s.detector.DetectLanguageOf(text)
	if !ok {
		return "", errors.New("lingua could not determine language")
	}
	return strings.ToLower(lang.IsoCode639_1().String()), nil
}

// whatlangStrategy 第二级分类器，置信度不足视为失败
type whatlangStrategy struct{}

// iso639_3to1 whatlanggo 输出 ISO 639-3，换算成本系统使用的两字母标签
var iso639_3to1 = map[string]string{
	"eng": "en",
	"spa": "es",
	"fra": "fr",
	"deu": "de",
	"hin": "hi",
	"ita": "it",
	"por": "pt",
}

func (whatlangStrategy) Name() string { return "whatlang" }

func (whatlangStrategy) Detect(text string) (string, error) {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return "", errors.New("whatlang detection not reliable")
	}
	tag, ok := iso639_3to1[whatlanggo.LangToString(info.Lang)]
	if !ok {
		return "", errors.New("whatlang returned unmapped language")
	}
	return tag, nil
}
