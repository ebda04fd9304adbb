// Package knowledge 维护画像（persona）与任务（job-to-be-done）的关键词知识库。
// 知识库在进程启动时构建一次，之后只读，由调用方显式注入评分器。
package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PersonaProfile 读者画像：按语言组织的关键词权重表及画像元信息
type PersonaProfile struct {
	// Keywords 语言标签 -> 关键词 -> 权重（1-10）
	Keywords map[string]map[string]int `yaml:"keywords"`
	// Sections 该画像关注的规范章节名
	Sections []string `yaml:"sections"`
	// FocusAreas 画像的关注领域标签，原样透传到输出
	FocusAreas []string `yaml:"focus_areas"`
	// ContentWeights 内容权重标签，评分不使用，仅暴露给下游
	ContentWeights map[string]float64 `yaml:"content_weights"`
}

// JobProfile 任务画像
type JobProfile struct {
	Keywords map[string]map[string]int `yaml:"keywords"`
	// Focus 任务侧重点的人类可读描述
	Focus          string             `yaml:"focus"`
	ContentWeights map[string]float64 `yaml:"content_weights"`
}

// Base 注入式知识库，聚合画像、任务以及多语言的章节词/技术词表
type Base struct {
	Personas map[string]PersonaProfile `yaml:"personas"`
	Jobs     map[string]JobProfile     `yaml:"jobs"`
	// SectionKeywords 语言 -> 规范章节名列表，用于结构评分
	SectionKeywords map[string][]string `yaml:"section_keywords"`
	// TechnicalTerms 语言 -> 技术词列表，用于质量评分
	TechnicalTerms map[string][]string `yaml:"technical_terms"`
}

// technicalPersonas 质量评分中享受技术词加分的画像
var technicalPersonas = map[string]struct{}{
	"researcher": {},
	"developer":  {},
	"analyst":    {},
}

// Persona 查画像，未命中返回空画像而不是报错
func (b *Base) Persona(id string) PersonaProfile {
	return b.Personas[id]
}

// Job 查任务画像，未命中返回空画像
func (b *Base) Job(id string) JobProfile {
	return b.Jobs[id]
}

// KeywordsFor 返回合并后的关键词表：画像表与任务表按检测语言取值
// （缺失时回退英语表），键冲突时任务条目覆盖画像条目
func (b *Base) KeywordsFor(persona, job, language string) map[string]int {
	merged := make(map[string]int)
	for k, w := range keywordsByLanguage(b.Persona(persona).Keywords, language) {
		merged[k] = w
	}
	for k, w := range keywordsByLanguage(b.Job(job).Keywords, language) {
		merged[k] = w
	}
	return merged
}

func keywordsByLanguage(keywords map[string]map[string]int, language string) map[string]int {
	if keywords == nil {
		return nil
	}
	if m, ok := keywords[language]; ok {
		return m
	}
	return keywords["en"]
}

// SectionKeywordsFor 返回指定语言的规范章节词，缺失时回退英语
func (b *Base) SectionKeywordsFor(language string) []string {
	if s, ok := b.SectionKeywords[language]; ok {
		return s
	}
	return b.SectionKeywords["en"]
}

// TechnicalTermsFor 返回指定语言的技术词，缺失时回退英语
func (b *Base) TechnicalTermsFor(language string) []string {
	if s, ok := b.TechnicalTerms[language]; ok {
		return s
	}
	return b.TechnicalTerms["en"]
}

// PersonaFocusAreas 返回画像关注领域，用于子章节输出
func (b *Base) PersonaFocusAreas(persona string) []string {
	return b.Persona(persona).FocusAreas
}

// JobAlignment 返回任务侧重点描述，未知任务给通用描述
func (b *Base) JobAlignment(job string) string {
	if j, ok := b.Jobs[job]; ok && j.Focus != "" {
		return j.Focus
	}
	return "General content"
}

// IsTechnicalPersona 判断画像是否属于技术型画像
func IsTechnicalPersona(persona string) bool {
	_, ok := technicalPersonas[persona]
	return ok
}

// LoadFromFile 在内置默认知识库之上套用 YAML 覆盖文件，
// 只替换文件中点名的画像/任务，其余保持内置值
func LoadFromFile(path string) (*Base, error) {
	base := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file %s: %w", path, err)
	}

	var override Base
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge file %s: %w", path, err)
	}

	for id, p := range override.Personas {
		base.Personas[id] = p
	}
	for id, j := range override.Jobs {
		base.Jobs[id] = j
	}
	for lang, s := range override.SectionKeywords {
		base.SectionKeywords[lang] = s
	}
	for lang, s := range override.TechnicalTerms {
		base.TechnicalTerms[lang] = s
	}
	return base, nil
}
