// Package analyzer 实现面向画像与任务的综合相关性评分：
// 关键词（40）+ 语义相似度（30）+ 结构（20，封顶）+ 质量（10），
// 总分截断到 [0,100]。评分对相同输入是纯函数（语义分量依赖可选的
// 外部向量服务，不可用时恒为 0）。
package analyzer

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"doc-intel-go/internal/constants"
	"doc-intel-go/internal/knowledge"
	"doc-intel-go/internal/langdetect"
	"doc-intel-go/internal/types"
)

// RelevanceAnalyzer 相关性评分核心
type RelevanceAnalyzer struct {
	detector *langdetect.Detector
	kb       *knowledge.Base
	embedder TextEmbedder // 可为 nil，表示无语义分量
	logger   zerolog.Logger
}

// NewRelevanceAnalyzer 创建评分器；embedder 传 nil 则语义分量降级
func NewRelevanceAnalyzer(kb *knowledge.Base, detector *langdetect.Detector, embedder TextEmbedder, logger zerolog.Logger) *RelevanceAnalyzer {
	return &RelevanceAnalyzer{
		detector: detector,
		kb:       kb,
		embedder: embedder,
		logger:   logger,
	}
}

// Score 计算文本对 (persona, job) 的相关性，返回 [0,100]。
// 去除首尾空白后不足 10 个码点的文本直接得 0。
func (a *RelevanceAnalyzer) Score(ctx context.Context, text, persona, job string) float64 {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < constants.ShortTextRunes {
		return 0
	}

	language := a.detector.Detect(text)
	lower := strings.ToLower(text)
	keywords := a.kb.KeywordsFor(persona, job, language)

	score := keywordScore(lower, keywords)
	score += a.semanticScore(ctx, text, persona, job, keywords)
	score += a.structureScore(lower, language)
	score += a.qualityScore(text, language, persona)

	return math.Min(100, math.Max(0, score))
}

// keywordScore 命中关键词的权重和除以全表权重和，再乘以分量权重。
// 奖励的是画像/任务词汇的相对密度，不是命中的绝对数量。
func keywordScore(lower string, keywords map[string]int) float64 {
	hit := 0
	total := 0
	for keyword, weight := range keywords {
		total += weight
		if strings.Contains(lower, keyword) {
			hit += weight
		}
	}
	if total == 0 {
		total = 1
	}
	return float64(hit) / float64(total) * constants.KeywordWeight
}

// semanticScore 余弦相似度 × 分量权重。向量服务缺席或失败时
// 记 warn 后返回 0，评分继续。
func (a *RelevanceAnalyzer) semanticScore(ctx context.Context, text, persona, job string, keywords map[string]int) float64 {
	if a.embedder == nil {
		return 0
	}

	reference := persona + " " + job + " " + strings.Join(sortedKeys(keywords), " ")
	vectors, err := a.embedder.EmbedStrings(ctx, []string{text, reference})
	if err != nil {
		a.logger.Warn().Err(err).Msg("语义相似度计算失败，该分量按 0 处理")
		return 0
	}
	if len(vectors) < 2 {
		a.logger.Warn().Int("vectors", len(vectors)).Msg("向量服务返回数量不足，语义分量按 0 处理")
		return 0
	}
	return cosineSimilarity(vectors[0], vectors[1]) * constants.SemanticWeight
}

// structureScore 按检测语言查规范章节词，每命中一个 +5，封顶 20
func (a *RelevanceAnalyzer) structureScore(lower, language string) float64 {
	score := 0.0
	for _, section := range a.kb.SectionKeywordsFor(language) {
		if strings.Contains(lower, section) {
			score += constants.StructuralPointsPerHit
		}
	}
	return math.Min(score, constants.StructuralWeight)
}

// qualityScore 文本质量分：长度适中 +5/+3，句子数 1-5 +3，
// 技术型画像命中技术词再 +2
func (a *RelevanceAnalyzer) qualityScore(text, language, persona string) float64 {
	score := 0.0

	length := utf8.RuneCountInString(text)
	switch {
	case length >= 50 && length <= 500:
		score += 5
	case length >= 20 && length <= 1000:
		score += 3
	}

	if n := len(SplitSentences(text)); n >= 1 && n <= 5 {
		score += 3
	}

	if knowledge.IsTechnicalPersona(persona) {
		lower := strings.ToLower(text)
		for _, term := range a.kb.TechnicalTermsFor(language) {
			if strings.Contains(lower, term) {
				score += 2
				break
			}
		}
	}
	return score
}

// Refine 面向画像精炼内容：逐句评分后按分数降序保留最高的几句
// （researcher/analyst 保留 4 句，其余 3 句），并剔除得分不超过 20
// 的句子；全部落选时退回原始内容的前 300 个码点。
func (a *RelevanceAnalyzer) Refine(ctx context.Context, content, persona, job string) string {
	sentences := SplitSentences(content)

	type scoredSentence struct {
		text  string
		score float64
	}
	scored := make([]scoredSentence, 0, len(sentences))
	for _, s := range sentences {
		scored = append(scored, scoredSentence{text: s, score: a.Score(ctx, s, persona, job)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	maxSentences := 3
	if persona == "researcher" || persona == "analyst" {
		maxSentences = 4
	}

	var selected []string
	for i, s := range scored {
		if i >= maxSentences {
			break
		}
		if s.score > constants.SentenceScoreThreshold {
			selected = append(selected, s.text)
		}
	}

	if len(selected) == 0 {
		return firstRunes(content, constants.RefineFallbackRunes)
	}
	return strings.Join(selected, " ")
}

// scoreClauseByLanguage 选中理由里的分数陈述，按语言本地化
var scoreClauseByLanguage = map[string]string{
	"en": "Content in English with relevance score %s",
	"es": "Contenido en español con puntuación de relevancia %s",
	"fr": "Contenu en français avec score de pertinence %s",
	"de": "Inhalt auf Deutsch mit Relevanzbewertung %s",
	"hi": "हिंदी में सामग्री जिसकी प्रासंगिकता स्कोर %s है",
}

// Explain 生成章节被选中的人类可读理由，分号连接。
// 纯描述性输出，不参与排序。
func (a *RelevanceAnalyzer) Explain(section types.Section, persona, job string) string {
	keywords := a.kb.KeywordsFor(persona, job, section.Language)
	titleLower := strings.ToLower(section.SectionTitle)
	contentLower := strings.ToLower(section.Content)

	var reasons []string

	var matched []string
	for _, keyword := range sortedKeys(keywords) {
		if strings.Contains(titleLower, keyword) || strings.Contains(contentLower, keyword) {
			matched = append(matched, keyword)
			if len(matched) == 3 {
				break
			}
		}
	}
	if len(matched) > 0 {
		reasons = append(reasons, "Contains relevant keywords: "+strings.Join(matched, ", "))
	}

	clause, ok := scoreClauseByLanguage[section.Language]
	if !ok {
		clause = scoreClauseByLanguage["en"]
	}
	scoreText := formatScore(section.RelevanceScore)
	reasons = append(reasons, fmt.Sprintf(clause, scoreText))

	if utf8.RuneCountInString(section.Content) > 100 {
		reasons = append(reasons, "Contains substantial content for detailed analysis")
	}

	if section.RelevanceScore > 50 {
		reasons = append(reasons, fmt.Sprintf("High relevance score (%s) indicates strong semantic alignment", scoreText))
	} else if section.RelevanceScore > 30 {
		reasons = append(reasons, fmt.Sprintf("Moderate relevance score (%s) shows good content value", scoreText))
	}

	return strings.Join(reasons, "; ")
}

// sortedKeys 关键词表的键按字典序返回，保证输出可复现
func sortedKeys(keywords map[string]int) []string {
	keys := make([]string, 0, len(keywords))
	for k := range keywords {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// cosineSimilarity 向量余弦相似度，零向量或长度不一致时返回 0
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
