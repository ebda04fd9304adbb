package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"doc-intel-go/internal/knowledge"
	"doc-intel-go/internal/langdetect"
	"doc-intel-go/internal/types"
)

func newAnalyzer(embedder TextEmbedder) *RelevanceAnalyzer {
	return NewRelevanceAnalyzer(knowledge.Default(), langdetect.NewDetector(), embedder, zerolog.Nop())
}

// mockEmbedder 返回固定向量的测试桩
type mockEmbedder struct {
	vectors [][]float64
	err     error
}

func (m mockEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.vectors, nil
}

func TestScoreShortTextIsZero(t *testing.T) {
	a := newAnalyzer(nil)
	ctx := context.Background()

	assert.Zero(t, a.Score(ctx, "", "researcher", "literature_review"))
	assert.Zero(t, a.Score(ctx, "   short   ", "researcher", "literature_review"))
	assert.Zero(t, a.Score(ctx, "123456789", "researcher", "literature_review"), "9 个字符仍低于下限")
}

func TestScoreAlwaysInRange(t *testing.T) {
	a := newAnalyzer(nil)
	ctx := context.Background()

	texts := []string{
		"Methodology: This study used a randomized controlled experiment with statistical analysis of variance.",
		"completely unrelated text about gardening tulips in spring",
		strings.Repeat("methodology analysis results discussion conclusion data statistics findings ", 40),
	}
	for _, text := range texts {
		score := a.Score(ctx, text, "researcher", "literature_review")
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestScoreMethodologyScenario(t *testing.T) {
	a := newAnalyzer(nil)
	text := "Methodology: This study used a randomized controlled experiment with statistical analysis of variance."

	score := a.Score(context.Background(), text, "researcher", "literature_review")

	// 关键词分量必须命中（methodology/experiment/analysis/study 均在合并表内），
	// 结构分量命中 methodology，最终得分需越过标题准入阈值 15
	keywords := knowledge.Default().KeywordsFor("researcher", "literature_review", "en")
	assert.Positive(t, keywordScore(strings.ToLower(text), keywords))
	assert.Greater(t, score, 15.0)
}

func TestKeywordScoreEmptyTable(t *testing.T) {
	assert.Zero(t, keywordScore("any text at all", nil))
	assert.Zero(t, keywordScore("any text at all", map[string]int{}))
}

func TestStructureScoreCapped(t *testing.T) {
	a := newAnalyzer(nil)

	// 五个规范章节词全命中也只给 20 分
	text := "introduction methodology results discussion conclusion"
	assert.Equal(t, 20.0, a.structureScore(text, "en"))
	assert.Equal(t, 5.0, a.structureScore("the methodology section", "en"))
	assert.Zero(t, a.structureScore("nothing structural here", "en"))
}

func TestQualityScoreComponents(t *testing.T) {
	a := newAnalyzer(nil)

	// 长度 50-500 (+5)、句子数 1-5 (+3)、技术画像且含技术词 (+2)
	text := "The analysis of the data shows a clear and reproducible outcome."
	assert.Equal(t, 10.0, a.qualityScore(text, "en", "researcher"))
	// 非技术画像拿不到技术词加分
	assert.Equal(t, 8.0, a.qualityScore(text, "en", "student"))
}

func TestSemanticComponentWithEmbedder(t *testing.T) {
	text := "Methodology: This study used a randomized controlled experiment with statistical analysis of variance."
	ctx := context.Background()

	base := newAnalyzer(nil).Score(ctx, text, "researcher", "literature_review")

	// 完全同向的向量 → 相似度 1 → 语义分量满额 30
	identical := newAnalyzer(mockEmbedder{vectors: [][]float64{{1, 2, 3}, {1, 2, 3}}})
	withSemantic := identical.Score(ctx, text, "researcher", "literature_review")
	assert.InDelta(t, base+30, withSemantic, 0.001)

	// 向量服务报错时语义分量按 0 处理，不中断评分
	failing := newAnalyzer(mockEmbedder{err: errors.New("service down")})
	assert.InDelta(t, base, failing.Score(ctx, text, "researcher", "literature_review"), 0.001)
}

func TestRefineSelectsTopSentences(t *testing.T) {
	a := newAnalyzer(nil)
	content := "The methodology follows a randomized controlled experiment with statistical analysis. " +
		"Cats like to sleep all day. " +
		"The results and discussion summarize the findings of the literature review research."

	refined := a.Refine(context.Background(), content, "researcher", "literature_review")
	assert.NotEmpty(t, refined)
	assert.NotContains(t, refined, "Cats like to sleep", "低相关句子应被剔除")
}

func TestRefineFallbackKeepsContent(t *testing.T) {
	a := newAnalyzer(nil)
	// 任何句子都不过 20 分 → 退回前 300 个码点
	content := "Tulips bloom in spring. Bees visit flowers."

	refined := a.Refine(context.Background(), content, "researcher", "literature_review")
	assert.Equal(t, content, refined, "内容不足 300 码点时原样返回")
	assert.NotEmpty(t, refined, "只要输入非空，精炼结果不应为空")
}

func TestRefineFallbackTruncatesLongContent(t *testing.T) {
	a := newAnalyzer(nil)
	content := strings.Repeat("tulip garden bloom ", 30) // 570 字符，无任何相关词

	refined := a.Refine(context.Background(), content, "student", "exam_preparation")
	assert.Equal(t, firstRunes(content, 300), refined)
}

func TestExplainMentionsKeywordsAndScore(t *testing.T) {
	a := newAnalyzer(nil)
	section := types.Section{
		SectionTitle:   "Methodology Overview",
		Content:        "A detailed experiment with statistical analysis of the collected data and results.",
		RelevanceScore: 62.5,
		Language:       "en",
	}

	reasoning := a.Explain(section, "researcher", "literature_review")
	assert.Contains(t, reasoning, "Contains relevant keywords:")
	assert.Contains(t, reasoning, "relevance score 62.5")
	assert.Contains(t, reasoning, "High relevance score")

	// 关键词子句最多列 3 个
	head := strings.SplitN(reasoning, ";", 2)[0]
	assert.LessOrEqual(t, strings.Count(head, ","), 2)
}

func TestExplainTiers(t *testing.T) {
	a := newAnalyzer(nil)
	base := types.Section{SectionTitle: "t", Content: "c", Language: "en"}

	moderate := base
	moderate.RelevanceScore = 40
	assert.Contains(t, a.Explain(moderate, "researcher", "literature_review"), "Moderate relevance score")

	low := base
	low.RelevanceScore = 20
	reasoning := a.Explain(low, "researcher", "literature_review")
	assert.NotContains(t, reasoning, "High relevance")
	assert.NotContains(t, reasoning, "Moderate relevance")
}

func TestExplainLocalizedClause(t *testing.T) {
	a := newAnalyzer(nil)
	section := types.Section{
		SectionTitle:   "Metodología",
		Content:        "análisis de datos",
		RelevanceScore: 35,
		Language:       "es",
	}
	assert.Contains(t, a.Explain(section, "researcher", "literature_review"), "puntuación de relevancia 35")
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float64{0, 0}, []float64{1, 2}))
	assert.Zero(t, cosineSimilarity([]float64{1}, []float64{1, 2}), "长度不一致按 0 处理")
	assert.Zero(t, cosineSimilarity(nil, nil))
}
