package constants

import "time"

const (
	// AlgorithmVersion 输出结果中携带的算法版本号
	AlgorithmVersion = "3.0_multilingual"

	// DefaultOutputFilename 分析结果的默认输出文件名
	DefaultOutputFilename = "advanced_persona_analysis.json"

	// DefaultTimeBudget 单次运行的软性时间预算，超时后在检查点处提前收尾
	DefaultTimeBudget = 300 * time.Second

	// 综合相关性评分的四个分量权重，按设计固定为 40+30+20+10=100
	KeywordWeight    = 40.0
	SemanticWeight   = 30.0
	StructuralWeight = 20.0 // 结构分上限，每命中一个章节词 +5
	QualityWeight    = 10.0

	// StructuralPointsPerHit 每个命中的章节关键词贡献的结构分
	StructuralPointsPerHit = 5.0

	// 章节准入阈值：标题派生章节带有结构先验，阈值更低；正文块需要更高的分数
	HeadingSectionThreshold = 15.0
	BodySectionThreshold    = 20.0

	// SentenceScoreThreshold 内容精炼时句子的保留阈值（严格大于）
	SentenceScoreThreshold = 20.0

	// MinSubsectionContentRunes 参与子章节分析的最小内容长度（按码点计）
	MinSubsectionContentRunes = 20

	// 最终输出前的长度过滤边界与数量上限
	MinSectionContentRunes = 50
	MaxSectionContentRunes = 2000
	MinRefinedTextRunes    = 30
	MaxRefinedTextRunes    = 1000
	MaxSections            = 10
	MaxSubsections         = 15

	// ShortTextRunes 低于该长度的文本不做语言检测也不参与评分
	ShortTextRunes = 10

	// ContentPreviewRunes 输出中内容预览的截断长度
	ContentPreviewRunes = 200

	// RefineFallbackRunes 精炼兜底时截取原始内容的长度
	RefineFallbackRunes = 300

	// EmbeddingCachePrefix redis 向量缓存的键前缀
	EmbeddingCachePrefix = "docintel:emb:"
)
