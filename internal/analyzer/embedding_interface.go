package analyzer

import "context"

// TextEmbedder 文本向量化接口。实现必须可并发调用；
// 评分器允许 embedder 为 nil，此时语义分量降级为 0。
type TextEmbedder interface {
	// EmbedStrings 将一批文本转换为定长向量
	EmbedStrings(ctx context.Context, texts []string) ([][]float64, error)
}
