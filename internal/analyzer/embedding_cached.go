package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"doc-intel-go/internal/constants"
)

// CachedEmbedder 给 TextEmbedder 加一层 redis 读穿缓存。
// 缓存键包含模型名，切换模型后不会命中旧模型的向量。
// 缓存任何读写失败都只记日志并直接走内层调用，不影响评分。
type CachedEmbedder struct {
	inner  TextEmbedder
	client *redis.Client
	model  string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedEmbedder 包装内层 embedder；model 参与缓存键，
// client 由调用方负责关闭
func NewCachedEmbedder(inner TextEmbedder, client *redis.Client, model string, ttl time.Duration, logger zerolog.Logger) *CachedEmbedder {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedEmbedder{
		inner:  inner,
		client: client,
		model:  model,
		ttl:    ttl,
		logger: logger,
	}
}

// EmbedStrings 实现 TextEmbedder：先查缓存，缺的批量走内层再回填
func (c *CachedEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	var missingTexts []string
	var missingIdx []int

	for i, text := range texts {
		if v, ok := c.lookup(ctx, text); ok {
			vectors[i] = v
			continue
		}
		missingTexts = append(missingTexts, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missingTexts) == 0 {
		return vectors, nil
	}

	fresh, err := c.inner.EmbedStrings(ctx, missingTexts)
	if err != nil {
		return nil, err
	}
	for j, idx := range missingIdx {
		vectors[idx] = fresh[j]
		c.store(ctx, texts[idx], fresh[j])
	}
	return vectors, nil
}

func (c *CachedEmbedder) lookup(ctx context.Context, text string) ([]float64, bool) {
	data, err := c.client.Get(ctx, cacheKey(c.model, text)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("向量缓存读取失败，改走远端")
		}
		return nil, false
	}
	var vector []float64
	if err := json.Unmarshal(data, &vector); err != nil {
		c.logger.Warn().Err(err).Msg("向量缓存内容损坏，忽略该条")
		return nil, false
	}
	return vector, true
}

func (c *CachedEmbedder) store(ctx context.Context, text string, vector []float64) {
	data, err := json.Marshal(vector)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(c.model, text), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("向量缓存写入失败")
	}
}

func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "|" + text))
	return constants.EmbeddingCachePrefix + hex.EncodeToString(sum[:])
}
