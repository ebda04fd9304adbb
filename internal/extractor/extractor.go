// Package extractor 将 PDF 文档解析为带版式元数据的页面/文本块结构，
// 并为每个文本块标注语言、区分标题与正文。
package extractor

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"doc-intel-go/internal/langdetect"
	"doc-intel-go/internal/types"
)

// rawLine 提取策略产出的一行文本，尚未标注语言与分类
type rawLine struct {
	Text     string
	FontSize float64
	IsBold   bool
	FontName string
	BBox     types.BoundingBox
}

// ExtractionStrategy 单个 PDF 提取后端，失败时交给下一级策略
type ExtractionStrategy interface {
	Name() string
	// ExtractPages 返回按页组织的文本行
	ExtractPages(ctx context.Context, path string) ([][]rawLine, error)
}

// DocumentExtractor 文档内容提取器，聚合提取策略与语言检测
type DocumentExtractor struct {
	strategies []ExtractionStrategy
	detector   *langdetect.Detector
	logger     zerolog.Logger
}

// NewDocumentExtractor 装配提取器；strategies 按优先级排列
func NewDocumentExtractor(detector *langdetect.Detector, logger zerolog.Logger, strategies ...ExtractionStrategy) *DocumentExtractor {
	return &DocumentExtractor{
		strategies: strategies,
		detector:   detector,
		logger:     logger,
	}
}

// Extract 解析一份文档。任何失败都被就地吞掉并记录日志，
// 返回空的 DocumentContent，调用方可以继续处理其余文档。
func (e *DocumentExtractor) Extract(ctx context.Context, path string) *types.DocumentContent {
	content := &types.DocumentContent{
		Metadata: types.DocumentMetadata{
			Filename:            filepath.Base(path),
			ExtractionTimestamp: time.Now(),
			DetectedLanguages:   make(map[string]struct{}),
		},
	}

	var pages [][]rawLine
	extracted := false
	for _, s := range e.strategies {
		p, err := s.ExtractPages(ctx, path)
		if err != nil {
			e.logger.Warn().Err(err).Str("strategy", s.Name()).Str("file", path).
				Msg("提取策略失败，尝试下一级")
			continue
		}
		pages = p
		extracted = true
		break
	}
	if !extracted {
		e.logger.Error().Str("file", path).Msg("所有提取策略均失败，返回空内容")
		return content
	}

	for i, lines := range pages {
		page := types.Page{
			PageNumber: i + 1,
			Languages:  make(map[string]struct{}),
		}
		for _, line := range lines {
			lang := e.detector.Detect(line.Text)
			page.Languages[lang] = struct{}{}
			content.Metadata.DetectedLanguages[lang] = struct{}{}

			block := types.TextBlock{
				Text:     line.Text,
				FontSize: line.FontSize,
				IsBold:   line.IsBold,
				FontName: line.FontName,
				BBox:     line.BBox,
				Language: lang,
			}
			page.TextBlocks = append(page.TextBlocks, block)
			if IsHeading(block) {
				page.Headings = append(page.Headings, block)
			} else {
				page.BodyText = append(page.BodyText, block)
			}
		}
		content.Pages = append(content.Pages, page)
	}
	content.Metadata.TotalPages = len(content.Pages)
	return content
}
