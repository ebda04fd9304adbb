package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"

	"doc-intel-go/internal/types"
)

const (
	einoParseTimeout = 30 * time.Second

	// 纯文本回退没有版式信息，给出保守的合成样式：
	// 字号低于标题判定的字号门槛，行高用于维持块间的纵向次序
	fallbackFontSize   = 10.0
	fallbackLineHeight = 12.0
)

// einoTextStrategy 次级提取策略：用 Eino PDF Parser 逐页取纯文本。
// 拿不到字体与坐标，只能产出合成样式的正文行，但能让版式异常的
// 文档继续走完评分流程。
type einoTextStrategy struct {
	parser *pdf.PDFParser
}

// NewEinoTextStrategy 初始化 Eino 纯文本提取策略，按页切分
func NewEinoTextStrategy(ctx context.Context) (ExtractionStrategy, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino pdf parser: %w", err)
	}
	return &einoTextStrategy{parser: p}, nil
}

func (e *einoTextStrategy) Name() string { return "eino-text" }

func (e *einoTextStrategy) ExtractPages(ctx context.Context, path string) ([][]rawLine, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(ctx, einoParseTimeout)
	defer cancel()

	docs, err := e.parser.Parse(ctx, file, einoParser.WithURI(path))
	if err != nil {
		return nil, fmt.Errorf("eino pdf parse failed for %s: %w", path, err)
	}

	var pages [][]rawLine
	for _, doc := range docs {
		var lines []rawLine
		for idx, raw := range strings.Split(doc.Content, "\n") {
			text := strings.TrimSpace(raw)
			if text == "" {
				continue
			}
			top := float64(idx) * fallbackLineHeight
			lines = append(lines, rawLine{
				Text:     text,
				FontSize: fallbackFontSize,
				BBox: types.BoundingBox{
					Y0: top,
					Y1: top + fallbackLineHeight,
				},
			})
		}
		pages = append(pages, lines)
	}
	return pages, nil
}
