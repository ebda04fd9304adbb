package extractor

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"doc-intel-go/internal/types"
)

// defaultPageHeight 取不到 MediaBox 时按 US Letter 高度处理
const defaultPageHeight = 792.0

// styledPDFStrategy 首选提取策略：用 ledongthuc/pdf 读取带字体与
// 坐标信息的文本段，聚合成行。坐标统一换算为左上角原点。
type styledPDFStrategy struct{}

// NewStyledPDFStrategy 创建带版式信息的 PDF 提取策略
func NewStyledPDFStrategy() ExtractionStrategy {
	return styledPDFStrategy{}
}

func (styledPDFStrategy) Name() string { return "styled-pdf" }

func (styledPDFStrategy) ExtractPages(ctx context.Context, path string) (pages [][]rawLine, err error) {
	// 底层解析器对畸形 PDF 会 panic，这里统一转成 error
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("styled pdf extraction panicked on %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, assembleLines(page.Content().Text, pageHeight(page)))
	}
	return pages, nil
}

// pageHeight 沿 Parent 链查 MediaBox，拿不到时用默认页高
func pageHeight(p pdf.Page) float64 {
	v := p.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			if h := mb.Index(3).Float64() - mb.Index(1).Float64(); h > 0 {
				return h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageHeight
}

// assembleLines 把离散文本段按基线 Y 聚成行，行内按 X 排序拼接。
// 行的样式取首个文本段（与原始提取器取 primary span 的做法一致）。
func assembleLines(texts []pdf.Text, height float64) []rawLine {
	if len(texts) == 0 {
		return nil
	}

	groups := make(map[float64][]pdf.Text)
	for _, t := range texts {
		key := math.Round(t.Y*10) / 10
		groups[key] = append(groups[key], t)
	}

	// PDF 坐标原点在左下角，Y 降序即自上而下的阅读顺序
	ys := make([]float64, 0, len(groups))
	for y := range groups {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ys)))

	var lines []rawLine
	for _, y := range ys {
		runs := groups[y]
		sort.Slice(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

		first := runs[0]
		var sb strings.Builder
		lastEnd := first.X
		minX, maxX := first.X, first.X
		for _, r := range runs {
			if r.X-lastEnd > wordGap(first.FontSize) && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(r.S)
			lastEnd = r.X + r.W
			if r.X < minX {
				minX = r.X
			}
			if lastEnd > maxX {
				maxX = lastEnd
			}
		}

		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		fontSize := math.Round(first.FontSize*10) / 10
		lines = append(lines, rawLine{
			Text:     text,
			FontSize: fontSize,
			IsBold:   isBoldFont(first.Font),
			FontName: first.Font,
			BBox: types.BoundingBox{
				X0: minX,
				Y0: height - (y + first.FontSize),
				X1: maxX,
				Y1: height - y,
			},
		})
	}
	return lines
}

// wordGap 相邻文本段的水平间距超过该值时补一个空格
func wordGap(fontSize float64) float64 {
	if fontSize <= 0 {
		return 1.0
	}
	return fontSize * 0.25
}

// isBoldFont PDF 里加粗体现在字体名上（如 "Helvetica-Bold"）
func isBoldFont(font string) bool {
	lower := strings.ToLower(font)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy")
}
