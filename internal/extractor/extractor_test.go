package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-intel-go/internal/langdetect"
)

// stubStrategy 测试用提取策略
type stubStrategy struct {
	pages [][]rawLine
	err   error
}

func (s stubStrategy) Name() string { return "stub" }

func (s stubStrategy) ExtractPages(ctx context.Context, path string) ([][]rawLine, error) {
	return s.pages, s.err
}

func TestExtractClassifiesAndTagsBlocks(t *testing.T) {
	stub := stubStrategy{pages: [][]rawLine{
		{
			{Text: "1. Introduction to the Study", FontSize: 16, IsBold: true},
			{Text: "This research presents a detailed statistical analysis of the collected data.", FontSize: 10},
		},
		{
			{Text: "La metodología de esta investigación sigue un diseño experimental riguroso.", FontSize: 10},
		},
	}}
	e := NewDocumentExtractor(langdetect.NewDetector(), zerolog.Nop(), stub)

	content := e.Extract(context.Background(), "/tmp/sample.pdf")
	require.Len(t, content.Pages, 2)
	assert.Equal(t, 2, content.Metadata.TotalPages)
	assert.Equal(t, "sample.pdf", content.Metadata.Filename)

	page1 := content.Pages[0]
	assert.Equal(t, 1, page1.PageNumber)
	require.Len(t, page1.Headings, 1)
	require.Len(t, page1.BodyText, 1)
	assert.Equal(t, "en", page1.Headings[0].Language)

	page2 := content.Pages[1]
	require.Len(t, page2.BodyText, 1)
	assert.Equal(t, "es", page2.BodyText[0].Language)

	assert.Contains(t, content.Metadata.DetectedLanguages, "en")
	assert.Contains(t, content.Metadata.DetectedLanguages, "es")
}

func TestExtractFallsThroughStrategies(t *testing.T) {
	failing := stubStrategy{err: errors.New("primary backend unavailable")}
	working := stubStrategy{pages: [][]rawLine{
		{{Text: "Summary of findings and conclusions.", FontSize: 10}},
	}}
	e := NewDocumentExtractor(langdetect.NewDetector(), zerolog.Nop(), failing, working)

	content := e.Extract(context.Background(), "doc.pdf")
	require.Len(t, content.Pages, 1)
	assert.NotEmpty(t, content.Pages[0].TextBlocks)
}

func TestExtractAllStrategiesFailYieldsEmptyContent(t *testing.T) {
	failing := stubStrategy{err: errors.New("broken")}
	e := NewDocumentExtractor(langdetect.NewDetector(), zerolog.Nop(), failing, failing)

	content := e.Extract(context.Background(), "broken.pdf")
	assert.Empty(t, content.Pages)
	assert.Equal(t, 0, content.Metadata.TotalPages)
	assert.Equal(t, "broken.pdf", content.Metadata.Filename)
	assert.Empty(t, content.Metadata.DetectedLanguages)
}

func TestAssembleLinesMergesRunsIntoLines(t *testing.T) {
	texts := []pdf.Text{
		// 第一行：两个相邻的文本段加一个需要补空格的段
		{S: "Hel", X: 10, Y: 700, W: 15, Font: "Helvetica-Bold", FontSize: 16},
		{S: "lo", X: 25, Y: 700, W: 10, Font: "Helvetica-Bold", FontSize: 16},
		{S: "World", X: 60, Y: 700, W: 30, Font: "Helvetica-Bold", FontSize: 16},
		// 第二行
		{S: "body text", X: 10, Y: 680, W: 50, Font: "Helvetica", FontSize: 10},
	}

	lines := assembleLines(texts, 792)
	require.Len(t, lines, 2)

	// Y 更大的（页面更靠上的）行排在前面
	assert.Equal(t, "Hello World", lines[0].Text)
	assert.True(t, lines[0].IsBold, "字体名含 Bold 应识别为加粗")
	assert.Equal(t, 16.0, lines[0].FontSize)
	assert.Equal(t, "body text", lines[1].Text)
	assert.False(t, lines[1].IsBold)

	// 坐标换算为左上角原点后，靠下的行 Y0 更大
	assert.Greater(t, lines[1].BBox.Y0, lines[0].BBox.Y0)
}

func TestAssembleLinesSkipsEmpty(t *testing.T) {
	texts := []pdf.Text{
		{S: "   ", X: 10, Y: 700, W: 5, Font: "Helvetica", FontSize: 10},
	}
	assert.Empty(t, assembleLines(texts, 792))
	assert.Empty(t, assembleLines(nil, 792))
}
