// Package processor 编排整条分析流水线：
// 校验输入 → 逐文档提取 → 章节评分 → 子章节精炼 → 汇总 → 排序过滤 → 组装结果。
// 任何文档级失败都只降级不中断；顶层意外错误转换为携带错误信息的空结果。
package processor

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"doc-intel-go/internal/analyzer"
	"doc-intel-go/internal/constants"
	"doc-intel-go/internal/extractor"
	"doc-intel-go/internal/knowledge"
	"doc-intel-go/internal/langdetect"
	"doc-intel-go/internal/types"
)

// Components 聚合流水线的功能组件，便于集中装配与测试替换
type Components struct {
	Extractor *extractor.DocumentExtractor
	Analyzer  *analyzer.RelevanceAnalyzer
	Detector  *langdetect.Detector
	Knowledge *knowledge.Base
}

// Settings 纯配置项
type Settings struct {
	TimeBudget time.Duration
	Logger     zerolog.Logger
}

// PersonaProcessor 流水线编排器，依赖全部叶子组件，反向无依赖
type PersonaProcessor struct {
	components Components
	settings   Settings
}

// New 创建编排器
func New(components Components, settings Settings) *PersonaProcessor {
	if settings.TimeBudget <= 0 {
		settings.TimeBudget = constants.DefaultTimeBudget
	}
	return &PersonaProcessor{components: components, settings: settings}
}

// ProcessDocuments 处理输入目录下的全部 PDF，返回结构完整的结果。
// 配置类错误（目录缺失、无 PDF）与顶层意外错误都落到空结果 + 错误信息，
// 不向调用方抛出。
func (p *PersonaProcessor) ProcessDocuments(ctx context.Context, inputDir, persona, job string) (result *types.AnalysisResult) {
	deadline := NewDeadline(p.settings.TimeBudget)
	log := p.settings.Logger

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("处理过程出现意外错误，返回空结果")
			result = p.emptyResult(persona, job, fmt.Sprintf("unexpected error: %v", r))
		}
	}()

	if _, err := os.Stat(inputDir); err != nil {
		return p.emptyResult(persona, job, fmt.Sprintf("Input directory not found: %s", inputDir))
	}

	pdfFiles, err := listPDFFiles(inputDir)
	if err != nil {
		return p.emptyResult(persona, job, fmt.Sprintf("Failed to list input directory: %v", err))
	}
	if len(pdfFiles) == 0 {
		return p.emptyResult(persona, job, "No PDF files found")
	}

	log.Info().Str("persona", persona).Str("job", job).Int("documents", len(pdfFiles)).
		Msg("开始处理文档")

	var allSections []types.Section
	var allSubsections []types.Subsection
	detectedLanguages := make(map[string]struct{})

	for _, file := range pdfFiles {
		if deadline.Exceeded() {
			log.Warn().Str("document", file).Msg("时间预算耗尽，跳过剩余文档")
			break
		}

		log.Info().Str("document", file).Msg("处理文档")
		content := p.components.Extractor.Extract(ctx, filepath.Join(inputDir, file))
		content.Metadata.Filename = file

		for lang := range content.Metadata.DetectedLanguages {
			detectedLanguages[lang] = struct{}{}
		}

		sections := p.extractRelevantSections(ctx, content, persona, job, deadline)
		allSections = append(allSections, sections...)

		subsections := p.buildSubsections(ctx, sections, persona, job, deadline)
		allSubsections = append(allSubsections, subsections...)
	}

	rankedSections, rankedSubsections := RankAndFilter(allSections, allSubsections)
	extractedSections := p.buildExtractedSections(rankedSections, persona, job)
	subsectionAnalysis := p.buildSubsectionEntries(rankedSubsections, persona, job)

	elapsed := deadline.Elapsed()
	log.Info().Float64("seconds", elapsed.Seconds()).
		Strs("languages", sortedLanguages(detectedLanguages)).
		Msg("多语言处理完成")

	return &types.AnalysisResult{
		Metadata: types.ResultMetadata{
			InputDocuments:        pdfFiles,
			Persona:               persona,
			JobToBeDone:           job,
			ProcessingTimestamp:   time.Now().Format(time.RFC3339),
			TotalSectionsFound:    len(extractedSections),
			TotalSubsectionsFound: len(subsectionAnalysis),
			ProcessingTimeSeconds: round2(elapsed.Seconds()),
			AlgorithmVersion:      constants.AlgorithmVersion,
			DetectedLanguages:     sortedLanguages(detectedLanguages),
			MultilingualSupport:   true,
		},
		ExtractedSections:  extractedSections,
		SubsectionAnalysis: subsectionAnalysis,
	}
}

// extractRelevantSections 对一份文档的标题块与正文块评分并筛出候选章节。
// 标题派生章节的准入阈值（>15）低于独立正文块（>20）：标题自带结构先验，
// 裸正文段没有，这个不对称是有意的。
func (p *PersonaProcessor) extractRelevantSections(ctx context.Context, content *types.DocumentContent, persona, job string, deadline *Deadline) []types.Section {
	var sections []types.Section

	for _, page := range content.Pages {
		for _, heading := range page.Headings {
			if deadline.Exceeded() {
				p.settings.Logger.Warn().Int("page", page.PageNumber).Msg("时间预算耗尽，中止本页标题分析")
				break
			}

			associated := extractor.AssociateContent(heading, page.BodyText, content.Pages, page.PageNumber)
			combined := heading.Text + " " + associated
			score := p.components.Analyzer.Score(ctx, combined, persona, job)

			if score > constants.HeadingSectionThreshold {
				sections = append(sections, types.Section{
					Document:       content.Metadata.Filename,
					Page:           page.PageNumber,
					SectionTitle:   heading.Text,
					Content:        associated,
					RelevanceScore: round2(score),
					FontSize:       heading.FontSize,
					IsBold:         heading.IsBold,
					Language:       heading.Language,
				})
			}
		}

		for _, block := range page.BodyText {
			if deadline.Exceeded() {
				p.settings.Logger.Warn().Int("page", page.PageNumber).Msg("时间预算耗尽，中止本页正文分析")
				break
			}

			score := p.components.Analyzer.Score(ctx, block.Text, persona, job)
			if score > constants.BodySectionThreshold {
				sections = append(sections, types.Section{
					Document:       content.Metadata.Filename,
					Page:           page.PageNumber,
					SectionTitle:   fmt.Sprintf("Content from page %d", page.PageNumber),
					Content:        block.Text,
					RelevanceScore: round2(score),
					FontSize:       block.FontSize,
					IsBold:         block.IsBold,
					Language:       block.Language,
				})
			}
		}
	}
	return sections
}

// buildSubsections 对内容足够长的章节做句子级精炼，生成子章节。
// 内容过短的章节只是不参与子章节分析，仍保留在章节列表中。
func (p *PersonaProcessor) buildSubsections(ctx context.Context, sections []types.Section, persona, job string, deadline *Deadline) []types.Subsection {
	var subsections []types.Subsection

	for _, section := range sections {
		if deadline.Exceeded() {
			p.settings.Logger.Warn().Msg("时间预算耗尽，中止子章节分析")
			break
		}

		if utf8.RuneCountInString(strings.TrimSpace(section.Content)) < constants.MinSubsectionContentRunes {
			continue
		}

		refined := p.components.Analyzer.Refine(ctx, section.Content, persona, job)
		if refined == "" {
			continue
		}

		subsections = append(subsections, types.Subsection{
			Document:       section.Document,
			Page:           section.Page,
			SectionTitle:   section.SectionTitle,
			RefinedText:    refined,
			RelevanceScore: section.RelevanceScore,
			PersonaFocus:   p.components.Knowledge.PersonaFocusAreas(persona),
			JobAlignment:   p.components.Knowledge.JobAlignment(job),
			Language:       section.Language,
		})
	}
	return subsections
}

// buildExtractedSections 将排序后的章节转成输出条目，
// importance_rank 与排序位置一致（从 1 开始连续编号）
func (p *PersonaProcessor) buildExtractedSections(sections []types.Section, persona, job string) []types.ExtractedSection {
	entries := make([]types.ExtractedSection, 0, len(sections))
	for i, section := range sections {
		entries = append(entries, types.ExtractedSection{
			Document:           section.Document,
			Page:               section.Page,
			SectionTitle:       section.SectionTitle,
			ImportanceRank:     i + 1,
			RelevanceScore:     section.RelevanceScore,
			SelectionReasoning: p.components.Analyzer.Explain(section, persona, job),
			ContentPreview:     contentPreview(section.Content),
			Language:           section.Language,
		})
	}
	return entries
}

// buildSubsectionEntries 将排序后的子章节转成输出条目。
// 选择理由只依据标题与得分，精炼文本不参与关键词匹配。
func (p *PersonaProcessor) buildSubsectionEntries(subsections []types.Subsection, persona, job string) []types.SubsectionEntry {
	entries := make([]types.SubsectionEntry, 0, len(subsections))
	for _, sub := range subsections {
		reasoning := p.components.Analyzer.Explain(types.Section{
			Document:       sub.Document,
			Page:           sub.Page,
			SectionTitle:   sub.SectionTitle,
			RelevanceScore: sub.RelevanceScore,
			Language:       sub.Language,
		}, persona, job)

		entries = append(entries, types.SubsectionEntry{
			Document:           sub.Document,
			Page:               sub.Page,
			SectionTitle:       sub.SectionTitle,
			RefinedText:        sub.RefinedText,
			RelevanceScore:     sub.RelevanceScore,
			SelectionReasoning: reasoning,
			PersonaFocus:       sub.PersonaFocus,
			JobAlignment:       sub.JobAlignment,
			Language:           sub.Language,
		})
	}
	return entries
}

// emptyResult 构造结构完整但列表为空的结果，错误信息进元数据
func (p *PersonaProcessor) emptyResult(persona, job, errMsg string) *types.AnalysisResult {
	return &types.AnalysisResult{
		Metadata: types.ResultMetadata{
			InputDocuments:        []string{},
			Persona:               persona,
			JobToBeDone:           job,
			ProcessingTimestamp:   time.Now().Format(time.RFC3339),
			TotalSectionsFound:    0,
			TotalSubsectionsFound: 0,
			ProcessingTimeSeconds: 0,
			AlgorithmVersion:      constants.AlgorithmVersion,
			DetectedLanguages:     []string{},
			MultilingualSupport:   true,
			Error:                 errMsg,
		},
		ExtractedSections:  []types.ExtractedSection{},
		SubsectionAnalysis: []types.SubsectionEntry{},
	}
}

// listPDFFiles 列出目录下的 PDF 文件名（不含子目录），顺序稳定
func listPDFFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// contentPreview 前 200 个码点，截断时加省略号
func contentPreview(content string) string {
	runes := []rune(content)
	if len(runes) <= constants.ContentPreviewRunes {
		return content
	}
	return string(runes[:constants.ContentPreviewRunes]) + "..."
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sortedLanguages(langs map[string]struct{}) []string {
	out := make([]string, 0, len(langs))
	for lang := range langs {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}
