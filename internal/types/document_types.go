package types

import "time"

// BoundingBox 文本块在页面上的外接矩形，坐标已归一化为左上角原点
// （y 值越大表示在页面上越靠下）
type BoundingBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// TextBlock 文档解析产出的一行文本及其版式元数据，创建后不再修改
type TextBlock struct {
	Text     string      `json:"text"`
	FontSize float64     `json:"font_size"`
	IsBold   bool        `json:"is_bold"`
	FontName string      `json:"font_name"`
	BBox     BoundingBox `json:"bbox"`
	Language string      `json:"language"`
}

// Page 单个页面的提取结果，Headings/BodyText 是 TextBlocks 按分类划分的子集
type Page struct {
	PageNumber int                 `json:"page_number"`
	TextBlocks []TextBlock         `json:"text_blocks"`
	Headings   []TextBlock         `json:"headings"`
	BodyText   []TextBlock         `json:"body_text"`
	Languages  map[string]struct{} `json:"-"`
}

// DocumentMetadata 文档级提取元数据
type DocumentMetadata struct {
	Filename            string
	TotalPages          int
	ExtractionTimestamp time.Time
	DetectedLanguages   map[string]struct{}
}

// DocumentContent 一份输入文档的完整提取结果，提取完成后只读
type DocumentContent struct {
	Pages    []Page
	Metadata DocumentMetadata
}

// Section 候选章节：标题块与其关联正文，或单个达标的正文块
type Section struct {
	Document       string  `json:"document"`
	Page           int     `json:"page"`
	SectionTitle   string  `json:"section_title"`
	Content        string  `json:"content"`
	RelevanceScore float64 `json:"relevance_score"`
	FontSize       float64 `json:"font_size"`
	IsBold         bool    `json:"is_bold"`
	Language       string  `json:"language"`
}

// Subsection 由章节精炼得到的子章节，RefinedText 为句子级筛选后的摘录
type Subsection struct {
	Document       string   `json:"document"`
	Page           int      `json:"page"`
	SectionTitle   string   `json:"section_title"`
	RefinedText    string   `json:"refined_text"`
	RelevanceScore float64  `json:"relevance_score"`
	PersonaFocus   []string `json:"persona_focus"`
	JobAlignment   string   `json:"job_alignment"`
	Language       string   `json:"language"`
}
