package types

// ResultMetadata 分析结果的元数据部分
type ResultMetadata struct {
	InputDocuments        []string `json:"input_documents"`
	Persona               string   `json:"persona"`
	JobToBeDone           string   `json:"job_to_be_done"`
	ProcessingTimestamp   string   `json:"processing_timestamp"`
	TotalSectionsFound    int      `json:"total_sections_found"`
	TotalSubsectionsFound int      `json:"total_subsections_found"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
	AlgorithmVersion      string   `json:"algorithm_version"`
	DetectedLanguages     []string `json:"detected_languages"`
	MultilingualSupport   bool     `json:"multilingual_support"`
	Error                 string   `json:"error,omitempty"`
}

// ExtractedSection 最终输出中的章节条目，ImportanceRank 与排序位置一致（从 1 开始）
type ExtractedSection struct {
	Document           string  `json:"document"`
	Page               int     `json:"page"`
	SectionTitle       string  `json:"section_title"`
	ImportanceRank     int     `json:"importance_rank"`
	RelevanceScore     float64 `json:"relevance_score"`
	SelectionReasoning string  `json:"selection_reasoning"`
	ContentPreview     string  `json:"content_preview"`
	Language           string  `json:"language"`
}

// SubsectionEntry 最终输出中的子章节条目
type SubsectionEntry struct {
	Document           string   `json:"document"`
	Page               int      `json:"page"`
	SectionTitle       string   `json:"section_title"`
	RefinedText        string   `json:"refined_text"`
	RelevanceScore     float64  `json:"relevance_score"`
	SelectionReasoning string   `json:"selection_reasoning"`
	PersonaFocus       []string `json:"persona_focus"`
	JobAlignment       string   `json:"job_alignment"`
	Language           string   `json:"language"`
}

// AnalysisResult 单次运行的完整输出，任何失败路径下也保持结构完整
type AnalysisResult struct {
	Metadata           ResultMetadata     `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionEntry  `json:"subsection_analysis"`
}
