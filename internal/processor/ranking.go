package processor

import (
	"sort"
	"unicode/utf8"

	"doc-intel-go/internal/constants"
	"doc-intel-go/internal/types"
)

// RankAndFilter 对章节与子章节按相关性降序排序（稳定排序，同分保持
// 原有相对顺序），随后应用长度过滤并截断到固定上限。过滤在排序之后，
// 因此不会改变幸存条目之间的相对名次。
func RankAndFilter(sections []types.Section, subsections []types.Subsection) ([]types.Section, []types.Subsection) {
	ranked := make([]types.Section, len(sections))
	copy(ranked, sections)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	filtered := make([]types.Section, 0, len(ranked))
	for _, s := range ranked {
		length := utf8.RuneCountInString(s.Content)
		if length >= constants.MinSectionContentRunes && length <= constants.MaxSectionContentRunes {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) > constants.MaxSections {
		filtered = filtered[:constants.MaxSections]
	}

	rankedSubs := make([]types.Subsection, len(subsections))
	copy(rankedSubs, subsections)
	sort.SliceStable(rankedSubs, func(i, j int) bool {
		return rankedSubs[i].RelevanceScore > rankedSubs[j].RelevanceScore
	})

	filteredSubs := make([]types.Subsection, 0, len(rankedSubs))
	for _, s := range rankedSubs {
		length := utf8.RuneCountInString(s.RefinedText)
		if length >= constants.MinRefinedTextRunes && length <= constants.MaxRefinedTextRunes {
			filteredSubs = append(filteredSubs, s)
		}
	}
	if len(filteredSubs) > constants.MaxSubsections {
		filteredSubs = filteredSubs[:constants.MaxSubsections]
	}

	return filtered, filteredSubs
}
