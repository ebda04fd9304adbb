package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectShortTextDefaultsToEnglish(t *testing.T) {
	d := NewDetector()

	// 去除空白后不足 10 个字符的输入不触发任何检测策略
	assert.Equal(t, "en", d.Detect(""))
	assert.Equal(t, "en", d.Detect("   "))
	assert.Equal(t, "en", d.Detect("hola"))
	assert.Equal(t, "en", d.Detect("  abc def  "))
}

func TestDetectCommonLanguages(t *testing.T) {
	d := NewDetector()

	cases := []struct {
		name string
		text string
		want string
	}{
		{"英语", "The methodology of this study follows a randomized controlled design.", "en"},
		{"西班牙语", "La metodología de esta investigación sigue un diseño experimental riguroso.", "es"},
		{"法语", "La méthodologie de cette étude repose sur une analyse statistique approfondie.", "fr"},
		{"德语", "Die Methodik dieser Studie basiert auf einer gründlichen statistischen Analyse.", "de"},
		{"印地语", "इस अध्ययन की पद्धति एक यादृच्छिक नियंत्रित डिज़ाइन का पालन करती है।", "hi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, d.Detect(tc.text), "文本: %s", tc.text)
		})
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	d := NewDetector()
	text := "Statistical analysis of variance was applied to the experimental data."

	first := d.Detect(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, d.Detect(text), "同一文本的检测结果必须稳定")
	}
}

func TestPatternStrategyFallback(t *testing.T) {
	s := patternStrategy{}

	// 天城文只命中印地语的字符类（注意 \s 会让拉丁字母表也命中
	// 空白段，这里用无空格文本保证只有印地语模式得分）
	tag, err := s.Detect("यहएकपरीक्षणवाक्यहैजोहिंदीमेंलिखागयाहै")
	require.NoError(t, err)
	assert.Equal(t, "hi", tag)

	// 纯 ASCII 文本在多个拉丁字母表上密度相同，平局取先声明的英语
	tag, err = s.Detect("plain ascii text without any accents at all")
	require.NoError(t, err)
	assert.Equal(t, "en", tag)

	// 没有任何模式命中时回退默认语言
	tag, err = s.Detect("1234567890 ---- !!!!")
	require.NoError(t, err)
	assert.Equal(t, "en", tag)
}

func TestSupportedLanguages(t *testing.T) {
	d := NewDetector()

	langs := d.SupportedLanguages()
	assert.Equal(t, []string{"en", "es", "fr", "de", "hi", "it", "pt"}, langs, "顺序即平局裁决顺序")

	assert.True(t, d.IsSupported("en"))
	assert.True(t, d.IsSupported("hi"))
	assert.False(t, d.IsSupported("zh"))
	assert.False(t, d.IsSupported(""))
}
