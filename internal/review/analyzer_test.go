package review

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/cuongbtq/news-review/shared/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	content  string
	jsonErr  error
	plainErr error

	calls    []bool // jsonOnly flag per call
	messages []openai.Message
}

func (f *fakeChat) Complete(ctx context.Context, messages []openai.Message, jsonOnly bool) (*openai.Completion, error) {
	f.calls = append(f.calls, jsonOnly)
	f.messages = messages

	if jsonOnly && f.jsonErr != nil {
		return nil, f.jsonErr
	}
	if !jsonOnly && f.plainErr != nil {
		return nil, f.plainErr
	}
	return &openai.Completion{ID: "req-1", Model: "gpt-5-mini", Content: f.content}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyzer_Analyze(t *testing.T) {
	chat := &fakeChat{content: `{
		"discrimination": {"flag": false, "evidence": []},
		"defamation": {"flag": true, "evidence": ["근거 없는 주장"]},
		"advertisement": {"flag": false, "evidence": []}
	}`}
	analyzer := NewAnalyzer(chat, testLogger())

	assessment, err := analyzer.Analyze(context.Background(), "제목", "본문")
	require.NoError(t, err)

	assert.Equal(t, []bool{true}, chat.calls)
	assert.False(t, assessment.Discrimination.Flag)
	assert.True(t, assessment.Defamation.Flag)
	assert.Equal(t, []string{"근거 없는 주장"}, assessment.Defamation.Evidence)
	assert.False(t, assessment.Advertisement.Flag)
}

func TestAnalyzer_MissingKeysDefaulted(t *testing.T) {
	chat := &fakeChat{content: `{"advertisement":{"flag":true}}`}
	analyzer := NewAnalyzer(chat, testLogger())

	assessment, err := analyzer.Analyze(context.Background(), "제목", "본문")
	require.NoError(t, err)

	assert.False(t, assessment.Discrimination.Flag)
	assert.NotNil(t, assessment.Discrimination.Evidence)
	assert.False(t, assessment.Defamation.Flag)
	assert.NotNil(t, assessment.Defamation.Evidence)
	assert.True(t, assessment.Advertisement.Flag)
	assert.NotNil(t, assessment.Advertisement.Evidence)
}

func TestAnalyzer_NonJSONContentMeansNoViolations(t *testing.T) {
	chat := &fakeChat{content: "죄송하지만 JSON으로 답할 수 없습니다."}
	analyzer := NewAnalyzer(chat, testLogger())

	assessment, err := analyzer.Analyze(context.Background(), "제목", "본문")
	require.NoError(t, err)

	assert.Empty(t, assessment.Violations())
	for _, key := range []string{"discrimination", "defamation", "advertisement"} {
		finding := assessment.Finding(key)
		assert.False(t, finding.Flag)
		assert.NotNil(t, finding.Evidence)
	}
}

func TestAnalyzer_FallsBackWhenJSONModeUnsupported(t *testing.T) {
	chat := &fakeChat{
		content: `{"discrimination":{"flag":true,"evidence":["차별 표현"]}}`,
		jsonErr: errors.New("response_format not supported"),
	}
	analyzer := NewAnalyzer(chat, testLogger())

	assessment, err := analyzer.Analyze(context.Background(), "제목", "본문")
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, chat.calls)
	assert.True(t, assessment.Discrimination.Flag)
}

func TestAnalyzer_FallbackErrorPropagates(t *testing.T) {
	chat := &fakeChat{
		jsonErr:  errors.New("response_format not supported"),
		plainErr: errors.New("api unreachable"),
	}
	analyzer := NewAnalyzer(chat, testLogger())

	_, err := analyzer.Analyze(context.Background(), "제목", "본문")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api unreachable")
}

func TestAnalyzer_TruncatesInput(t *testing.T) {
	chat := &fakeChat{content: `{}`}
	analyzer := NewAnalyzer(chat, testLogger())

	longTitle := strings.Repeat("가", 400)
	longBody := strings.Repeat("나", 5000)

	_, err := analyzer.Analyze(context.Background(), longTitle, longBody)
	require.NoError(t, err)

	require.Len(t, chat.messages, 2)
	user := chat.messages[1].Content
	assert.Contains(t, user, strings.Repeat("가", 300))
	assert.NotContains(t, user, strings.Repeat("가", 301))
	assert.Contains(t, user, strings.Repeat("나", 4700))
	assert.NotContains(t, user, strings.Repeat("나", 4701))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{
			name:     "collapses whitespace runs",
			input:    "a  b\t\tc\n\nd",
			limit:    100,
			expected: "a b c d",
		},
		{
			name:     "cuts to limit after collapsing",
			input:    "abcdefgh",
			limit:    5,
			expected: "abcde",
		},
		{
			name:     "counts characters not bytes",
			input:    "가나다라마",
			limit:    3,
			expected: "가나다",
		},
		{
			name:     "empty input",
			input:    "",
			limit:    10,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncate(tt.input, tt.limit))
		})
	}
}
