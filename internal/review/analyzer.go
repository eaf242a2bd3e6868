package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/cuongbtq/news-review/internal/review/domain"
	"github.com/cuongbtq/news-review/shared/openai"
)

const (
	maxTitleChars          = 300
	maxBodyChars           = 4700
	maxEvidencePerCategory = 5
)

const systemPrompt = "너는 한국어 뉴스 기사 준수 검수원이다. 다음을 검사하라.\n" +
	"1) 성별·인종·종교·성적지향·장애 등 차별/혐오 표현\n" +
	"2) 특정 인물에 대한 근거 없는 비방/인신공격\n" +
	"3) 광고성(협찬/스폰서/구매 유도)\n" +
	`JSON만 반환: {"discrimination":{"flag":bool,"evidence":[string,...]},` +
	`"defamation":{"flag":bool,"evidence":[string,...]},` +
	`"advertisement":{"flag":bool,"evidence":[string,...]}}`

const userPromptFormat = "제목: %s\n본문(일부): %s\n맥락(인용/비판보도)은 감안하라."

var whitespaceRuns = regexp.MustCompile(`\s+`)

// ChatClient is the slice of the chat completion client the analyzer needs.
type ChatClient interface {
	Complete(ctx context.Context, messages []openai.Message, jsonOnly bool) (*openai.Completion, error)
}

// Analyzer classifies a single article against the three compliance categories.
type Analyzer struct {
	chat   ChatClient
	logger *slog.Logger
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(chat ChatClient, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		chat:   chat,
		logger: logger,
	}
}

// truncate collapses whitespace runs to single spaces and cuts s to at most
// n characters. Bounds request cost and keeps within model context limits.
func truncate(s string, n int) string {
	collapsed := whitespaceRuns.ReplaceAllString(s, " ")
	runes := []rune(collapsed)
	if len(runes) > n {
		return string(runes[:n])
	}
	return collapsed
}

// Analyze sends title and body to the model and normalizes the response into
// the fixed three-category shape. Non-JSON model output counts as no
// violations found; errors from the fallback plain call propagate.
func (a *Analyzer) Analyze(ctx context.Context, title, text string) (domain.Assessment, error) {
	messages := []openai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(userPromptFormat,
			truncate(title, maxTitleChars),
			truncate(text, maxBodyChars))},
	}

	completion, err := a.chat.Complete(ctx, messages, true)
	if err != nil {
		// Some models reject the strict JSON response mode; retry once without it.
		a.logger.Warn("Strict JSON completion failed, retrying plain",
			slog.String("error", err.Error()),
		)
		completion, err = a.chat.Complete(ctx, messages, false)
		if err != nil {
			return domain.Assessment{}, err
		}
	}

	var assessment domain.Assessment
	if err := json.Unmarshal([]byte(completion.Content), &assessment); err != nil {
		a.logger.Warn("Model returned non-JSON content, treating as no violations",
			slog.String("request_id", completion.ID),
		)
		assessment = domain.Assessment{}
	}
	assessment.Normalize()

	return assessment, nil
}
