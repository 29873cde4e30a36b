package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/llm"
	"github.com/jonathan/mindwell/internal/prompts"
)

const (
	maxKeywords = 5
	maxInsight  = 120
)

// JournalAnalysis is the structured reading of a journal entry.
type JournalAnalysis struct {
	SentimentScore *float64 `json:"sentimentScore"`
	Keywords       []string `json:"keywords"`
	RiskFlags      []string `json:"riskFlags"`
}

// Analyzer produces journal analyses and drawing insights. A nil client
// disables it.
type Analyzer struct {
	client  llm.Client
	timeout time.Duration
}

// NewAnalyzer creates an analyzer whose calls are bounded by timeout.
func NewAnalyzer(client llm.Client, timeout time.Duration) *Analyzer {
	return &Analyzer{client: client, timeout: timeout}
}

// Enabled reports whether a model client is configured.
func (a *Analyzer) Enabled() bool {
	return a != nil && a.client != nil
}

// AnalyzeJournal scores sentiment and extracts themes and risk flags.
func (a *Analyzer) AnalyzeJournal(ctx context.Context, text string) (Optional[JournalAnalysis], error) {
	if !a.Enabled() || strings.TrimSpace(text) == "" {
		return None[JournalAnalysis](), nil
	}

	prompt, err := prompts.Render(prompts.JournalAnalysis, text)
	if err != nil {
		return None[JournalAnalysis](), err
	}

	ctx, cancel := a.bound(ctx)
	defer cancel()
	raw, err := a.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return None[JournalAnalysis](), fmt.Errorf("journal analysis failed: %w", err)
	}

	var out JournalAnalysis
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &out); err != nil {
		return None[JournalAnalysis](), fmt.Errorf("journal analysis returned invalid JSON: %w", err)
	}
	return Some(normalizeAnalysis(out)), nil
}

// DrawingInsight writes a short reflection on a drawing or a text capture.
// inputType selects the prompt: thoughts and draw get a therapist's reading,
// issues a coach's.
func (a *Analyzer) DrawingInsight(ctx context.Context, inputType, text string) (Optional[string], error) {
	if !a.Enabled() || strings.TrimSpace(text) == "" {
		return None[string](), nil
	}

	key := prompts.DrawingInsight
	switch inputType {
	case db.InputThoughts:
		key = prompts.ThoughtsInsight
	case db.InputIssues:
		key = prompts.IssuesInsight
	}
	prompt, err := prompts.Render(key, text)
	if err != nil {
		return None[string](), err
	}

	ctx, cancel := a.bound(ctx)
	defer cancel()
	out, err := a.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return None[string](), fmt.Errorf("drawing insight failed: %w", err)
	}
	out = truncateWords(strings.TrimSpace(out), maxInsight)
	if out == "" {
		return None[string](), nil
	}
	return Some(out), nil
}

func (a *Analyzer) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

func normalizeAnalysis(in JournalAnalysis) JournalAnalysis {
	if in.SentimentScore != nil {
		s := *in.SentimentScore
		if s < 0 {
			s = 0
		}
		if s > 10 {
			s = 10
		}
		in.SentimentScore = &s
	}
	in.Keywords = cleanList(in.Keywords)
	if len(in.Keywords) > maxKeywords {
		in.Keywords = in.Keywords[:maxKeywords]
	}
	in.RiskFlags = cleanList(in.RiskFlags)
	return in
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncateWords(s string, max int) string {
	words := strings.Fields(s)
	if len(words) <= max {
		return s
	}
	return strings.Join(words[:max], " ") + "…"
}

type sceneElement struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SceneText joins the text elements of a canvas scene, one per line.
// Malformed scenes yield "".
func SceneText(scene json.RawMessage) string {
	var s struct {
		Elements []sceneElement `json:"elements"`
	}
	if len(scene) == 0 || json.Unmarshal(scene, &s) != nil {
		return ""
	}
	var texts []string
	for _, e := range s.Elements {
		if e.Type == "text" && e.Text != "" {
			texts = append(texts, e.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// TextToAnalyze picks what a drawing's insight is based on: the scene's text
// elements for canvas drawings, the typed text otherwise.
func TextToAnalyze(inputType string, scene json.RawMessage, textContent *string) string {
	if inputType == "" || inputType == db.InputDraw {
		return SceneText(scene)
	}
	if textContent == nil {
		return ""
	}
	return *textContent
}
