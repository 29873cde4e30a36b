// Package prompts holds the model prompts used to enrich journal entries and
// drawings. They live in embedded JSON files keyed by prompt name.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

// Key names one prompt in insight.json.
type Key string

const (
	JournalAnalysis Key = "journal-analysis"
	DrawingInsight  Key = "drawing-insight"
	ThoughtsInsight Key = "thoughts-insight"
	IssuesInsight   Key = "issues-insight"
)

const insightFile = "insight.json"

var insight = sync.OnceValues(func() (map[Key]string, error) {
	return load(insightFile)
})

func load(name string) (map[Key]string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
	}
	var set map[Key]string
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
	}
	return set, nil
}

// Get returns the raw template for key.
func Get(key Key) (string, error) {
	set, err := insight()
	if err != nil {
		return "", err
	}
	tmpl, ok := set[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found in %s", key, insightFile)
	}
	return tmpl, nil
}

// Render fills the {{.Text}} placeholder of key with text.
func Render(key Key, text string) (string, error) {
	tmpl, err := Get(key)
	if err != nil {
		return "", err
	}
	return Format(tmpl, map[string]string{"Text": text}), nil
}

// Format replaces {{.Name}} placeholders with values from data. Unknown
// placeholders are left as they are.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{{."+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Keys lists the prompts in insight.json, sorted.
func Keys() ([]Key, error) {
	set, err := insight()
	if err != nil {
		return nil, err
	}
	keys := make([]Key, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys, nil
}
