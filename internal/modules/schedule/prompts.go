package schedule

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

const promptsEnv = "SCHEDULE_PROMPTS_YAML"

//go:embed prompts.yaml
var promptsFS embed.FS

type promptPair struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

type yamlPrompts struct {
	Version   int        `yaml:"version"`
	Synthesis promptPair `yaml:"synthesis"`
	Sentiment promptPair `yaml:"sentiment"`
}

// used when the YAML is missing or invalid
var fallbackPrompts = yamlPrompts{
	Version: 1,
	Synthesis: promptPair{
		System: `Build a one-week study schedule. Reply with one JSON object with one key per weekday ("Monday".."Sunday"); ` +
			`each value has string fields "subject", "duration", "focus", "motivation" and "difficulty" (easy|medium|hard). ` +
			`Days in breakDays are rest days.`,
		User: "Student signals (JSON):\n{{ .SignalsJSON }}\n\nAverage mood: {{ .MoodSummary }}\nThe week starts on {{ .WeekStart }}.",
	},
	Sentiment: promptPair{
		System: `Analyse the journal entries. Reply with one JSON object: {"sentiment": <-1..1>, "mood": "<word>"}.`,
		User:   "Journal entries:\n{{ range .Entries }}- {{ . }}\n{{ end }}",
	},
}

type prompt struct {
	system string
	user   *template.Template
}

func (p prompt) render(data any) (string, string, error) {
	var buf bytes.Buffer
	if err := p.user.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render prompt: %w", err)
	}
	return p.system, strings.TrimSpace(buf.String()), nil
}

type promptSet struct {
	synthesis prompt
	sentiment prompt
}

type synthesisPromptData struct {
	SignalsJSON string
	MoodSummary string
	Today       string
	WeekStart   string
}

type sentimentPromptData struct {
	Entries []string
}

var (
	promptsOnce  sync.Once
	promptsCache *promptSet
)

// currentPrompts loads the prompt set once; a broken override falls back to the built-in prompts.
func currentPrompts(log *logger.Logger) *promptSet {
	promptsOnce.Do(func() {
		set, err := loadPrompts()
		if err != nil {
			if log != nil {
				log.Warn("schedule: prompt file load failed; using built-in prompts", "error", err)
			}
			set, err = compilePrompts(fallbackPrompts)
			if err != nil {
				panic(fmt.Sprintf("schedule: fallback prompts invalid: %v", err))
			}
		}
		promptsCache = set
	})
	return promptsCache
}

func loadPrompts() (*promptSet, error) {
	data, err := readPrompts()
	if err != nil {
		return nil, err
	}
	var spec yamlPrompts
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	if err := validatePrompts(&spec); err != nil {
		return nil, err
	}
	return compilePrompts(spec)
}

func readPrompts() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(promptsEnv)); path != "" {
		return os.ReadFile(path)
	}
	return promptsFS.ReadFile("prompts.yaml")
}

func validatePrompts(spec *yamlPrompts) error {
	if spec == nil {
		return errors.New("missing prompts")
	}
	if spec.Version != 1 {
		return fmt.Errorf("unsupported prompts version: %d", spec.Version)
	}
	for name, p := range map[string]promptPair{"synthesis": spec.Synthesis, "sentiment": spec.Sentiment} {
		if strings.TrimSpace(p.System) == "" || strings.TrimSpace(p.User) == "" {
			return fmt.Errorf("%s prompt requires system and user text", name)
		}
	}
	return nil
}

func compilePrompts(spec yamlPrompts) (*promptSet, error) {
	synth, err := template.New("synthesis").Option("missingkey=error").Parse(spec.Synthesis.User)
	if err != nil {
		return nil, fmt.Errorf("synthesis template: %w", err)
	}
	sent, err := template.New("sentiment").Option("missingkey=error").Parse(spec.Sentiment.User)
	if err != nil {
		return nil, fmt.Errorf("sentiment template: %w", err)
	}
	return &promptSet{
		synthesis: prompt{system: strings.TrimSpace(spec.Synthesis.System), user: synth},
		sentiment: prompt{system: strings.TrimSpace(spec.Sentiment.System), user: sent},
	}, nil
}
