package generation

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/productgen/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PromptOptions are the inputs a prompt can draw on. Which fields matter
// depends on the task.
type PromptOptions struct {
	ImageURL        string
	Title           string
	IncludeVariants bool
	Region          string
	CategoryName    string
}

// Prompt is a rendered system/user prompt pair, plus the image reference
// for vision tasks.
type Prompt struct {
	System   string
	User     string
	ImageURL string
}

// clause is an optional block of a user prompt, rendered from the template
// "<task>/<name>" when enabled reports true.
type clause struct {
	name    string
	enabled func(PromptOptions) bool
}

var (
	variantsClause = clause{name: "variants", enabled: func(o PromptOptions) bool { return o.IncludeVariants }}
	regionClause   = clause{name: "region", enabled: func(o PromptOptions) bool { return strings.TrimSpace(o.Region) != "" }}
	categoryClause = clause{name: "category", enabled: func(o PromptOptions) bool { return strings.TrimSpace(o.CategoryName) != "" }}
)

// promptSpec describes how to render the prompts for one task.
type promptSpec struct {
	clauses []clause
	example func(PromptOptions) *domain.GeneratedContent
}

var promptSpecs = map[Task]promptSpec{
	TaskImage: {
		clauses: []clause{variantsClause, regionClause, categoryClause},
	},
	TaskTitle: {
		clauses: []clause{variantsClause, regionClause, categoryClause},
		example: titleExample,
	},
	TaskFreeform: {
		clauses: []clause{regionClause, categoryClause},
		example: freeformExample,
	},
}

// promptData is the value passed to a task's user template.
type promptData struct {
	PromptOptions
	Clauses map[string]string
	Example string
}

// PromptBuilder renders prompts from the embedded templates. It holds no
// mutable state and is safe for concurrent use.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder parses the embedded templates and checks that every
// task has its system, user, and clause templates.
func NewPromptBuilder() (*PromptBuilder, error) {
	tmpl, err := template.New("prompts").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}

	for task, spec := range promptSpecs {
		names := []string{systemTemplateName(task), string(task)}
		for _, c := range spec.clauses {
			names = append(names, clauseTemplateName(task, c))
		}
		for _, name := range names {
			if tmpl.Lookup(name) == nil {
				return nil, fmt.Errorf("prompt template %q is not defined", name)
			}
		}
	}

	return &PromptBuilder{tmpl: tmpl}, nil
}

// SystemPrompt returns the fixed role framing for task.
func (b *PromptBuilder) SystemPrompt(task Task) (string, error) {
	if _, ok := promptSpecs[task]; !ok {
		return "", fmt.Errorf("unknown task %q", task)
	}
	return b.execute(systemTemplateName(task), nil)
}

// ImagePrompt renders the user prompt for describing a product from an image.
func (b *PromptBuilder) ImagePrompt(req domain.FromImageRequest) (string, error) {
	return b.UserPrompt(TaskImage, PromptOptions{
		ImageURL:        req.ImageURL,
		IncludeVariants: req.IncludeVariants,
		Region:          req.Region,
		CategoryName:    req.CategoryName,
	})
}

// TitlePrompt renders the user prompt for elaborating a listing from a title.
func (b *PromptBuilder) TitlePrompt(req domain.FromTitleRequest) (string, error) {
	return b.UserPrompt(TaskTitle, PromptOptions{
		Title:           req.Title,
		IncludeVariants: req.IncludeVariants,
		Region:          req.Region,
		CategoryName:    req.CategoryName,
	})
}

// FreeformPrompt renders the user prompt for inventing a listing.
func (b *PromptBuilder) FreeformPrompt(req domain.FreeformRequest) (string, error) {
	return b.UserPrompt(TaskFreeform, PromptOptions{
		Region:       req.Region,
		CategoryName: req.CategoryName,
	})
}

// UserPrompt renders the user prompt for task. Each of the task's clauses
// is rendered when enabled and left empty otherwise; the worked example,
// if the task has one, is marshalled from a GeneratedContent value.
func (b *PromptBuilder) UserPrompt(task Task, opts PromptOptions) (string, error) {
	spec, ok := promptSpecs[task]
	if !ok {
		return "", fmt.Errorf("unknown task %q", task)
	}

	data := promptData{
		PromptOptions: opts,
		Clauses:       make(map[string]string, len(spec.clauses)),
	}

	for _, c := range spec.clauses {
		if !c.enabled(opts) {
			data.Clauses[c.name] = ""
			continue
		}
		text, err := b.execute(clauseTemplateName(task, c), opts)
		if err != nil {
			return "", err
		}
		data.Clauses[c.name] = text
	}

	if spec.example != nil {
		example, err := renderExample(spec.example(opts))
		if err != nil {
			return "", fmt.Errorf("failed to render %s example: %w", task, err)
		}
		data.Example = example
	}

	return b.execute(string(task), data)
}

// Build renders both prompts for task.
func (b *PromptBuilder) Build(task Task, opts PromptOptions) (Prompt, error) {
	system, err := b.SystemPrompt(task)
	if err != nil {
		return Prompt{}, err
	}
	user, err := b.UserPrompt(task, opts)
	if err != nil {
		return Prompt{}, err
	}

	prompt := Prompt{System: system, User: user}
	if task == TaskImage {
		prompt.ImageURL = opts.ImageURL
	}
	return prompt, nil
}

func (b *PromptBuilder) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := b.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %q: %w", name, err)
	}
	return buf.String(), nil
}

func systemTemplateName(task Task) string {
	return "system/" + string(task)
}

func clauseTemplateName(task Task, c clause) string {
	return string(task) + "/" + c.name
}
