// Package gemini answers subsidy questions with Google Gemini over the
// indexed funding programs.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lechtr/foerder"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultMaxDocuments bounds how many programs go into one prompt.
const DefaultMaxDocuments = 200

const systemInstruction = "Du bist ein Experte für die Suche nach Fördermitteln für deutsche Unternehmen. " +
	"Deine Aufgabe ist es, Unternehmen dabei zu helfen, die passenden Fördermittel zu finden, die auf ihre " +
	"spezifischen Bedürfnisse zugeschnitten sind. Nutze ausschließlich die bereitgestellten Förderprogramme " +
	"und nenne zu jedem Vorschlag Titel und Quelle. Sei präzise und klar in deinen Antworten. Wenn du unsicher " +
	"bist, gib an, dass du keine passenden Fördermittel gefunden hast, und schlage vor, weitere Informationen " +
	"bereitzustellen. Halte die Antworten kurz und auf den Punkt, aber stelle sicher, dass alle relevanten " +
	"Details enthalten sind."

// Ensure Asker implements foerder.Asker at compile time.
var _ foerder.Asker = (*Asker)(nil)

// Asker implements foerder.Asker using Google Gemini.
type Asker struct {
	client  *genai.Client
	docs    foerder.DocumentService
	model   string
	maxDocs int
	terms   []string
}

// Option configures an Asker.
type Option func(*Asker)

// WithMaxDocuments bounds the number of programs included in a prompt.
func WithMaxDocuments(n int) Option {
	return func(a *Asker) {
		a.maxDocs = n
	}
}

// WithQuery restricts the prompt to programs mentioning every term.
func WithQuery(terms ...string) Option {
	return func(a *Asker) {
		a.terms = terms
	}
}

// NewAsker creates a new Asker. An empty model selects DefaultModel.
func NewAsker(client *genai.Client, docs foerder.DocumentService, model string, opts ...Option) *Asker {
	if model == "" {
		model = DefaultModel
	}
	a := &Asker{
		client:  client,
		docs:    docs,
		model:   model,
		maxDocs: DefaultMaxDocuments,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ask answers a question over the indexed funding programs.
func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", foerder.Errorf(foerder.EINVALID, "question required")
	}

	docs, err := a.docs.FindDocuments(ctx, foerder.DocumentFilter{Query: a.terms, Limit: a.maxDocs})
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", foerder.Errorf(foerder.ENOTFOUND, "no indexed funding programs found; run 'foerder index' first")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(docs, question)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", foerder.Errorf(foerder.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the programs and the
// question.
func BuildUserPrompt(docs []*foerder.Document, question string) string {
	var sb strings.Builder
	sb.WriteString("<documents>\n")
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.SourceURL
		}
		sb.WriteString("<document>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
		fmt.Fprintf(&sb, "<source>%s</source>\n", doc.SourceURL)
		fmt.Fprintf(&sb, "<content>%s</content>\n", doc.Content)
		sb.WriteString("</document>\n")
	}
	sb.WriteString("</documents>\n\n")
	fmt.Fprintf(&sb, "Frage: %s", question)
	return sb.String()
}
