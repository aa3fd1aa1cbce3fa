// Package aitext is the client for the external text-generation service.
// Every call degrades on failure: the caller gets back the input text, an
// empty list, or an empty string instead of an error, so a service outage
// can never corrupt the draft's consistency invariants.
package aitext

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"regexp"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/joelkehle/protocol-studio/internal/classify"
)

const DefaultModel = "claude-sonnet-4-5"

const systemPrompt = "You are an expert medical writer and clinical research methodologist. You produce formal, precise, academic text for clinical study protocol synopses and never invent clinical facts."

// ReferenceMarker separates generated body text from its bibliography block.
const ReferenceMarker = "### REFERENCES ###"

var statusCodeRe = regexp.MustCompile(`(?:status(?:\s+code)?[:=\s]+)(\d{3})`)

type failureClass int

const (
	failureTimeout failureClass = iota
	failureRateLimit
	failureServer
	failureClient
)

// Messager is the slice of the Anthropic client the generator needs.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type Client struct {
	messages Messager
	model    string
}

func NewClient(messages Messager, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{messages: messages, model: model}
}

func NewClientFromEnv() (*Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	model := strings.TrimSpace(os.Getenv("PROTOCOL_LLM_MODEL"))
	if model == "" {
		model = DefaultModel
	}
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Client{messages: &c.Messages, model: model}, nil
}

func (c *Client) ModelName() string { return c.model }

// Refine rewrites free text into formal protocol language. On any failure,
// or when the text is too short to be worth rewriting, the original comes
// back unchanged.
func (c *Client) Refine(ctx context.Context, text, fieldContext string, loc classify.Locale) string {
	if len(strings.TrimSpace(text)) < 5 {
		return text
	}
	prompt := fmt.Sprintf(
		"Rewrite the following text to be formal, precise, and academic. %s\n\nSection Context: %s\nOriginal Text: %q\n\nReturn only the rewritten text, no explanations.",
		langInstruction(loc), fieldContext, text)
	out, err := c.complete(ctx, "refine", prompt)
	if err != nil || strings.TrimSpace(out) == "" {
		return text
	}
	return strings.TrimSpace(out)
}

// GenerateList produces suggestion lines for a list field (inclusion
// criteria, analysis steps, ...). On failure it returns an empty list.
func (c *Client) GenerateList(ctx context.Context, kind, studyContext string, loc classify.Locale) []string {
	prompt := fmt.Sprintf(
		"Generate a list of 5 to 7 %s suitable for the study. %s\n\nStudy Context:\n%s\n\nResponse Format: One item per line. No numbers, no bullets at start.",
		kind, langInstruction(loc), studyContext)
	out, err := c.complete(ctx, "generate_list", prompt)
	if err != nil {
		return nil
	}
	return parseLines(out)
}

// Generate produces freeform text for one field. On failure it returns "".
func (c *Client) Generate(ctx context.Context, studyContext, instruction string, loc classify.Locale) string {
	prompt := fmt.Sprintf(
		"%s %s\n\nStudy Info:\n%s\n\nResponse (formal, academic text only):",
		instruction, langInstruction(loc), studyContext)
	out, err := c.complete(ctx, "generate", prompt)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// GenerateWithReferences is Generate plus a trailing bibliography block,
// separated by the reference marker convention. Failure yields two empty
// strings.
func (c *Client) GenerateWithReferences(ctx context.Context, studyContext, instruction string, loc classify.Locale) (text, references string) {
	prompt := fmt.Sprintf(
		"%s %s\nCite sources with numeric in-text markers like [1]. After the body, output the literal line %q followed by the numbered reference list in Vancouver style.\n\nStudy Info:\n%s",
		instruction, langInstruction(loc), ReferenceMarker, studyContext)
	out, err := c.complete(ctx, "generate_with_references", prompt)
	if err != nil {
		return "", ""
	}
	return SplitReferences(out)
}

func (c *Client) complete(ctx context.Context, op, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		start := time.Now()
		resp, err := c.messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(c.model),
			MaxTokens: 2048,
			System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
			Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		})
		if err != nil {
			lastErr = err
			class := classifyTransportError(err)
			log.Printf("aitext transport_error op=%s attempt=%d class=%d elapsed_ms=%d err=%q",
				op, attempt, class, time.Since(start).Milliseconds(), err.Error())
			if attempt < 2 && (class == failureTimeout || class == failureRateLimit || class == failureServer) {
				time.Sleep(time.Duration(attempt) * time.Second)
				continue
			}
			return "", err
		}
		var sb strings.Builder
		for _, b := range resp.Content {
			if b.Type == "text" {
				sb.WriteString(b.Text)
			}
		}
		log.Printf("aitext success op=%s attempt=%d elapsed_ms=%d response_chars=%d",
			op, attempt, time.Since(start).Milliseconds(), sb.Len())
		return sb.String(), nil
	}
	return "", lastErr
}

func langInstruction(loc classify.Locale) string {
	if loc == classify.LocaleES {
		return "Responde exclusivamente en Español."
	}
	return "Respond exclusively in English."
}

var bulletPrefixRe = regexp.MustCompile(`^[-*•\d.)\]\[]+\s*`)

// parseLines splits a generated block into clean suggestion lines, stripping
// any bullet or number prefixes the model added despite instructions.
func parseLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(bulletPrefixRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if len(line) > 3 {
			lines = append(lines, line)
		}
	}
	return lines
}

func classifyTransportError(err error) failureClass {
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return failureTimeout
	}
	msg := strings.ToLower(err.Error())
	if m := statusCodeRe.FindStringSubmatch(msg); len(m) == 2 {
		switch {
		case strings.HasPrefix(m[1], "429"):
			return failureRateLimit
		case strings.HasPrefix(m[1], "5"):
			return failureServer
		case strings.HasPrefix(m[1], "4"):
			return failureClient
		}
	}
	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "status 429"):
		return failureRateLimit
	case strings.Contains(msg, "status 4"):
		return failureClient
	default:
		return failureServer
	}
}
