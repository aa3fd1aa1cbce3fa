package aitext

import (
	"context"
	"errors"
	"reflect"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/joelkehle/protocol-studio/internal/classify"
)

// mockMessager implements Messager for testing.
type mockMessager struct {
	response *anthropic.Message
	err      error
	calls    int
}

func (m *mockMessager) New(_ context.Context, _ anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	m.calls++
	return m.response, m.err
}

func newMockMessage(text string) *anthropic.Message {
	return &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: text},
		},
	}
}

func TestRefineReturnsRewrittenText(t *testing.T) {
	c := NewClient(&mockMessager{response: newMockMessage("The cohort will be followed for twelve months.")}, "")
	got := c.Refine(context.Background(), "we follow people for a year", "Follow-up", classify.LocaleEN)
	if got != "The cohort will be followed for twelve months." {
		t.Errorf("Refine = %q", got)
	}
}

func TestRefineDegradesToOriginalOnFailure(t *testing.T) {
	mock := &mockMessager{err: errors.New("status 400 bad request")}
	c := NewClient(mock, "")
	got := c.Refine(context.Background(), "original wording here", "Context", classify.LocaleEN)
	if got != "original wording here" {
		t.Errorf("Refine on failure = %q, want original back", got)
	}
}

func TestRefineSkipsTrivialInput(t *testing.T) {
	mock := &mockMessager{response: newMockMessage("should not be called")}
	c := NewClient(mock, "")
	if got := c.Refine(context.Background(), "ok", "Context", classify.LocaleEN); got != "ok" {
		t.Errorf("Refine = %q, want short input untouched", got)
	}
	if mock.calls != 0 {
		t.Errorf("calls = %d, want 0 for trivial input", mock.calls)
	}
}

func TestGenerateListParsesAndFilters(t *testing.T) {
	out := "1. Adults aged 18 or older\n- Signed informed consent\n* Confirmed diagnosis\n\nok\n"
	c := NewClient(&mockMessager{response: newMockMessage(out)}, "")
	got := c.GenerateList(context.Background(), "inclusion criteria", "ctx", classify.LocaleEN)
	want := []string{"Adults aged 18 or older", "Signed informed consent", "Confirmed diagnosis"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GenerateList = %v, want %v", got, want)
	}
}

func TestGenerateListEmptyOnFailure(t *testing.T) {
	c := NewClient(&mockMessager{err: errors.New("status 400")}, "")
	if got := c.GenerateList(context.Background(), "criteria", "ctx", classify.LocaleEN); got != nil {
		t.Errorf("GenerateList on failure = %v, want nil", got)
	}
}

func TestGenerateEmptyOnFailure(t *testing.T) {
	c := NewClient(&mockMessager{err: errors.New("status 401 unauthorized")}, "")
	if got := c.Generate(context.Background(), "ctx", "Write a rationale.", classify.LocaleEN); got != "" {
		t.Errorf("Generate on failure = %q, want empty", got)
	}
}

func TestGenerateWithReferencesSplitsOnMarker(t *testing.T) {
	out := "Background paragraph citing [1].\n" + ReferenceMarker + "\n1. Smith J. 2020."
	c := NewClient(&mockMessager{response: newMockMessage(out)}, "")
	body, refs := c.GenerateWithReferences(context.Background(), "ctx", "Write a background.", classify.LocaleEN)
	if body != "Background paragraph citing [1]." {
		t.Errorf("body = %q", body)
	}
	if refs != "1. Smith J. 2020." {
		t.Errorf("references = %q", refs)
	}
}

func TestDefaultModelApplied(t *testing.T) {
	c := NewClient(&mockMessager{}, "")
	if c.ModelName() != DefaultModel {
		t.Errorf("ModelName = %q, want %q", c.ModelName(), DefaultModel)
	}
}

func TestClassifyTransportError(t *testing.T) {
	cases := []struct {
		err  error
		want failureClass
	}{
		{context.DeadlineExceeded, failureTimeout},
		{errors.New("status 429 too many requests"), failureRateLimit},
		{errors.New("status 503 service unavailable"), failureServer},
		{errors.New("status 400 bad request"), failureClient},
		{errors.New("connection reset by peer"), failureServer},
	}
	for _, tc := range cases {
		if got := classifyTransportError(tc.err); got != tc.want {
			t.Errorf("classifyTransportError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
