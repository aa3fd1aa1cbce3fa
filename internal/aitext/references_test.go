package aitext

import "testing"

func TestSplitReferencesMarker(t *testing.T) {
	out := "Body text [1].\n\n" + ReferenceMarker + "\n1. Smith J. Trial results. 2020.\n2. Jones K. Review. 2021."
	body, refs := SplitReferences(out)
	if body != "Body text [1]." {
		t.Errorf("body = %q", body)
	}
	if refs != "1. Smith J. Trial results. 2020.\n2. Jones K. Review. 2021." {
		t.Errorf("references = %q", refs)
	}
}

func TestSplitReferencesHeuristicTail(t *testing.T) {
	out := "Paragraph one.\n\nParagraph two cites [1] and [2].\n\n1. Smith J. 2020.\n[2] Jones K. 2021."
	body, refs := SplitReferences(out)
	if body != "Paragraph one.\n\nParagraph two cites [1] and [2]." {
		t.Errorf("body = %q", body)
	}
	if refs != "1. Smith J. 2020.\n[2] Jones K. 2021." {
		t.Errorf("references = %q", refs)
	}
}

func TestSplitReferencesNoReferences(t *testing.T) {
	out := "Just a paragraph without citations.\n"
	body, refs := SplitReferences(out)
	if body != "Just a paragraph without citations." {
		t.Errorf("body = %q", body)
	}
	if refs != "" {
		t.Errorf("references = %q, want empty", refs)
	}
}
