package protocol

import "testing"

func TestAppendReferencesShiftsAndRenumbers(t *testing.T) {
	bib := "1. Smith J. First study. 2020.\n2. Jones K. Second study. 2021."
	body := "Prior work [1] established the effect."
	refs := "1. Brown L. New evidence. 2024."

	gotBody, gotBib := AppendReferences(bib, body, refs)

	if gotBody != "Prior work [3] established the effect." {
		t.Errorf("body = %q", gotBody)
	}
	wantBib := bib + "\n3. Brown L. New evidence. 2024."
	if gotBib != wantBib {
		t.Errorf("bibliography = %q, want %q", gotBib, wantBib)
	}
}

func TestAppendReferencesIntoEmptyBibliography(t *testing.T) {
	body := "As shown in [1] and [2]."
	refs := "[1] Alpha A. 2023.\n[2] Beta B. 2024."

	gotBody, gotBib := AppendReferences("", body, refs)

	if gotBody != "As shown in [1] and [2]." {
		t.Errorf("body = %q, want markers unshifted", gotBody)
	}
	if gotBib != "1. Alpha A. 2023.\n2. Beta B. 2024." {
		t.Errorf("bibliography = %q", gotBib)
	}
}

func TestAppendReferencesNoNewEntries(t *testing.T) {
	bib := "1. Smith J. 2020."
	gotBody, gotBib := AppendReferences(bib, "No citations here.", "")
	if gotBody != "No citations here." {
		t.Errorf("body = %q", gotBody)
	}
	if gotBib != bib {
		t.Errorf("bibliography = %q, want unchanged", gotBib)
	}
}

func TestAppendReferencesUnnumberedLines(t *testing.T) {
	bib := "1. Smith J. 2020."
	_, gotBib := AppendReferences(bib, "", "Brown L. Unnumbered entry. 2024.")
	want := "1. Smith J. 2020.\n2. Brown L. Unnumbered entry. 2024."
	if gotBib != want {
		t.Errorf("bibliography = %q, want %q", gotBib, want)
	}
}

func TestAppendReferencesParenthesisNumbering(t *testing.T) {
	bib := "1) Old entry."
	body := "See [1]."
	refs := "1) Fresh entry."
	gotBody, gotBib := AppendReferences(bib, body, refs)
	if gotBody != "See [2]." {
		t.Errorf("body = %q", gotBody)
	}
	if gotBib != "1) Old entry.\n2. Fresh entry." {
		t.Errorf("bibliography = %q", gotBib)
	}
}
