// Package httpapi exposes the draft wizard over HTTP. Handlers load a draft
// from the store, run the pure draft functions, persist, and return the
// updated document; no draft state lives in the server between requests.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/joelkehle/protocol-studio/internal/aitext"
	"github.com/joelkehle/protocol-studio/internal/classify"
	"github.com/joelkehle/protocol-studio/internal/draftstore"
	"github.com/joelkehle/protocol-studio/internal/protocol"
	"github.com/joelkehle/protocol-studio/internal/samplesize"
	"github.com/joelkehle/protocol-studio/internal/synopsis"
)

type Server struct {
	store *draftstore.Store
	ai    *aitext.Client
}

// NewServer builds the API handler. The AI client may be nil; the /ai/*
// endpoints then answer 503 and everything else works normally.
func NewServer(store *draftstore.Store, ai *aitext.Client) http.Handler {
	s := &Server{store: store, ai: ai}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/classify", s.handleClassify)
	mux.HandleFunc("/v1/drafts", s.handleDrafts)
	mux.HandleFunc("/v1/drafts/", s.handleDraft)
	mux.HandleFunc("/v1/health", s.handleHealth)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "ai": s.ai != nil})
}

type classifyRequest struct {
	PICO    classify.PICO    `json:"pico"`
	Answers classify.Answers `json:"answers"`
	Locale  classify.Locale  `json:"locale"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req classifyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.PICO.Population) == "" ||
		strings.TrimSpace(req.PICO.Intervention) == "" ||
		strings.TrimSpace(req.PICO.Outcome) == "" {
		writeError(w, http.StatusBadRequest, "population, intervention, and outcome are required")
		return
	}
	draft := classify.Classify(req.PICO, req.Answers, req.Locale)
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleDrafts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		d := protocol.NewDraft()
		token, err := s.store.Create(d)
		if err != nil {
			log.Printf("create draft: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to create draft")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"token": token, "draft": d})
	case http.MethodGet:
		summaries, err := s.store.List()
		if err != nil {
			log.Printf("list drafts: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to list drafts")
			return
		}
		if summaries == nil {
			summaries = []draftstore.Summary{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"drafts": summaries})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleDraft routes /v1/drafts/{token} and its sub-resources.
func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/drafts/")
	parts := strings.SplitN(rest, "/", 2)
	token := parts[0]
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing draft token")
		return
	}
	sub := ""
	if len(parts) == 2 {
		sub = parts[1]
	}

	switch sub {
	case "":
		s.handleDraftRoot(w, r, token)
	case "edits":
		s.withDraft(w, r, token, http.MethodPost, s.applyEdit)
	case "estimate":
		s.withDraft(w, r, token, http.MethodPost, s.applyEstimate)
	case "ai/refine":
		s.withAIDraft(w, r, token, s.applyRefine)
	case "ai/generate":
		s.withAIDraft(w, r, token, s.applyGenerate)
	case "ai/generate-list":
		s.withAIDraft(w, r, token, s.applyGenerateList)
	case "ai/background":
		s.withAIDraft(w, r, token, s.applyBackground)
	case "ai/suggest-type":
		s.withAIDraft(w, r, token, s.applySuggestType)
	case "document":
		s.handleDocument(w, r, token)
	case "preview":
		s.handlePreview(w, r, token)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleDraftRoot(w http.ResponseWriter, r *http.Request, token string) {
	switch r.Method {
	case http.MethodGet:
		d, err := s.store.Get(token)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	case http.MethodPut:
		var d protocol.Draft
		if !decodeBody(w, r, &d) {
			return
		}
		d = protocol.Reconcile(d)
		if err := s.store.Put(token, d); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	case http.MethodDelete:
		if err := s.store.Delete(token); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": token})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// draftMutation loads, mutates, persists. Returning handled=true means the
// mutation already wrote a response (an error or a non-draft payload).
type draftMutation func(w http.ResponseWriter, r *http.Request, d *protocol.Draft) (handled bool)

func (s *Server) withDraft(w http.ResponseWriter, r *http.Request, token, method string, fn draftMutation) {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	d, err := s.store.Get(token)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if fn(w, r, &d) {
		return
	}
	if err := s.store.Put(token, d); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) withAIDraft(w http.ResponseWriter, r *http.Request, token string, fn draftMutation) {
	if s.ai == nil {
		writeError(w, http.StatusServiceUnavailable, "text generation is not configured")
		return
	}
	s.withDraft(w, r, token, http.MethodPost, fn)
}

func (s *Server) applyEdit(w http.ResponseWriter, r *http.Request, d *protocol.Draft) bool {
	var e protocol.Edit
	if !decodeBody(w, r, &e) {
		return true
	}
	if err := protocol.Apply(d, e); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return true
	}
	return false
}

// applyEstimate is the manual estimator trigger. Unlike the silent automatic
// recompute during edits, a failed parse here surfaces as 422.
func (s *Server) applyEstimate(w http.ResponseWriter, r *http.Request, d *protocol.Draft) bool {
	p := d.StatsParams
	total, ok := samplesize.EstimateTotal(p.Alpha, p.Power, p.DeltaOrEffectSize, p.DropoutRate)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "no usable effect size: set statsParams.deltaOrEffectSize to a positive number")
		return true
	}
	if err := protocol.Apply(d, protocol.Edit{Kind: protocol.EditScalar, Field: "totalSubjects", Value: strconv.Itoa(total)}); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return true
	}
	return false
}

type refineRequest struct {
	Kind    protocol.EditKind `json:"kind"`
	Field   string            `json:"field"`
	Index   int               `json:"index,omitempty"`
	Text    string            `json:"text"`
	Context string            `json:"context"`
	Locale  classify.Locale   `json:"locale"`
}

func (s *Server) applyRefine(w http.ResponseWriter, r *http.Request, d *protocol.Draft) bool {
	var req refineRequest
	if !decodeBody(w, r, &req) {
		return true
	}
	if req.Kind == "" {
		req.Kind = protocol.EditScalar
	}
	refined := s.ai.Refine(r.Context(), req.Text, req.Context, req.Locale)
	if err := protocol.Apply(d, protocol.Edit{Kind: req.Kind, Field: req.Field, Index: req.Index, Value: refined}); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return true
	}
	return false
}

type generateRequest struct {
	Field       string          `json:"field"`
	Instruction string          `json:"instruction"`
	Locale      classify.Locale `json:"locale"`
}

func (s *Server) applyGenerate(w http.ResponseWriter, r *http.Request, d *protocol.Draft) bool {
	var req generateRequest
	if !decodeBody(w, r, &req) {
		return true
	}
	out := s.ai.Generate(r.Context(), studyContext(*d), req.Instruction, req.Locale)
	if out == "" {
		return false
	}
	if err := protocol.Apply(d, protocol.Edit{Kind: protocol.EditScalar, Field: req.Field, Value: out}); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return true
	}
	return false
}

type generateListRequest struct {
	Field  string          `json:"field"`
	Kind   string          `json:"kind"`
	Locale classify.Locale `json:"locale"`
}

func (s *Server) applyGenerateList(w http.ResponseWriter, r *http.Request, d *protocol.Draft) bool {
	var req generateListRequest
	if !decodeBody(w, r, &req) {
		return true
	}
	kind := req.Kind
	if kind == "" {
		kind = req.Field
	}
	items := s.ai.GenerateList(r.Context(), kind, studyContext(*d), req.Locale)
	if err := protocol.AppendListItems(d, req.Field, items); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return true
	}
	return false
}

type backgroundRequest struct {
	Locale classify.Locale `json:"locale"`
}

// applyBackground writes a generated background section into contextSummary
// and merges its cited references into the bibliography, renumbering both
// sides so markers stay consistent with what was already there.
func (s *Server) applyBackground(w http.ResponseWriter, r *http.Request, d *protocol.Draft) bool {
	var req backgroundRequest
	if !decodeBody(w, r, &req) {
		return true
	}
	const instruction = "Write a Background / State of the Art section for this protocol synopsis. Summarize current knowledge, the evidence gap, and the clinical relevance of the question."
	text, refs := s.ai.GenerateWithReferences(r.Context(), studyContext(*d), instruction, req.Locale)
	if text == "" {
		return false
	}
	body, bib := protocol.AppendReferences(d.Bibliography, text, refs)
	d.ContextSummary = body
	d.Bibliography = bib
	return false
}

type suggestTypeRequest struct {
	Locale classify.Locale `json:"locale"`
}

func (s *Server) applySuggestType(w http.ResponseWriter, r *http.Request, d *protocol.Draft) bool {
	var req suggestTypeRequest
	if !decodeBody(w, r, &req) {
		return true
	}
	const instruction = "Classify the study methodology into exactly one of these categories: 'Ensayo Clínico Aleatorizado', 'Estudio de Cohortes', 'Estudio de Casos y Controles', 'Estudio Transversal', 'Estudio Descriptivo'. Return only the category name."
	out := s.ai.Generate(r.Context(), studyContext(*d), instruction, req.Locale)
	if out == "" {
		return false
	}
	d.StudyType = classify.SnapStudyType(out, req.Locale)
	return false
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request, token string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	d, err := s.store.Get(token)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	md := synopsis.BuildMarkdown(d, localeParam(r))
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(md))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request, token string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	d, err := s.store.Get(token)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	html, err := synopsis.BuildPreviewHTML(d, localeParam(r))
	if err != nil {
		log.Printf("render preview token=%s err=%v", token, err)
		writeError(w, http.StatusInternalServerError, "failed to render preview")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func localeParam(r *http.Request) classify.Locale {
	if r.URL.Query().Get("locale") == string(classify.LocaleES) {
		return classify.LocaleES
	}
	return classify.LocaleEN
}

// studyContext is the draft summary every generation prompt carries.
func studyContext(d protocol.Draft) string {
	return fmt.Sprintf("Title: %s\nStudy Type: %s\nStudy Design: %s\nPrimary Objective: %s\nPopulation: %s",
		d.Title, d.StudyType, d.StudyDesign, d.PrimaryObjective, d.PopulationDescription)
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, draftstore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "draft not found")
		return
	}
	log.Printf("draft store: %v", err)
	writeError(w, http.StatusInternalServerError, "storage failure")
}
