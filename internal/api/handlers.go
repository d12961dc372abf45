package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mr-romero/desmos-code-hub/internal/analysis"
	"github.com/mr-romero/desmos-code-hub/internal/authoring"
	"github.com/mr-romero/desmos-code-hub/internal/llm"
)

// analyzeRequest is the POST /api/analyze body. Exactly one analysis call
// is made per request; the UI disables its button while one is in flight.
type analyzeRequest struct {
	QuestionType string `json:"question_type"`
	Model        string `json:"model"`
	Instructions string `json:"instructions"`
	ProblemText  string `json:"problem_text"`
	ImageB64     string `json:"image_b64"`
	ImageMIME    string `json:"image_mime"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	qt := analysis.QuestionType(req.QuestionType)
	if req.QuestionType != "" && !qt.Valid() {
		writeError(w, http.StatusBadRequest, "unknown question_type: "+req.QuestionType)
		return
	}

	input := analysis.AnalyzeInput{
		QuestionType:   qt,
		PromptOverride: req.Instructions,
		ProblemText:    req.ProblemText,
	}

	if req.ImageB64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.ImageB64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "image_b64 is not valid base64")
			return
		}
		input.Image = &llm.ImageAttachment{Data: data, MIMEType: req.ImageMIME}
	}

	if input.Image == nil && strings.TrimSpace(input.ProblemText) == "" {
		writeError(w, http.StatusBadRequest, "provide a problem image or a problem description")
		return
	}

	cfg := s.cfg.ModelOverride(req.Model)
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	provider, err := s.NewProvider(r.Context(), cfg, s.events)
	if err != nil {
		s.log.Error("provider init failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not initialize the LLM provider")
		return
	}

	analyzer := analysis.New(provider, analysis.DefaultConfig())
	rec, err := analyzer.Analyze(r.Context(), input)
	if err != nil {
		if errors.Is(err, analysis.ErrNoProblem) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// Endpoint failure: surface the provider's message to the teacher.
		s.log.Warn("analysis failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	provider, err := s.NewProvider(r.Context(), s.cfg, s.events)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not initialize the LLM provider")
		return
	}

	lister, ok := provider.(llm.ModelLister)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"models": []llm.ModelInfo{}})
		return
	}

	models, err := lister.ListModels(r.Context())
	if err != nil {
		s.log.Warn("model listing failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"models": models})
}

func (s *Server) handleSnippets(w http.ResponseWriter, r *http.Request) {
	var form authoring.FormState
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if form.QuestionNumber < 1 {
		writeError(w, http.StatusBadRequest, "question_number must be at least 1")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"snippets": form.Snippets()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
