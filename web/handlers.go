package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pychain/forge/domain/catalog"
	"github.com/pychain/forge/domain/contract"
	"github.com/pychain/forge/domain/generation"
	"github.com/pychain/forge/domain/rules"
	"github.com/pychain/forge/ports"
)

// ArchetypeResponse is the API shape of an archetype descriptor.
type ArchetypeResponse struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"display_name"`
	Kind        string          `json:"kind"`
	Parameters  []ParamResponse `json:"parameters"`
}

// ParamResponse is the API shape of an archetype parameter.
type ParamResponse struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Default  string `json:"default,omitempty"`
}

// ModuleResponse is the API shape of a module descriptor.
type ModuleResponse struct {
	ID               string   `json:"id"`
	DisplayName      string   `json:"display_name"`
	Category         string   `json:"category"`
	Conflicts        []string `json:"conflicts,omitempty"`
	StorageNamespace string   `json:"storage_namespace"`
}

// ToggleRequest toggles one module in a selection.
type ToggleRequest struct {
	Selection []string `json:"selection"`
	ModuleID  string   `json:"module_id"`
}

// ToggleResponse returns the selection after the toggle contract is applied.
type ToggleResponse struct {
	Selection []string       `json:"selection"`
	Conflicts []ConflictPair `json:"conflicts,omitempty"`
}

// ConflictPair is a jointly-selected conflicting pair.
type ConflictPair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// GenerateRequest is the generation pipeline input.
type GenerateRequest struct {
	ArchetypeID string            `json:"archetype_id"`
	Parameters  map[string]string `json:"parameters"`
	Modules     []string          `json:"modules"`
}

// GenerateResponse is the generation pipeline output.
type GenerateResponse struct {
	ID          string             `json:"id"`
	Source      string             `json:"source"`
	Diagnostics []rules.Diagnostic `json:"diagnostics"`
	CreatedAt   time.Time          `json:"created_at"`
}

// GenerationSummary is a history list entry (without source).
type GenerationSummary struct {
	ID           string    `json:"id"`
	ArchetypeID  string    `json:"archetype_id"`
	ContractName string    `json:"contract_name"`
	Modules      []string  `json:"modules"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListArchetypes handles GET /api/archetypes.
//
//	@Summary	List archetypes
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	map[string][]ArchetypeResponse
//	@Router		/api/archetypes [get]
func (h *Handler) ListArchetypes(w http.ResponseWriter, r *http.Request) {
	var out []ArchetypeResponse
	for _, a := range h.catalog.Archetypes() {
		out = append(out, archetypeToResponse(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{"archetypes": out})
}

// ListModules handles GET /api/modules. With ?archetype= it returns only
// compatible modules; otherwise the full catalog.
//
//	@Summary	List modules
//	@Tags		catalog
//	@Produce	json
//	@Param		archetype	query		string	false	"archetype id"
//	@Success	200			{object}	map[string][]ModuleResponse
//	@Router		/api/modules [get]
func (h *Handler) ListModules(w http.ResponseWriter, r *http.Request) {
	var mods []catalog.Module
	if id := r.URL.Query().Get("archetype"); id != "" {
		mods = h.catalog.ModulesFor(id)
	} else {
		mods = h.catalog.Modules()
	}

	var out []ModuleResponse
	for _, m := range mods {
		out = append(out, moduleToResponse(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"modules": out})
}

// ToggleSelection handles POST /api/selection/toggle.
//
//	@Summary	Toggle a module in a selection
//	@Tags		catalog
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ToggleRequest	true	"toggle request"
//	@Success	200		{object}	ToggleResponse
//	@Router		/api/selection/toggle [post]
func (h *Handler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ModuleID == "" {
		writeError(w, http.StatusBadRequest, "module_id is required")
		return
	}

	next := h.catalog.Toggle(req.Selection, req.ModuleID)

	resp := ToggleResponse{Selection: next}
	for _, p := range h.catalog.FindConflicts(next) {
		resp.Conflicts = append(resp.Conflicts, ConflictPair{First: p.First, Second: p.Second})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Generate handles POST /api/generate.
//
//	@Summary	Generate contract source
//	@Tags		generate
//	@Accept		json
//	@Produce	json
//	@Param		request	body		GenerateRequest	true	"contract spec"
//	@Success	200		{object}	GenerateResponse
//	@Security	ApiKeyAuth
//	@Router		/api/generate [post]
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := h.generate.Generate(r.Context(), contract.Spec{
		ArchetypeID: req.ArchetypeID,
		Parameters:  req.Parameters,
		Modules:     req.Modules,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("generation failed")
		writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		ID:          res.ID,
		Source:      res.Source,
		Diagnostics: res.Diagnostics,
		CreatedAt:   res.CreatedAt,
	})
}

// ListGenerations handles GET /api/generations.
//
//	@Summary	List generation history
//	@Tags		generate
//	@Produce	json
//	@Param		limit	query		int	false	"max records"
//	@Success	200		{object}	map[string][]GenerationSummary
//	@Security	ApiKeyAuth
//	@Router		/api/generations [get]
func (h *Handler) ListGenerations(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	recs, err := h.generate.History(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("history query failed")
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}

	var out []GenerationSummary
	for _, rec := range recs {
		out = append(out, GenerationSummary{
			ID:           rec.ID,
			ArchetypeID:  rec.ArchetypeID,
			ContractName: rec.ContractName,
			Modules:      rec.Modules,
			CreatedAt:    rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": out})
}

// GetGeneration handles GET /api/generations/{id}.
//
//	@Summary	Get a generation record
//	@Tags		generate
//	@Produce	json
//	@Param		id	path		string	true	"generation id"
//	@Success	200	{object}	GenerateResponse
//	@Failure	404	{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/api/generations/{id} [get]
func (h *Handler) GetGeneration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.generate.GetGeneration(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, http.StatusNotFound, "generation not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("generation lookup failed")
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, generationToResponse(rec))
}

func archetypeToResponse(a catalog.Archetype) ArchetypeResponse {
	out := ArchetypeResponse{
		ID:          a.ID,
		DisplayName: a.DisplayName,
		Kind:        string(a.Kind),
	}
	for _, p := range a.Parameters {
		out.Parameters = append(out.Parameters, ParamResponse{
			Name:     p.Name,
			Label:    p.Label,
			Type:     string(p.Type),
			Required: p.Required,
			Default:  p.Default,
		})
	}
	return out
}

func moduleToResponse(m catalog.Module) ModuleResponse {
	return ModuleResponse{
		ID:               m.ID,
		DisplayName:      m.DisplayName,
		Category:         string(m.Category),
		Conflicts:        m.Conflicts,
		StorageNamespace: m.StorageNamespace,
	}
}

func generationToResponse(rec generation.Record) GenerateResponse {
	return GenerateResponse{
		ID:          rec.ID,
		Source:      rec.Source,
		Diagnostics: rec.Diagnostics,
		CreatedAt:   rec.CreatedAt,
	}
}
