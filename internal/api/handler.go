package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/eugenenazirov/exhibit-optimizer/internal/catalog"
	"github.com/eugenenazirov/exhibit-optimizer/internal/knapsack"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires solver and catalog dependencies into HTTP handlers.
type Handler struct {
	solver  knapsack.Solver
	storage catalog.Storage

	clock func() time.Time

	mu               sync.RWMutex
	catalogUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(solver knapsack.Solver, store catalog.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		solver:  solver,
		storage: store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.catalogUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetArtifacts(w http.ResponseWriter, r *http.Request) {
	_ = r
	cat, err := h.storage.GetCatalog()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := artifactsResponse{
		Artifacts: cat.Artifacts,
		Capacity:  cat.Capacity,
		UpdatedAt: h.currentCatalogUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutArtifacts(w http.ResponseWriter, r *http.Request) {
	var req artifactsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Artifacts) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid artifacts", "artifacts must contain at least one entry")
		return
	}

	next := catalog.Catalog{Artifacts: req.Artifacts}
	if req.Capacity != nil {
		next.Capacity = *req.Capacity
	} else {
		current, err := h.storage.GetCatalog()
		if err != nil {
			writeInternalError(w, err)
			return
		}
		next.Capacity = current.Capacity
	}

	if err := h.storage.SetCatalog(next); err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidArtifacts):
			writeError(w, http.StatusBadRequest, "Invalid artifacts", err.Error())
		case errors.Is(err, catalog.ErrInvalidCapacity):
			writeError(w, http.StatusBadRequest, "Invalid capacity", err.Error())
		default:
			writeInternalError(w, err)
		}
		return
	}

	h.markCatalogUpdated()

	cat, err := h.storage.GetCatalog()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := artifactsResponse{
		Artifacts: cat.Artifacts,
		Capacity:  cat.Capacity,
		UpdatedAt: h.currentCatalogUpdatedAt(),
		Message:   "Catalog updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
			return
		}
	}

	cat, err := h.storage.GetCatalog()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	capacity := cat.Capacity
	if req.Capacity != nil {
		if err := catalog.ValidateCapacity(*req.Capacity); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid capacity", err.Error())
			return
		}
		capacity = *req.Capacity
	}

	values := cat.Values()
	weights := cat.Weights()

	start := time.Now()
	sol, solveErr := h.solver.Solve(values, weights, capacity)
	elapsed := time.Since(start)

	if solveErr != nil {
		// the catalog is validated on every write, so a solver rejection here
		// means the service state is corrupt
		writeInternalError(w, solveErr)
		return
	}

	selected := make([]selectedArtifact, 0, len(sol.Items))
	for _, idx := range sol.Items {
		selected = append(selected, selectedArtifact{
			Index:  idx,
			Value:  values[idx-1],
			Weight: weights[idx-1],
		})
	}

	sum := knapsack.Summarize(sol, len(cat.Artifacts), capacity)

	resp := optimizeResponse{
		Items:             sol.Items,
		Artifacts:         selected,
		TotalValue:        sum.TotalValue,
		TotalWeight:       sum.TotalWeight,
		Capacity:          sum.Capacity,
		UtilizationPct:    sum.UtilizationPct,
		PossibleSubsets:   sum.PossibleSubsets,
		TableRows:         sum.TableRows,
		TableCols:         sum.TableCols,
		TableCells:        sum.TableCells,
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentCatalogUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.catalogUpdatedAt
}

func (h *Handler) markCatalogUpdated() {
	h.mu.Lock()
	h.catalogUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type artifactsRequest struct {
	Artifacts []catalog.Artifact `json:"artifacts"`
	Capacity  *int               `json:"capacity,omitempty"`
}

type optimizeRequest struct {
	Capacity *int `json:"capacity,omitempty"`
}

type selectedArtifact struct {
	Index  int `json:"index"`
	Value  int `json:"value"`
	Weight int `json:"weight"`
}

type optimizeResponse struct {
	Items             []int              `json:"items"`
	Artifacts         []selectedArtifact `json:"artifacts"`
	TotalValue        int                `json:"totalValue"`
	TotalWeight       int                `json:"totalWeight"`
	Capacity          int                `json:"capacity"`
	UtilizationPct    float64            `json:"utilizationPct"`
	PossibleSubsets   uint64             `json:"possibleSubsets"`
	TableRows         int                `json:"tableRows"`
	TableCols         int                `json:"tableCols"`
	TableCells        int                `json:"tableCells"`
	CalculationTimeMs int64              `json:"calculationTimeMs"`
}

type artifactsResponse struct {
	Artifacts []catalog.Artifact `json:"artifacts"`
	Capacity  int                `json:"capacity"`
	UpdatedAt time.Time          `json:"updatedAt"`
	Message   string             `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
