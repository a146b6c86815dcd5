package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	internalcommon "github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/pkg/indexer"
	"github.com/goran-ethernal/BlockIndexor/pkg/store"
)

// IndexerRegistry defines the interface for accessing registered indexers.
type IndexerRegistry interface {
	GetByName(name string) (indexer.Synced, bool)
	ListAll() []indexer.Synced
}

// Handler handles HTTP requests for the API.
type Handler struct {
	registry IndexerRegistry
	log      *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(registry IndexerRegistry, log *logger.Logger) *Handler {
	return &Handler{
		registry: registry,
		log:      log,
	}
}

// ListIndexers returns a list of all registered indexers.
// @Summary List all indexers
// @Description Get all registered indexers with their sync state and the query endpoints they serve
// @Tags Indexers
// @Produce json
// @Success 200 {array} IndexerInfo "List of indexers"
// @Router /indexers [get]
func (h *Handler) ListIndexers(w http.ResponseWriter, r *http.Request) {
	indexers := h.registry.ListAll()

	infos := make([]IndexerInfo, 0, len(indexers))
	for _, idx := range indexers {
		info := IndexerInfo{
			IndexerStatus: indexerStatus(idx),
			Endpoints:     []string{},
		}

		if _, ok := idx.Indexer().(indexer.TimestampQueryable); ok {
			info.Endpoints = append(info.Endpoints,
				fmt.Sprintf("/api/v1/indexers/%s/blocks/by-timestamp", idx.Name()))
		}
		if _, ok := idx.Indexer().(indexer.BlockQueryable); ok {
			info.Endpoints = append(info.Endpoints,
				fmt.Sprintf("/api/v1/indexers/%s/blocks/{hash}", idx.Name()))
		}

		infos = append(infos, info)
	}

	respondJSON(w, http.StatusOK, infos)
}

// GetBlocksByTimestamp returns the canonical blocks whose time falls in a range.
// @Summary Get blocks by timestamp
// @Description Retrieve the hashes of canonical blocks with from <= time <= to. An empty list is returned when to < from.
// @Tags Blocks
// @Produce json
// @Param name path string true "Indexer name"
// @Param from query string true "Range start, decimal or 0x-prefixed hex unix time"
// @Param to query string true "Range end, decimal or 0x-prefixed hex unix time"
// @Success 200 {object} BlocksByTimestampResponse "Matching block hashes"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 404 {object} ErrorResponse "Indexer not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /indexers/{name}/blocks/by-timestamp [get]
func (h *Handler) GetBlocksByTimestamp(w http.ResponseWriter, r *http.Request) {
	idx, ok := h.lookup(w, r)
	if !ok {
		return
	}

	queryable, ok := idx.Indexer().(indexer.TimestampQueryable)
	if !ok {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("indexer '%s' does not support timestamp queries", idx.Name()))
		return
	}

	from, err := parseTimeParam(r, "from")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	set, err := queryable.GetBlockHashesByTimestamp(r.Context(), from, to)
	if err != nil {
		h.log.Errorf("Failed to query blocks by timestamp: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query blocks")
		return
	}

	hashes := make([]common.Hash, 0, len(set))
	for hash := range set {
		hashes = append(hashes, hash)
	}
	slices.SortFunc(hashes, func(a, b common.Hash) int { return bytes.Compare(a[:], b[:]) })

	respondJSON(w, http.StatusOK, BlocksByTimestampResponse{
		From:   from,
		To:     to,
		Count:  len(hashes),
		Hashes: hashes,
	})
}

// GetBlockByHash resolves a canonical block by its hash.
// @Summary Get block by hash
// @Description Retrieve the height and time of an indexed canonical block
// @Tags Blocks
// @Produce json
// @Param name path string true "Indexer name"
// @Param hash path string true "0x-prefixed 32 byte block hash"
// @Success 200 {object} indexer.BlockInfo "Block"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 404 {object} ErrorResponse "Indexer or block not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /indexers/{name}/blocks/{hash} [get]
func (h *Handler) GetBlockByHash(w http.ResponseWriter, r *http.Request) {
	idx, ok := h.lookup(w, r)
	if !ok {
		return
	}

	queryable, ok := idx.Indexer().(indexer.BlockQueryable)
	if !ok {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("indexer '%s' does not support block queries", idx.Name()))
		return
	}

	raw, err := hexutil.Decode(r.PathValue("hash"))
	if err != nil || len(raw) != common.HashLength {
		respondError(w, http.StatusBadRequest, "invalid hash: must be 0x-prefixed 32 byte hex")
		return
	}
	hash := common.BytesToHash(raw)

	info, err := queryable.GetBlockByHash(r.Context(), hash)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("block %s not found", hash.Hex()))
		return
	}
	if err != nil {
		h.log.Errorf("Failed to get block %s: %v", hash.Hex(), err)
		respondError(w, http.StatusInternalServerError, "failed to get block")
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// Health returns the health status of the API and all indexers.
// @Summary Health check
// @Description Check the health status of the API and the sync state of all registered indexers
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "API and indexer health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	indexers := h.registry.ListAll()

	statuses := make([]IndexerStatus, 0, len(indexers))
	for _, idx := range indexers {
		statuses = append(statuses, indexerStatus(idx))
	}

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Indexers:  statuses,
	}

	respondJSON(w, http.StatusOK, response)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (indexer.Synced, bool) {
	name := r.PathValue("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "indexer name is required")
		return nil, false
	}

	idx, ok := h.registry.GetByName(name)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("indexer '%s' not found", name))
		return nil, false
	}

	return idx, true
}

func indexerStatus(idx indexer.Synced) IndexerStatus {
	status := IndexerStatus{
		Name:        idx.Name(),
		Type:        idx.Indexer().GetType(),
		StartHeight: idx.StartHeight(),
	}

	if state, ok := idx.SyncState(); ok {
		status.Synced = true
		status.Height = state.Height
		status.Hash = &state.Hash
	}

	return status
}

// parseTimeParam parses a required unix time query parameter.
func parseTimeParam(r *http.Request, name string) (uint32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}

	ts, err := internalcommon.ParseUint32orHex(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return ts, nil
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// encode first so a failure can still change the status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)

	// headers are sent; a failed write can't be reported to the client
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	respondJSON(w, status, response)
}
