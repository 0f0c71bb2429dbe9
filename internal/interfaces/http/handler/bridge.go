package handler

import (
	"github.com/gin-gonic/gin"
	appbridge "github.com/openmarket/econbridge/internal/application/bridge"
	"github.com/openmarket/econbridge/internal/domain/bridge"
	"github.com/openmarket/econbridge/internal/domain/listing"
	"go.uber.org/zap"
)

// BridgeHandler exposes read and admin endpoints over the bridge's state
type BridgeHandler struct {
	BaseHandler
	reconciler *appbridge.Reconciler
	mappings   bridge.MappingStore
	logger     *zap.Logger
}

// NewBridgeHandler creates a new BridgeHandler
func NewBridgeHandler(reconciler *appbridge.Reconciler, mappings bridge.MappingStore, logger *zap.Logger) *BridgeHandler {
	return &BridgeHandler{
		reconciler: reconciler,
		mappings:   mappings,
		logger:     logger.Named("bridge_handler"),
	}
}

// RegisterRoutes registers the bridge routes
func (h *BridgeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	br := rg.Group("/bridge")
	{
		br.GET("/listings/:kind/:id", h.ListingState)
		br.GET("/mappings/:kind/:id", h.Mapping)
		br.POST("/rebuild", h.Rebuild)
	}
}

// ListingState reports where a listing sits in the mirroring lifecycle
func (h *BridgeHandler) ListingState(c *gin.Context) {
	kind := listing.Kind(c.Param("kind"))
	if kind != listing.KindRequest && kind != listing.KindOffer {
		h.BadRequest(c, "kind must be 'request' or 'offer'")
		return
	}

	state, err := h.reconciler.State(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		h.InternalError(c, "failed to query listing state")
		return
	}
	h.Success(c, gin.H{
		"kind":     kind,
		"local_id": c.Param("id"),
		"state":    state,
	})
}

// Mapping looks up the external identifier recorded for a local entity
func (h *BridgeHandler) Mapping(c *gin.Context) {
	kind := bridge.EntityKind(c.Param("kind"))
	if !kind.IsValid() {
		h.BadRequest(c, "unknown entity kind")
		return
	}

	externalID, ok, err := h.mappings.Get(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		h.InternalError(c, "failed to query mapping")
		return
	}
	if !ok {
		h.NotFound(c, "no mapping recorded for entity")
		return
	}
	h.Success(c, gin.H{
		"kind":        kind,
		"local_id":    c.Param("id"),
		"external_id": externalID,
	})
}

// Rebuild repopulates the mapping table by scanning the external graph
func (h *BridgeHandler) Rebuild(c *gin.Context) {
	result, err := h.reconciler.RebuildMappings(c.Request.Context())
	if err != nil {
		h.logger.Error("mapping rebuild failed", zap.Error(err))
		h.InternalError(c, "mapping rebuild failed")
		return
	}
	h.Success(c, result)
}
