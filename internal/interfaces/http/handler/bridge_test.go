package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	appbridge "github.com/openmarket/econbridge/internal/application/bridge"
	"github.com/openmarket/econbridge/internal/domain/bridge"
	"github.com/openmarket/econbridge/internal/infrastructure/graph"
	"github.com/openmarket/econbridge/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBridgeRouter(t *testing.T) (*gin.Engine, bridge.MappingStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mappings := persistence.NewMemoryMappingStore()
	pending := persistence.NewMemoryPendingSet()
	reconciler := appbridge.NewReconciler(mappings, pending, graph.NewStubGraphClient(), zap.NewNop())

	engine := gin.New()
	NewBridgeHandler(reconciler, mappings, zap.NewNop()).RegisterRoutes(engine.Group("/api/v1"))
	return engine, mappings
}

func getJSON(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestBridgeHandlerListingState(t *testing.T) {
	t.Run("reports unmapped for an unknown listing", func(t *testing.T) {
		engine, _ := newBridgeRouter(t)

		w := getJSON(t, engine, "/api/v1/bridge/listings/request/req-404")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				State string `json:"state"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(appbridge.StateUnmapped), resp.Data.State)
	})

	t.Run("rejects an unknown listing kind", func(t *testing.T) {
		engine, _ := newBridgeRouter(t)

		w := getJSON(t, engine, "/api/v1/bridge/listings/auction/req-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBridgeHandlerMapping(t *testing.T) {
	t.Run("returns the recorded external ID", func(t *testing.T) {
		engine, mappings := newBridgeRouter(t)
		require.NoError(t, mappings.Put(context.Background(), bridge.EntityKindUser, "user-1", "agent-1"))

		w := getJSON(t, engine, "/api/v1/bridge/mappings/user/user-1")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				ExternalID string `json:"external_id"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "agent-1", resp.Data.ExternalID)
	})

	t.Run("returns 404 for an absent mapping", func(t *testing.T) {
		engine, _ := newBridgeRouter(t)

		w := getJSON(t, engine, "/api/v1/bridge/mappings/user/user-404")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects an unknown entity kind", func(t *testing.T) {
		engine, _ := newBridgeRouter(t)

		w := getJSON(t, engine, "/api/v1/bridge/mappings/invoice/inv-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBridgeHandlerRebuild(t *testing.T) {
	engine, _ := newBridgeRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bridge/rebuild", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			ProposalsScanned int `json:"proposals_scanned"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Data.ProposalsScanned)
}
