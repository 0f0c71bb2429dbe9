package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/openmarket/econbridge/internal/domain/catalog"
	"github.com/openmarket/econbridge/internal/domain/directory"
	"github.com/openmarket/econbridge/internal/domain/listing"
	"github.com/openmarket/econbridge/internal/domain/shared"
	"github.com/openmarket/econbridge/internal/infrastructure/cache"
	infraevent "github.com/openmarket/econbridge/internal/infrastructure/event"
	"github.com/openmarket/econbridge/internal/interfaces/http/dto"
	"github.com/openmarket/econbridge/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingEventBus captures published events for assertions
type recordingEventBus struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

func (b *recordingEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.events = append(b.events, events...)
	return nil
}

func (b *recordingEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {}

func (b *recordingEventBus) Unsubscribe(handler shared.EventHandler) {}

func (b *recordingEventBus) Start(ctx context.Context) error { return nil }

func (b *recordingEventBus) Stop(ctx context.Context) error { return nil }

func (b *recordingEventBus) published() []shared.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]shared.DomainEvent(nil), b.events...)
}

var _ shared.EventBus = (*recordingEventBus)(nil)

func newMarketplaceRouter(t *testing.T) (*gin.Engine, *recordingEventBus) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	bus := &recordingEventBus{}
	engine := gin.New()
	NewMarketplaceHandler(bus, zap.NewNop()).RegisterRoutes(engine.Group("/api/v1"))
	return engine, bus
}

func postJSON(t *testing.T, engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestMarketplaceHandlerUserApproved(t *testing.T) {
	t.Run("accepts the notification and publishes an approval event", func(t *testing.T) {
		engine, bus := newMarketplaceRouter(t)

		w := postJSON(t, engine, "/api/v1/events/users/user-1/approved",
			`{"name": "Alice Carpenter", "nickname": "alice"}`)

		assert.Equal(t, http.StatusAccepted, w.Code)

		events := bus.published()
		require.Len(t, events, 1)
		assert.Equal(t, directory.EventTypeUserApproved, events[0].EventType())

		approved, ok := events[0].(*directory.UserApprovedEvent)
		require.True(t, ok)
		assert.Equal(t, "user-1", approved.UserID)
		assert.Equal(t, "alice", approved.Name)
	})

	t.Run("rejects a payload without a name", func(t *testing.T) {
		engine, bus := newMarketplaceRouter(t)

		w := postJSON(t, engine, "/api/v1/events/users/user-1/approved", `{"nickname": "alice"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, bus.published())

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "name", resp.Error.Details[0].Field)
	})
}

func TestMarketplaceHandlerMediumOfExchangeApproved(t *testing.T) {
	engine, bus := newMarketplaceRouter(t)

	w := postJSON(t, engine, "/api/v1/events/mediums-of-exchange/moe-2/approved",
		`{"code": "hours", "name": "Time Bank Hours", "kind": "other"}`)

	assert.Equal(t, http.StatusAccepted, w.Code)

	events := bus.published()
	require.Len(t, events, 1)
	approved, ok := events[0].(*catalog.MediumOfExchangeApprovedEvent)
	require.True(t, ok)
	assert.Equal(t, "moe-2", approved.MediumOfExchangeID)
	assert.Equal(t, "HOURS", approved.Code)
}

func TestMarketplaceHandlerListings(t *testing.T) {
	validListing := `{
		"local_id": "req-1",
		"title": "Fix my roof",
		"description": "Two loose tiles after the storm",
		"service_type_ids": ["st-1"],
		"medium_of_exchange_id": "moe-1",
		"creator_id": "user-1",
		"quantity": "5",
		"unit": "hours"
	}`

	t.Run("accepts a request listing", func(t *testing.T) {
		engine, bus := newMarketplaceRouter(t)

		w := postJSON(t, engine, "/api/v1/events/requests", validListing)

		assert.Equal(t, http.StatusAccepted, w.Code)

		events := bus.published()
		require.Len(t, events, 1)
		created, ok := events[0].(*listing.RequestCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, listing.KindRequest, created.Listing.Kind)
		assert.Equal(t, "req-1", created.Listing.LocalID)
		require.NotNil(t, created.Listing.Quantity)
		assert.Equal(t, "hours", created.Listing.Unit)
	})

	t.Run("accepts an offer listing", func(t *testing.T) {
		engine, bus := newMarketplaceRouter(t)

		w := postJSON(t, engine, "/api/v1/events/offers", strings.Replace(validListing, "req-1", "off-1", 1))

		assert.Equal(t, http.StatusAccepted, w.Code)

		events := bus.published()
		require.Len(t, events, 1)
		created, ok := events[0].(*listing.OfferCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, listing.KindOffer, created.Listing.Kind)
	})

	t.Run("rejects a non-decimal quantity", func(t *testing.T) {
		engine, bus := newMarketplaceRouter(t)

		w := postJSON(t, engine, "/api/v1/events/requests",
			strings.Replace(validListing, `"5"`, `"five"`, 1))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, bus.published())
	})

	t.Run("rejects a listing without service types", func(t *testing.T) {
		engine, bus := newMarketplaceRouter(t)

		w := postJSON(t, engine, "/api/v1/events/requests",
			strings.Replace(validListing, `["st-1"]`, `[]`, 1))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, bus.published())
	})

	t.Run("returns 500 when event processing fails", func(t *testing.T) {
		engine, bus := newMarketplaceRouter(t)
		bus.err = assert.AnError

		w := postJSON(t, engine, "/api/v1/events/requests", validListing)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestMarketplaceHandlerDeliveryID(t *testing.T) {
	engine, bus := newMarketplaceRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/users/user-1/approved",
		strings.NewReader(`{"name": "Alice Carpenter"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-ID", "dlv-42")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	events := bus.published()
	require.Len(t, events, 1)
	assert.Equal(t, "dlv-42", events[0].DeliveryID())
}

// countingHandler counts deliveries that reach the subscriber behind the
// idempotency wrapper
type countingHandler struct {
	eventTypes []string
	count      atomic.Int64
}

func (h *countingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.count.Add(1)
	return nil
}

func (h *countingHandler) EventTypes() []string { return h.eventTypes }

func TestMarketplaceHandlerWebhookRedelivery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	inner := &countingHandler{eventTypes: []string{directory.EventTypeUserApproved}}
	bus := infraevent.NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(infraevent.NewIdempotentHandler(inner, store, zap.NewNop()))
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() { _ = bus.Stop(context.Background()) })

	engine := gin.New()
	NewMarketplaceHandler(bus, zap.NewNop()).RegisterRoutes(engine.Group("/api/v1"))

	// The marketplace retries the same webhook; each attempt constructs a
	// fresh event with a fresh event ID.
	body := `{"name": "Alice Carpenter"}`
	first := postJSON(t, engine, "/api/v1/events/users/user-1/approved", body)
	second := postJSON(t, engine, "/api/v1/events/users/user-1/approved", body)

	assert.Equal(t, http.StatusAccepted, first.Code)
	assert.Equal(t, http.StatusAccepted, second.Code)
	assert.Equal(t, int64(1), inner.count.Load())
}
