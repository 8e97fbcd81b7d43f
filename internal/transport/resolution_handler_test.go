package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shelfmatch/internal/domain"
	"shelfmatch/internal/engine"
	"shelfmatch/internal/repository"
	"shelfmatch/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockResolutionService struct {
	resolved   *service.ResolvedListing
	entry      *domain.CatalogEntry
	resolveErr error
}

func (m *mockResolutionService) ResolveListing(ctx context.Context, in service.ListingInput) (*service.ResolvedListing, error) {
	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	return m.resolved, nil
}

func (m *mockResolutionService) ResolveBatch(ctx context.Context, inputs []service.ListingInput) ([]*service.ResolvedListing, error) {
	results := make([]*service.ResolvedListing, 0, len(inputs))
	for range inputs {
		if m.resolveErr != nil {
			return results, m.resolveErr
		}
		results = append(results, m.resolved)
	}
	return results, nil
}

func (m *mockResolutionService) GetEntry(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error) {
	if m.entry != nil && m.entry.ID == id {
		return m.entry, nil
	}
	return nil, repository.ErrEntryNotFound
}

func (m *mockResolutionService) ListEntries(ctx context.Context, brand string, page, pageSize int) ([]*domain.CatalogEntry, int, error) {
	if m.entry == nil {
		return []*domain.CatalogEntry{}, 0, nil
	}
	return []*domain.CatalogEntry{m.entry}, 1, nil
}

func (m *mockResolutionService) ListingsForEntry(ctx context.Context, catalogEntryID uuid.UUID) ([]*domain.ListingRecord, error) {
	return []*domain.ListingRecord{}, nil
}

func (m *mockResolutionService) Stats() service.ResolutionStats {
	return service.ResolutionStats{
		Stats:            engine.Stats{Processed: 3, FingerprintHits: 1, Created: 2},
		MatchRatePercent: 33.3,
		Fingerprints:     2,
		Brands:           1,
	}
}

func newTestRouter(svc service.ResolutionService) chi.Router {
	router := chi.NewRouter()
	NewResolutionHandler(svc, zap.NewNop()).RegisterRoutes(router)
	return router
}

func TestResolveEndpoint(t *testing.T) {
	catalogID := uuid.New()
	svc := &mockResolutionService{
		resolved: &service.ResolvedListing{
			ListingID: uuid.New(),
			CatalogID: catalogID,
			Stage:     engine.StageFingerprint,
			Score:     100,
		},
	}
	router := newTestRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{
		"platform": "amazon",
		"name":     "Tata Tea Gold 500g",
		"brand":    "Tata Tea",
		"quantity": "500g",
		"price":    495.0,
	})
	req := httptest.NewRequest("POST", "/api/listings/resolve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resolved service.ResolvedListing
	if err := json.Unmarshal(w.Body.Bytes(), &resolved); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resolved.CatalogID != catalogID {
		t.Errorf("catalog id = %s, want %s", resolved.CatalogID, catalogID)
	}
	if resolved.Stage != engine.StageFingerprint {
		t.Errorf("stage = %s, want fingerprint", resolved.Stage)
	}
}

func TestResolveEndpointValidation(t *testing.T) {
	router := newTestRouter(&mockResolutionService{})

	// missing required platform and name
	body, _ := json.Marshal(map[string]interface{}{"price": 10.0})
	req := httptest.NewRequest("POST", "/api/listings/resolve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var response struct {
		Error struct {
			Details map[string]interface{} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	if _, ok := response.Error.Details["validation_errors"]; !ok {
		t.Error("expected validation_errors in response details")
	}
}

func TestBatchResolveEndpoint(t *testing.T) {
	svc := &mockResolutionService{
		resolved: &service.ResolvedListing{
			ListingID: uuid.New(),
			CatalogID: uuid.New(),
			Stage:     engine.StageCreated,
		},
	}
	router := newTestRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{
		"listings": []map[string]interface{}{
			{"platform": "amazon", "name": "Tata Tea Gold", "price": 495.0},
			{"platform": "flipkart", "name": "Tata Tea Gold 500g", "price": 480.0},
		},
	})
	req := httptest.NewRequest("POST", "/api/listings/resolve/batch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var response BatchResolveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(response.Results) != 2 {
		t.Errorf("expected 2 results, got %d", len(response.Results))
	}
}

func TestBatchResolveRejectsEmptyBatch(t *testing.T) {
	router := newTestRouter(&mockResolutionService{})

	body, _ := json.Marshal(map[string]interface{}{"listings": []map[string]interface{}{}})
	req := httptest.NewRequest("POST", "/api/listings/resolve/batch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetEntryEndpoint(t *testing.T) {
	entry := &domain.CatalogEntry{
		ID:          uuid.New(),
		Fingerprint: "500_gram_gold_tata_tea",
		Brand:       "tata tea",
		Name:        "tata tea gold",
		Quantity:    "500_gram",
	}
	router := newTestRouter(&mockResolutionService{entry: entry})

	req := httptest.NewRequest("GET", "/api/catalog/"+entry.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got domain.CatalogEntry
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if got.Fingerprint != entry.Fingerprint {
		t.Errorf("fingerprint = %q, want %q", got.Fingerprint, entry.Fingerprint)
	}
}

func TestGetEntryNotFound(t *testing.T) {
	router := newTestRouter(&mockResolutionService{})

	req := httptest.NewRequest("GET", "/api/catalog/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetEntryInvalidID(t *testing.T) {
	router := newTestRouter(&mockResolutionService{})

	req := httptest.NewRequest("GET", "/api/catalog/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestListCatalogEndpoint(t *testing.T) {
	entry := &domain.CatalogEntry{ID: uuid.New(), Brand: "amul", Name: "amul butter", Quantity: "500_gram"}
	router := newTestRouter(&mockResolutionService{entry: entry})

	req := httptest.NewRequest("GET", "/api/catalog?brand=amul&page=1&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var response CatalogListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.Total != 1 {
		t.Errorf("total = %d, want 1", response.Total)
	}
	if response.Page != 1 || response.PageSize != 10 {
		t.Errorf("pagination echo wrong: page=%d size=%d", response.Page, response.PageSize)
	}
}

func TestStatsEndpoint(t *testing.T) {
	router := newTestRouter(&mockResolutionService{})

	req := httptest.NewRequest("GET", "/api/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var stats service.ResolutionStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if stats.Processed != 3 {
		t.Errorf("processed = %d, want 3", stats.Processed)
	}
	if stats.Fingerprints != 2 {
		t.Errorf("fingerprints = %d, want 2", stats.Fingerprints)
	}
}
