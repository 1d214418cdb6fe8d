package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copartinv/internal/model"
	"copartinv/internal/normalizer"
)

type inventoryBody struct {
	Metadata  model.ServingMetadata `json:"metadata"`
	Inventory []model.InventoryItem `json:"inventory"`
	Error     string                `json:"error"`
}

func sampleItems() []model.InventoryItem {
	return []model.InventoryItem{
		{
			LotNumber: "LOT123", Year: "2020", Make: "Toyota", Model: "Corolla",
			Category: "Automóvel", DamageType: "Colisão", VehicleYard: "Pátio SP",
			AuctionDate: "2025-01-01", CurrentBid: "1500.00", FipeValue: "45000.00",
			URLDetalhe: "http://example/lot123",
		},
		{LotNumber: "LOT124", Year: "2018", Make: "Fiat", Model: "Uno", CurrentBid: "800.00", FipeValue: "20000.00"},
	}
}

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "copart_inventory.json")
	return NewRouter(&Store{Path: path}), path
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandler_Inventory(t *testing.T) {
	t.Run("Should echo the artifact with metadata", func(t *testing.T) {
		h, path := newTestRouter(t)
		items := sampleItems()
		require.NoError(t, normalizer.WriteArtifact(path, items))

		rec := do(t, h, http.MethodGet, "/inventory")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		body := decode[inventoryBody](t, rec)
		assert.Equal(t, items, body.Inventory)
		assert.Equal(t, len(body.Inventory), body.Metadata.TotalVehicles)
		assert.Equal(t, Source, body.Metadata.Source)
		assert.NotEmpty(t, body.Metadata.LastUpdated)
		assert.Contains(t, rec.Body.String(), "Pátio SP")
	})

	t.Run("Should return 404 when the artifact is missing", func(t *testing.T) {
		h, _ := newTestRouter(t)

		rec := do(t, h, http.MethodGet, "/inventory")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decode[map[string]string](t, rec)
		assert.Contains(t, body["error"], "copart_inventory.json")
	})

	t.Run("Should return 500 when the artifact is corrupt", func(t *testing.T) {
		h, path := newTestRouter(t)
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		rec := do(t, h, http.MethodGet, "/inventory")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode[map[string]string](t, rec)
		assert.Contains(t, body["error"], "Erro ao carregar o inventário: ")
		assert.Greater(t, len(body["error"]), len("Erro ao carregar o inventário: "))
	})

	t.Run("Should reflect a new modification time without restart", func(t *testing.T) {
		h, path := newTestRouter(t)
		require.NoError(t, normalizer.WriteArtifact(path, sampleItems()))
		routes := h

		old := time.Date(2024, 6, 10, 8, 30, 0, 0, time.Local)
		require.NoError(t, os.Chtimes(path, old, old))
		first := decode[inventoryBody](t, do(t, routes, http.MethodGet, "/inventory"))
		assert.Equal(t, "2024-06-10 08:30:00", first.Metadata.LastUpdated)

		newer := old.Add(26 * time.Hour)
		require.NoError(t, os.Chtimes(path, newer, newer))
		second := decode[inventoryBody](t, do(t, routes, http.MethodGet, "/inventory"))
		assert.Equal(t, "2024-06-11 10:30:00", second.Metadata.LastUpdated)
	})

	t.Run("Should return 404 when a parent of the path is a regular file", func(t *testing.T) {
		parent := filepath.Join(t.TempDir(), "afile")
		require.NoError(t, os.WriteFile(parent, []byte("x"), 0o644))
		h := NewRouter(&Store{Path: filepath.Join(parent, "copart_inventory.json")})

		rec := do(t, h, http.MethodGet, "/inventory")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, decode[map[string]string](t, rec)["error"], "copart_inventory.json")
	})

	t.Run("Should reject non-GET methods", func(t *testing.T) {
		h, _ := newTestRouter(t)
		rec := do(t, h, http.MethodPost, "/inventory")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandler_Home(t *testing.T) {
	t.Run("Should summarize the inventory", func(t *testing.T) {
		h, path := newTestRouter(t)
		require.NoError(t, normalizer.WriteArtifact(path, sampleItems()))

		rec := do(t, h, http.MethodGet, "/")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode[HomeResponse](t, rec)
		assert.Equal(t, "API de Inventário Copart Brasil", body.Message)
		assert.Equal(t, "Rodando", body.Status)
		assert.Equal(t, "Total de veículos: 2", body.InventoryStatus)
		assert.NotEqual(t, "N/A", body.LastUpdated)
		assert.Equal(t, "/inventory", body.Endpoint)
	})

	t.Run("Should mask a missing artifact behind a 200", func(t *testing.T) {
		h, _ := newTestRouter(t)

		rec := do(t, h, http.MethodGet, "/")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode[HomeResponse](t, rec)
		assert.Contains(t, body.InventoryStatus, "Erro")
		assert.Equal(t, "N/A", body.LastUpdated)
	})

	t.Run("Should mask a corrupt artifact behind a 200", func(t *testing.T) {
		h, path := newTestRouter(t)
		require.NoError(t, os.WriteFile(path, []byte("[{"), 0o644))

		rec := do(t, h, http.MethodGet, "/")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "N/A", decode[HomeResponse](t, rec).LastUpdated)
	})

	t.Run("Should not serve unknown paths", func(t *testing.T) {
		h, _ := newTestRouter(t)
		rec := do(t, h, http.MethodGet, "/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

type failingLoader struct{ err error }

func (f failingLoader) Load() (*Snapshot, error) { return nil, f.err }

func TestHandler_UnexpectedLoaderError(t *testing.T) {
	h := InventoryHandler(failingLoader{err: errors.New("disk on fire")}, "x.json")

	rec := do(t, h, http.MethodGet, "/inventory")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "disk on fire")
}
