package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"copartinv/internal/observability"
)

type Loader interface {
	Load() (*Snapshot, error)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HomeResponse struct {
	Message         string `json:"message"`
	Status          string `json:"status"`
	InventoryStatus string `json:"inventory_status"`
	LastUpdated     string `json:"last_updated"`
	Endpoint        string `json:"endpoint"`
}

// NewRouter monta as duas rotas somente leitura da API.
func NewRouter(store *Store) http.Handler {
	name := filepath.Base(store.Path)

	mux := http.NewServeMux()
	mux.Handle("GET /inventory", InventoryHandler(store, name))
	mux.Handle("GET /{$}", HomeHandler(store, name))
	return mux
}

// InventoryHandler devolve o inventário com o status HTTP correspondente ao
// resultado da leitura (200, 404 ou 500).
func InventoryHandler(store Loader, artifactName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, body, status := load(store, artifactName)
		writeJSON(w, "/inventory", status, body)
	}
}

// HomeHandler sempre responde 200; falhas de leitura viram marcadores no corpo.
func HomeHandler(store Loader, artifactName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, _, status := load(store, artifactName)

		resp := HomeResponse{
			Message:         "API de Inventário Copart Brasil",
			Status:          "Rodando",
			InventoryStatus: "Total de veículos: Erro",
			LastUpdated:     "N/A",
			Endpoint:        "/inventory",
		}
		if status == http.StatusOK {
			resp.InventoryStatus = "Total de veículos: " + strconv.Itoa(snap.Metadata.TotalVehicles)
			resp.LastUpdated = snap.Metadata.LastUpdated
		}

		writeJSON(w, "/", http.StatusOK, resp)
	}
}

func load(store Loader, artifactName string) (*Snapshot, any, int) {
	start := time.Now()
	snap, err := store.Load()

	var loadErr *LoadError
	switch {
	case err == nil:
		observability.LoadDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
		observability.InventoryItems.Set(float64(snap.Metadata.TotalVehicles))
		return snap, snap, http.StatusOK
	case errors.Is(err, ErrArtifactNotFound):
		observability.LoadDuration.WithLabelValues("not_found").Observe(time.Since(start).Seconds())
		return nil, ErrorResponse{
			Error: fmt.Sprintf("Inventário não encontrado. O arquivo %s deve ser gerado antes de iniciar a API.", artifactName),
		}, http.StatusNotFound
	default:
		observability.LoadDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		if !errors.As(err, &loadErr) {
			loadErr = &LoadError{Err: err}
		}
		log.Printf("Erro ao carregar o inventário: %v", loadErr)
		return nil, ErrorResponse{
			Error: fmt.Sprintf("Erro ao carregar o inventário: %v", loadErr),
		}, http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, route string, status int, body any) {
	observability.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		log.Printf("Erro ao escrever resposta de %s: %v", route, err)
	}
}
