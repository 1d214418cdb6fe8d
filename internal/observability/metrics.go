package observability

import (
	"log"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_requests_total",
			Help: "Total de requisições atendidas pela API de inventário",
		},
		[]string{"route", "status"},
	)

	LoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_load_duration_seconds",
			Help:    "Tempo de leitura e decodificação do arquivo de inventário",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	InventoryItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_items",
			Help: "Quantidade de veículos na última leitura bem sucedida",
		},
	)

	registerOnce sync.Once
)

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal, LoadDuration, InventoryItems)
	})
}

// Start expõe /metrics em uma porta separada da API.
func Start(port string) {
	Register()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			log.Printf("Servidor de métricas encerrado: %v", err)
		}
	}()
}
