package config

import (
	"net"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Host          string
	Port          string
	CSVFile       string
	InventoryFile string
	MetricsPort   string
	DatabaseURL   string
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()
	return &Config{
		Host:          getEnv("HOST", "0.0.0.0"),
		Port:          getEnv("PORT", "5000"),
		CSVFile:       getEnv("CSV_FILE", "LotSearchresults.csv"),
		InventoryFile: getEnv("INVENTORY_FILE", "copart_inventory.json"),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
		DatabaseURL:   os.Getenv("DATABASE_URL"), // vazio desativa o espelho no Postgres
	}
}

// Addr é o endereço de escuta da API.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
