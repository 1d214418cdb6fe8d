package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"copartinv/internal/model"
)

const (
	TimeLayout = "2006-01-02 15:04:05"
	Source     = "CSV fornecido pelo usuário"
)

// ErrArtifactNotFound indica que o normalizador ainda não gerou o inventário.
var ErrArtifactNotFound = errors.New("inventory artifact not found")

// LoadError indica que o arquivo existe mas não pôde ser lido ou decodificado.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type Snapshot struct {
	Metadata  model.ServingMetadata `json:"metadata"`
	Inventory []model.InventoryItem `json:"inventory"`
}

// Store lê o inventário do disco a cada chamada; não há cache entre requisições.
type Store struct {
	Path string
}

func (s *Store) Load() (*Snapshot, error) {
	info, err := os.Stat(s.Path)
	if isNotExist(err) {
		return nil, ErrArtifactNotFound
	}
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	// o arquivo pode ter sumido entre o stat e a leitura
	data, err := os.ReadFile(s.Path)
	if isNotExist(err) {
		return nil, ErrArtifactNotFound
	}
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	var items []model.InventoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("invalid inventory JSON: %w", err)}
	}
	if items == nil {
		items = []model.InventoryItem{}
	}

	return &Snapshot{
		Metadata: model.ServingMetadata{
			LastUpdated:   info.ModTime().Local().Format(TimeLayout),
			TotalVehicles: len(items),
			Source:        Source,
		},
		Inventory: items,
	}, nil
}

// isNotExist também trata como ausente um caminho cujo diretório pai é um
// arquivo comum (ENOTDIR).
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
