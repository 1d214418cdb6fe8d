package normalizer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"copartinv/internal/model"
)

// EncodeArtifact serializa o inventário com indentação de 4 espaços e sem
// escapar caracteres não ASCII.
func EncodeArtifact(items []model.InventoryItem) ([]byte, error) {
	if items == nil {
		items = []model.InventoryItem{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteArtifact grava o inventário em um arquivo temporário no mesmo
// diretório e depois renomeia sobre o destino, para que leitores nunca vejam
// um arquivo pela metade.
func WriteArtifact(path string, items []model.InventoryItem) (err error) {
	data, err := EncodeArtifact(items)
	if err != nil {
		return fmt.Errorf("failed to encode inventory: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync inventory: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to chmod inventory: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close inventory: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
