package normalizer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"copartinv/internal/model"
)

var errEmptySource = errors.New("source file is empty")

// ReadRecords lê o export separado por ponto e vírgula. A primeira linha é
// o cabeçalho e é descartada; as colunas são associadas por posição.
func ReadRecords(r io.Reader) ([]model.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = len(model.RawColumns)
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, errEmptySource
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	records := []model.RawRecord{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		records = append(records, model.NewRawRecord(row))
	}

	return records, nil
}

// Transform lê o export inteiro e devolve os itens já projetados e limpos.
func Transform(r io.Reader) ([]model.InventoryItem, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}

	items := make([]model.InventoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, Project(rec))
	}
	return items, nil
}
