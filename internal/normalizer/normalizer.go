package normalizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/google/uuid"

	"copartinv/internal/model"
)

// ErrSourceNotFound indica que o export da Copart não existe no caminho informado.
var ErrSourceNotFound = errors.New("source file not found")

// TransformError envolve qualquer falha de leitura, parsing ou gravação
// durante a normalização.
type TransformError struct {
	Op  string
	Err error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// Sink recebe o inventário depois que o arquivo JSON foi gravado.
type Sink interface {
	Replace(ctx context.Context, runID uuid.UUID, items []model.InventoryItem) error
}

type Normalizer struct {
	Source string
	Output string
	// Out recebe o resumo e os diagnósticos. Nil usa os.Stdout.
	Out  io.Writer
	Sink Sink
}

// Process executa a normalização completa. Nada é gravado se a leitura ou a
// transformação falharem.
func (n *Normalizer) Process() ([]model.InventoryItem, error) {
	if _, err := os.Stat(n.Source); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, n.Source)
	}

	f, err := os.Open(n.Source)
	if err != nil {
		return nil, &TransformError{Op: "open", Err: err}
	}
	defer f.Close()

	items, err := Transform(f)
	if err != nil {
		return nil, &TransformError{Op: "parse", Err: err}
	}

	if err := WriteArtifact(n.Output, items); err != nil {
		return nil, &TransformError{Op: "write", Err: err}
	}
	return items, nil
}

// Run é o ponto de entrada do lote: nunca propaga erro, apenas imprime o
// diagnóstico e devolve false.
func (n *Normalizer) Run(ctx context.Context) bool {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}

	runID := uuid.New()

	items, err := n.Process()
	if err != nil {
		if errors.Is(err, ErrSourceNotFound) {
			fmt.Fprintf(out, "Erro: Arquivo CSV não encontrado em %s\n", n.Source)
		} else {
			fmt.Fprintf(out, "Erro durante o processamento do CSV: %v\n", err)
		}
		return false
	}

	if bad := countMalformedMoney(items); bad > 0 {
		log.Printf("[%s] %d valores de lance/FIPE não são decimais", runID, bad)
	}

	fmt.Fprintf(out, "Inventário processado e salvo em %s. Total de veículos: %d\n", n.Output, len(items))

	if n.Sink != nil {
		if err := n.Sink.Replace(ctx, runID, items); err != nil {
			fmt.Fprintf(out, "Erro ao espelhar o inventário no banco: %v\n", err)
			return false
		}
		log.Printf("[%s] inventário espelhado no banco (%d veículos)", runID, len(items))
	}

	return true
}
