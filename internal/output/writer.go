// Package output serializes assembled flow graphs for the rendering
// collaborator.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/geldfluss/sankey/internal/domain"
)

// WriteGraph serializes a flow graph to JSON with 2-space indentation.
func WriteGraph(g *domain.Graph, w io.Writer) error {
	if g == nil {
		return fmt.Errorf("graph cannot be nil")
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(g); err != nil {
		return fmt.Errorf("failed to encode graph as JSON: %w", err)
	}
	return nil
}

// WriteGraphToFile writes a flow graph to the given path, or to stdout when
// the path is empty.
func WriteGraphToFile(g *domain.Graph, path string) (err error) {
	if g == nil {
		return fmt.Errorf("graph cannot be nil")
	}
	if path == "" {
		return WriteGraph(g, os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file %s: %w", path, closeErr)
		}
	}()

	if err = WriteGraph(g, f); err != nil {
		return fmt.Errorf("failed to write graph to %s: %w", path, err)
	}
	return nil
}
