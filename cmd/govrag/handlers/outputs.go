package handlers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

// readFile reads a file (for testing injection).
var readFile = os.ReadFile

// Outputs reads the outputs file written by apply and renders it.
func Outputs(path string) error {
	data, err := readFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w\nRun 'govrag apply' first", path, err)
	}

	var outputs provisioning.Outputs
	if err := yaml.Unmarshal(data, &outputs); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	fmt.Print(renderOutputs(&outputs))
	return nil
}
