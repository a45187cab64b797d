package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// Write serializes the report as indented JSON to path.
func Write(rep *Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
