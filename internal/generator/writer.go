package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteDataset serializes the seven tables as CSV files under the provided
// directory.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tables := []Table{
		dataset.Partners,
		dataset.OnboardingNotes,
		dataset.Roles,
		dataset.BusinessRels,
		dataset.AccountLinks,
		dataset.Accounts,
		dataset.Transactions,
	}
	for _, table := range tables {
		if err := writeCSV(filepath.Join(dir, table.File), table); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, table Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("write header for %s: %w", path, err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
