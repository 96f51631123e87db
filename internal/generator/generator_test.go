package generator

import (
	"context"
	"testing"

	"github.com/aditi/profilecore/internal/store"
)

func TestGenerate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumPartners = 40
	cfg.NumTransactions = 300

	gen := New(cfg)
	dataset, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(dataset.Partners.Rows) != cfg.NumPartners {
		t.Fatalf("expected %d partner rows, got %d", cfg.NumPartners, len(dataset.Partners.Rows))
	}
	if len(dataset.Transactions.Rows) != cfg.NumTransactions {
		t.Fatalf("expected %d transaction rows, got %d", cfg.NumTransactions, len(dataset.Transactions.Rows))
	}
	for _, row := range dataset.Partners.Rows {
		if len(row) != len(dataset.Partners.Header) {
			t.Fatalf("partner row width %d does not match header width %d", len(row), len(dataset.Partners.Header))
		}
	}
	for _, row := range dataset.Transactions.Rows {
		if len(row) != len(dataset.Transactions.Header) {
			t.Fatalf("transaction row width %d does not match header width %d", len(row), len(dataset.Transactions.Header))
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumPartners = 10
	cfg.NumTransactions = 50

	first, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	second, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(first.Transactions.Rows) != len(second.Transactions.Rows) {
		t.Fatal("same seed must produce identical datasets")
	}
	for i := range first.Transactions.Rows {
		for j := range first.Transactions.Rows[i] {
			if first.Transactions.Rows[i][j] != second.Transactions.Rows[i][j] {
				t.Fatalf("same seed must produce identical datasets, row %d differs", i)
			}
		}
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(DefaultConfig()).Generate(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestWriteDatasetLoadsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumPartners = 25
	cfg.NumTransactions = 200

	dataset, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	dir := t.TempDir()
	if err := WriteDataset(dataset, dir); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	s, err := store.Load(dir)
	if err != nil {
		t.Fatalf("generated tables must load cleanly: %v", err)
	}
	counts := s.Counts()
	if counts.Partners != cfg.NumPartners {
		t.Fatalf("expected %d loaded partners, got %d", cfg.NumPartners, counts.Partners)
	}
	if counts.Transactions != cfg.NumTransactions {
		t.Fatalf("expected %d loaded transactions, got %d", cfg.NumTransactions, counts.Transactions)
	}
}
