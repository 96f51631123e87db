package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aditi/profilecore/internal/domain"
)

// TaskError accumulates multiple errors produced during batch builds.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// BulkBuilder constructs profiles for many partner identifiers using a
// worker pool. Builds share only the read-only tables, so workers need no
// coordination beyond the wait group.
type BulkBuilder struct {
	assembler *Assembler
	workers   int
}

// NewBulkBuilder creates a BulkBuilder with the provided concurrency.
func NewBulkBuilder(assembler *Assembler, workers int) *BulkBuilder {
	if workers <= 0 {
		workers = 4
	}
	return &BulkBuilder{
		assembler: assembler,
		workers:   workers,
	}
}

// BuildAll builds one profile per identifier, preserving input order. Blank
// identifiers are recorded as errors without failing the remaining builds;
// the aggregated TaskError reports them all. Context cancellation aborts the
// batch with the context error.
func (b *BulkBuilder) BuildAll(ctx context.Context, partnerIDs []string) ([]*domain.UnifiedProfile, error) {
	if len(partnerIDs) == 0 {
		return nil, nil
	}

	profiles := make([]*domain.UnifiedProfile, len(partnerIDs))
	indexCh := make(chan int)
	errCh := make(chan error, len(partnerIDs))
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			id := strings.TrimSpace(partnerIDs[idx])
			if id == "" {
				select {
				case errCh <- fmt.Errorf("partner id at position %d is blank", idx):
				case <-ctx.Done():
					return
				}
				continue
			}
			profiles[idx] = b.assembler.Build(id)
		}
	}

	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < len(partnerIDs); i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var taskErr TaskError
	for err := range errCh {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		taskErr.append(err)
	}
	return profiles, taskErr.asError()
}
