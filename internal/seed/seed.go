package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/patient-api/internal/domain"
	"github.com/phrazzld/patient-api/internal/store"
)

// File is the content of a seed file.
type File struct {
	Patients []domain.Patient `yaml:"patients" json:"patients"`
	Books    []domain.Book    `yaml:"books"    json:"books"`
	Items    []domain.Item    `yaml:"items"    json:"items"`
}

// Stores are the targets of Apply. A nil store may only be paired with an
// empty section.
type Stores struct {
	Patients store.PatientStore
	Books    store.BookStore
	Items    store.ItemStore
}

// Result counts the records created by Apply.
type Result struct {
	Patients int
	Books    int
	Items    int
}

// Load reads a seed file.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f File
	if err := decode(data, format, &f); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}
	return &f, nil
}

// Apply creates every record of f through the stores, so seeds get the same
// validation and ID checks as API requests. It stops at the first failure;
// records created before it remain.
func Apply(ctx context.Context, f *File, stores Stores, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var res Result
	var err error

	if res.Patients, err = applyAll(ctx, "patient", f.Patients, stores.Patients); err != nil {
		return res, err
	}
	if res.Books, err = applyAll(ctx, "book", f.Books, stores.Books); err != nil {
		return res, err
	}
	if res.Items, err = applyAll(ctx, "item", f.Items, stores.Items); err != nil {
		return res, err
	}

	logger.Info("seed data loaded",
		slog.Int("patients", res.Patients),
		slog.Int("books", res.Books),
		slog.Int("items", res.Items))
	return res, nil
}

func applyAll[R any](ctx context.Context, entity string, records []R, s store.RecordStore[R]) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if s == nil {
		return 0, fmt.Errorf("seed has %d %s records but no %s store", len(records), entity, entity)
	}
	for i, r := range records {
		if _, err := s.Create(ctx, r); err != nil {
			return i, fmt.Errorf("seed %s #%d: %w", entity, i+1, err)
		}
	}
	return len(records), nil
}
