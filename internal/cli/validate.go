package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phrazzld/patient-api/internal/domain"
	"github.com/phrazzld/patient-api/internal/seed"
	"github.com/phrazzld/patient-api/internal/store"
	"github.com/spf13/cobra"
)

// RecordResult is the outcome for one record of a file.
type RecordResult struct {
	File   string              `json:"file"`
	Index  int                 `json:"index"` // 1-based position in the file
	ID     int                 `json:"id,omitempty"`
	Valid  bool                `json:"valid"`
	Errors []domain.FieldError `json:"errors,omitempty"`
}

// ValidationReport holds validation results for all files.
type ValidationReport struct {
	Kind    string         `json:"kind"`
	Valid   bool           `json:"valid"`
	Total   int            `json:"total"`
	Invalid int            `json:"invalid"`
	Records []RecordResult `json:"records"`
}

// kindValidators maps a --kind value to its file validator.
var kindValidators = map[string]func(files []string, f *OutputFormatter) ([]RecordResult, error){
	"patient": func(files []string, f *OutputFormatter) ([]RecordResult, error) {
		return validateFiles(files, store.PatientSchema, f)
	},
	"book": func(files []string, f *OutputFormatter) ([]RecordResult, error) {
		return validateFiles(files, store.BookSchema, f)
	},
	"item": func(files []string, f *OutputFormatter) ([]RecordResult, error) {
		return validateFiles(files, store.ItemSchema, f)
	},
}

// Kinds returns the supported record kinds in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(kindValidators))
	for k := range kindValidators {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "validate [--kind patient|book|item] <file>...",
		Short: "Validate record files against a record schema",
		Long: `Validate YAML or JSON record files without starting the server.

Each file holds one record or a list of records. Every record is checked
against the schema of the chosen kind, and IDs must be unique across all
files. The exit code is 1 when any record is invalid.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return NewExitError(ExitCommandError, "at least one file is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, kind, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "patient", "record kind ("+strings.Join(Kinds(), "|")+")")

	return cmd
}

func runValidate(opts *RootOptions, kind string, files []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	validateKind, ok := kindValidators[kind]
	if !ok {
		msg := fmt.Sprintf("unknown kind %q: must be one of %v", kind, Kinds())
		_ = formatter.Error(ErrCodeUsage, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	results, err := validateKind(files, formatter)
	if err != nil {
		_ = formatter.Error(ErrCodeRead, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot read records", err)
	}

	report := ValidationReport{Kind: kind, Total: len(results), Records: results}
	for _, r := range results {
		if !r.Valid {
			report.Invalid++
		}
	}
	report.Valid = report.Invalid == 0

	return outputReport(formatter, report)
}

// validateFiles decodes every file and checks each record against schema.
func validateFiles[R any](files []string, schema store.Schema[R], f *OutputFormatter) ([]RecordResult, error) {
	var results []RecordResult
	seen := make(map[int]string) // id -> first location

	for _, path := range files {
		records, err := seed.ReadRecords[R](path)
		if err != nil {
			return nil, err
		}
		name := filepath.ToSlash(path)
		f.VerboseLog("Found %d %s record(s) in %s", len(records), schema.Entity, name)

		for i, record := range records {
			res := RecordResult{File: name, Index: i + 1, ID: schema.ID(record)}
			loc := fmt.Sprintf("%s#%d", name, i+1)

			if err := schema.Validate(record); err != nil {
				var verr *domain.ValidationError
				if !errors.As(err, &verr) {
					return nil, fmt.Errorf("%s: %w", loc, err)
				}
				res.Errors = append(res.Errors, verr.Errors...)
			}
			if res.ID != 0 {
				if first, dup := seen[res.ID]; dup {
					res.Errors = append(res.Errors, domain.FieldError{Field: "id", Message: "duplicates " + first})
				} else {
					seen[res.ID] = loc
				}
			}

			res.Valid = len(res.Errors) == 0
			results = append(results, res)
		}
	}
	return results, nil
}

func outputReport(formatter *OutputFormatter, report ValidationReport) error {
	if formatter.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: report}
		if !report.Valid {
			resp.Status = "error"
			resp.Error = &CLIError{Code: ErrCodeValidation, Message: summary(report)}
		}
		if err := formatter.JSON(resp); err != nil {
			return err
		}
	} else {
		for _, r := range report.Records {
			mark := "✓"
			if !r.Valid {
				mark = "✗"
			}
			fmt.Fprintf(formatter.Writer, "%s %s#%d\n", mark, r.File, r.Index)
			for _, fe := range r.Errors {
				fmt.Fprintf(formatter.Writer, "    %s\n", fe)
			}
		}
		if report.Valid {
			fmt.Fprintf(formatter.Writer, "✓ All %d record(s) valid\n", report.Total)
		} else {
			fmt.Fprintf(formatter.Writer, "✗ Validation failed: %s\n", summary(report))
		}
	}

	if !report.Valid {
		return NewExitError(ExitFailure, "validation failed: "+summary(report))
	}
	return nil
}

func summary(report ValidationReport) string {
	return fmt.Sprintf("%d of %d record(s) invalid", report.Invalid, report.Total)
}
