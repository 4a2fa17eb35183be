// Package pipeline localizes resource documents and files.
//
// This package ties the transform engine to resource documents, file naming
// and caching so the CLI and the HTTP service behave identically.
//
// # Architecture
//
// Localizing a file runs three steps:
//
//  1. Read: load the source document and detect its format
//  2. Localize: walk the document, applying the transform pipeline to every
//     localizable value (cached by content hash and options)
//  3. Write: store the result next to the input (or in OutputDir) under the
//     culture-specific file name
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	results, err := runner.LocalizeFiles(ctx, []string{"Strings.resx"}, pipeline.Options{
//	    Transforms: []transform.ID{transform.AccentsID, transform.BracketsID},
//	})
//	for _, res := range results {
//	    if res.Err != nil {
//	        // report and continue
//	    }
//	}
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pseudoloc/pkg/culture"
	perrors "github.com/matzehuels/pseudoloc/pkg/errors"
	"github.com/matzehuels/pseudoloc/pkg/resource"
	"github.com/matzehuels/pseudoloc/pkg/transform"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a localization run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Transforms run in the given order. Nil selects transform.Defaults; a
	// non-nil empty slice runs none.
	Transforms []transform.ID `json:"transforms,omitempty"`

	// Culture names output files. Empty selects culture.Default.
	Culture string `json:"culture,omitempty"`

	// Format overrides extension-based detection for files.
	Format resource.Format `json:"format,omitempty"`

	// OutputDir places output files in another directory.
	OutputDir string `json:"output_dir,omitempty"`

	// Refresh skips cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Concurrency bounds how many files are processed at once.
	Concurrency int `json:"concurrency,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	pipeline  transform.Pipeline
	validated bool
}

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Transforms == nil {
		o.Transforms = transform.Defaults()
	}
	ids := make([]transform.ID, len(o.Transforms))
	for i, id := range o.Transforms {
		parsed, err := transform.ParseID(string(id))
		if err != nil {
			return err
		}
		ids[i] = parsed
	}
	o.Transforms = ids
	p, err := transform.New(ids...)
	if err != nil {
		return err
	}
	o.pipeline = p

	if o.Culture == "" {
		o.Culture = culture.Default
	}
	if err := culture.Validate(o.Culture); err != nil {
		return err
	}

	if o.Format != "" {
		f, err := resource.ParseFormat(string(o.Format))
		if err != nil {
			return err
		}
		o.Format = f
	}

	if o.OutputDir != "" {
		if err := perrors.ValidatePath(o.OutputDir); err != nil {
			return err
		}
	}

	if o.Concurrency < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "concurrency must not be negative, got %d", o.Concurrency)
	}
	if o.Concurrency == 0 {
		o.Concurrency = runtime.NumCPU()
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Apply runs a single value through the configured transforms.
// ValidateAndSetDefaults must have succeeded first.
func (o *Options) Apply(value string) string {
	return o.pipeline.Apply(value)
}

// =============================================================================
// Results
// =============================================================================

// DocumentResult is a localized in-memory document.
type DocumentResult struct {
	Data     []byte
	Entries  int // localizable values rewritten
	CacheHit bool
	Duration time.Duration
}

// Result describes one localized file.
type Result struct {
	Input    string
	Output   string
	Format   resource.Format
	Entries  int
	Duration time.Duration
	CacheHit bool

	// Err is set when the file could not be localized. Other files in the
	// same run are unaffected.
	Err error
}

// Failed counts results with a non-nil Err.
func Failed(results []*Result) int {
	n := 0
	for _, r := range results {
		if r != nil && r.Err != nil {
			n++
		}
	}
	return n
}
