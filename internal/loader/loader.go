// Package loader loads RDF files into a store.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/FAU-CDI/rdfadmin/internal/status"
	"github.com/FAU-CDI/rdfadmin/internal/store"
)

// cspell:words nquads ntriples

// Format is the serialization format of an RDF file.
type Format string

const (
	NQuads   Format = "nquads"
	NTriples Format = "ntriples"
	Turtle   Format = "turtle"
)

// Source represents a source of statements.
type Source interface {
	// Next returns the next statement, or io.EOF once no more statements are available.
	// Errors wrapping [ErrInvalidStatement] only affect the current statement.
	Next() (store.Statement, error)
}

var errUnknownFormat = errors.New("unknown format")

// ErrInvalidStatement is wrapped by errors returned from [Source.Next] for a statement
// that was read, but holds terms that cannot be stored.
// Reading may continue after such an error.
var ErrInvalidStatement = errors.New("invalid statement")

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidStatement, err)
}

// NewSource creates a new source reading statements of the given format from r.
// graph is used as the named graph of formats without graph information.
func NewSource(r io.Reader, format Format, graph string) (Source, error) {
	switch format {
	case NQuads:
		return newQuadSource(r), nil
	case NTriples, Turtle:
		return newTripleSource(r, format, graph), nil
	}
	return nil, fmt.Errorf("%w %q", errUnknownFormat, format)
}

// DefaultBatchSize is the default number of statements inserted at once.
const DefaultBatchSize = 1000

// Load reads all statements from source and inserts them into st in batches of batchSize.
// Invalid statements are logged to status and skipped.
// It returns the number of statements inserted.
func Load(ctx context.Context, st *store.Store, source Source, batchSize int, status *status.Status) (count int, err error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	batch := make([]store.Statement, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := st.Insert(ctx, batch...); err != nil {
			return err
		}
		count += len(batch)
		status.Add(len(batch))
		batch = batch[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		statement, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, ErrInvalidStatement) {
			status.LogError("skip statement", err)
			continue
		}
		if err != nil {
			return count, fmt.Errorf("read statement %d: %w", count+len(batch)+1, err)
		}

		batch = append(batch, statement)
		if len(batch) < batchSize {
			continue
		}
		if err := flush(); err != nil {
			return count, err
		}
	}

	return count, flush()
}

// LoadFile opens path and loads all statements it contains into st.
// Progress is reported to status.
func LoadFile(ctx context.Context, st *store.Store, path string, format Format, graph string, status *status.Status) (count int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var size int64
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}

	source, err := NewSource(status.Reader(file, size), format, graph)
	if err != nil {
		return 0, err
	}
	return Load(ctx, st, source, DefaultBatchSize, status)
}
