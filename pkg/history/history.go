// Package history keeps a record of every check that was run.
//
// Each check produces a [Report] identified by a UUID. Reports are written
// to a [Store]:
//   - [FileStore]: one JSON file per report, for the CLI
//   - [MongoStore]: a MongoDB collection, for the API server
//   - [NullStore]: keeps nothing
//
// Store lookups for unknown IDs return an error with code NOT_FOUND from
// package errors.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/highway/pkg/network"
	"github.com/matzehuels/highway/pkg/planarity"
)

// DefaultListLimit caps List when the caller passes a limit <= 0.
const DefaultListLimit = 20

// Report is the stored outcome of one check.
type Report struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// Tokens is the raw island description.
	Tokens []int `json:"tokens" bson:"tokens"`

	Nodes    int `json:"nodes" bson:"nodes"`
	Highways int `json:"highways" bson:"highways"`

	Status   network.Status `json:"status" bson:"status"`
	Problems []string       `json:"problems,omitempty" bson:"problems,omitempty"`
	Rejected [][2]int       `json:"rejected,omitempty" bson:"rejected,omitempty"`

	Result planarity.Result `json:"result" bson:"result"`
	Steps  []planarity.Step `json:"steps,omitempty" bson:"steps,omitempty"`

	// Error holds the checker error for indeterminate verdicts.
	Error string `json:"error,omitempty" bson:"error,omitempty"`

	Cached   bool          `json:"cached" bson:"cached"`
	Duration time.Duration `json:"duration_ns" bson:"duration_ns"`
}

// NewID returns a fresh report identifier.
func NewID() string {
	return uuid.NewString()
}

// Store persists reports.
type Store interface {
	// Save inserts or replaces r.
	Save(ctx context.Context, r *Report) error

	// Get returns the report with the given ID.
	Get(ctx context.Context, id string) (*Report, error)

	// List returns up to limit reports, newest first.
	List(ctx context.Context, limit int) ([]*Report, error)

	// Delete removes a report. Deleting a missing report is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// Options selects and configures a store backend.
type Options struct {
	Backend  string // "file", "mongo" or "none"
	Dir      string // file backend directory
	MongoURI string
	Database string
}

// New opens the store named by opts.Backend.
func New(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", "file":
		fs, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case "mongo":
		ms, err := NewMongoStore(ctx, opts.MongoURI, opts.Database)
		if err != nil {
			return nil, err
		}
		return ms, nil
	case "none":
		return NullStore{}, nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", opts.Backend)
	}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
