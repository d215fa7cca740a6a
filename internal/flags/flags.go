// Package flags provides discovery of pipeline status flag files.
//
// A flag file is an empty marker whose presence alone carries the status: a
// file named *<flag>.flag directly inside a sample's results folder,
// optionally prefixed by the pipeline that wrote it. Discovery re-reads the
// filesystem on every call and holds no state, so results are a best-effort
// snapshot that may race benignly against running pipelines.
package flags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/seqkit/loopr/internal/errors"
	"github.com/seqkit/loopr/internal/project"
)

// Flag is a recognized pipeline run status.
type Flag string

// The recognized status flags.
const (
	Completed Flag = "completed"
	Running   Flag = "running"
	Failed    Flag = "failed"
	Waiting   Flag = "waiting"
	Partial   Flag = "partial"
)

// Ext is the flag file extension.
const Ext = ".flag"

// All returns every recognized flag, in canonical order.
func All() []Flag {
	return []Flag{Completed, Running, Failed, Waiting, Partial}
}

// Parse validates a flag name.
func Parse(s string) (Flag, error) {
	for _, f := range All() {
		if s == string(f) {
			return f, nil
		}
	}
	return "", errors.Wrap(errors.ErrInvalidArgument, fmt.Sprintf("unrecognized flag %q", s))
}

// Query addresses a flag file search. Exactly one of Project and
// ResultsRoot must be set.
type Query struct {
	// Project supplies samples whose results folders are searched directly.
	Project *project.Project

	// ResultsRoot is searched one directory level down, assuming each
	// immediate subdirectory is one sample's results folder. The layout
	// assumption is not verified.
	ResultsRoot string

	// Flags restricts the search; empty means all recognized flags.
	Flags []Flag

	// Logger receives debug output; nil disables logging.
	Logger *zap.Logger
}

// FetchFlagFiles finds all flag file paths for a project or results root,
// grouped by flag name. Within a flag, paths appear in discovery order and
// are not de-duplicated. Missing directories and glob misses yield empty
// results, never errors; the only error is violating the one-addressing-mode
// contract.
func FetchFlagFiles(q Query) (map[Flag][]string, error) {
	if (q.Project == nil) == (q.ResultsRoot == "") {
		return nil, errors.Wrap(errors.ErrInvalidArgument,
			"need either a project or a results root, not both")
	}

	logger := q.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	want := q.Flags
	if len(want) == 0 {
		want = All()
	}

	filesByFlag := make(map[Flag][]string, len(want))
	for _, f := range want {
		filesByFlag[f] = nil
	}

	if q.Project == nil {
		for _, f := range want {
			pattern := filepath.Join(q.ResultsRoot, "*", "*"+string(f)+Ext)
			matches, _ := filepath.Glob(pattern)
			filesByFlag[f] = append(filesByFlag[f], matches...)
		}
		return filesByFlag, nil
	}

	for _, s := range q.Project.Samples {
		folder := q.Project.SampleFolder(s)
		for _, f := range want {
			pattern := filepath.Join(folder, "*"+string(f)+Ext)
			matches, _ := filepath.Glob(pattern)
			filesByFlag[f] = append(filesByFlag[f], matches...)
		}
	}
	logger.Debug("collected flag files",
		zap.Int("samples", len(q.Project.Samples)),
		zap.Int("flags", len(want)))
	return filesByFlag, nil
}

// FetchSampleFlags finds flag files for one pipeline inside one sample's
// results folder: immediate children whose extension is exactly ".flag" and
// whose name starts with the pipeline name. A missing folder is a valid
// state (the pipeline simply has not run) and yields nil.
func FetchSampleFlags(logger *zap.Logger, folder, pipeline string) []string {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		logger.Debug("results folder not readable",
			zap.String("folder", folder),
			zap.Error(err))
		return nil
	}

	var found []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != Ext {
			continue
		}
		if !strings.HasPrefix(name, pipeline) {
			continue
		}
		found = append(found, filepath.Join(folder, name))
	}
	return found
}
