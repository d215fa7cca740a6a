package flags

import (
	"path/filepath"
	"testing"

	"github.com/seqkit/loopr/internal/errors"
	"github.com/seqkit/loopr/internal/project"
	"github.com/seqkit/loopr/internal/testutil"
)

// makeProject builds a project rooted in a temp dir with the given samples.
func makeProject(t *testing.T, sampleNames ...string) *project.Project {
	t.Helper()
	dir := testutil.TempDir(t)
	prj := &project.Project{
		Name:             "testproj",
		OutputDir:        dir,
		ResultsSubdir:    "results_pipeline",
		SubmissionSubdir: "submission",
	}
	for _, name := range sampleNames {
		prj.Samples = append(prj.Samples, project.NewSample(name, nil))
	}
	return prj
}

func TestParse(t *testing.T) {
	for _, f := range All() {
		got, err := Parse(string(f))
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", f, err)
		}
		if got != f {
			t.Errorf("Parse(%q) = %q", f, got)
		}
	}

	_, err := Parse("bogus")
	if err == nil {
		t.Fatal("expected error for unrecognized flag, got nil")
	}
	if !errors.IsInvalidArgument(err) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestFetchFlagFilesAddressingContract(t *testing.T) {
	prj := makeProject(t, "s1")

	tests := []struct {
		name  string
		query Query
	}{
		{name: "neither", query: Query{}},
		{name: "both", query: Query{Project: prj, ResultsRoot: prj.ResultsFolder()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FetchFlagFiles(tt.query)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.IsInvalidArgument(err) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestFetchFlagFilesProjectMode(t *testing.T) {
	prj := makeProject(t, "atac_A", "chip1", "rna_SE")

	// atac_A completed, chip1 running, rna_SE nothing on disk at all.
	testutil.Touch(t, prj.ResultsFolder(), filepath.Join("atac_A", "wgbs_completed.flag"))
	testutil.Touch(t, prj.ResultsFolder(), filepath.Join("chip1", "wgbs_running.flag"))

	filesByFlag, err := FetchFlagFiles(Query{Project: prj})
	if err != nil {
		t.Fatalf("FetchFlagFiles() returned error: %v", err)
	}

	if len(filesByFlag) != len(All()) {
		t.Errorf("expected an entry for each of the %d flags, got %d", len(All()), len(filesByFlag))
	}
	if n := len(filesByFlag[Completed]); n != 1 {
		t.Errorf("expected 1 completed flag file, got %d", n)
	}
	if n := len(filesByFlag[Running]); n != 1 {
		t.Errorf("expected 1 running flag file, got %d", n)
	}
	for _, f := range []Flag{Failed, Waiting, Partial} {
		if n := len(filesByFlag[f]); n != 0 {
			t.Errorf("expected no %s flag files, got %d", f, n)
		}
	}

	want := filepath.Join(prj.ResultsFolder(), "atac_A", "wgbs_completed.flag")
	if filesByFlag[Completed][0] != want {
		t.Errorf("completed flag path = %q, want %q", filesByFlag[Completed][0], want)
	}
}

func TestFetchFlagFilesFlagSubset(t *testing.T) {
	prj := makeProject(t, "s1")
	testutil.Touch(t, prj.ResultsFolder(), filepath.Join("s1", "pipe_completed.flag"))
	testutil.Touch(t, prj.ResultsFolder(), filepath.Join("s1", "pipe_failed.flag"))

	filesByFlag, err := FetchFlagFiles(Query{Project: prj, Flags: []Flag{Failed}})
	if err != nil {
		t.Fatalf("FetchFlagFiles() returned error: %v", err)
	}
	if len(filesByFlag) != 1 {
		t.Fatalf("expected only the requested flag, got %d entries", len(filesByFlag))
	}
	if n := len(filesByFlag[Failed]); n != 1 {
		t.Errorf("expected 1 failed flag file, got %d", n)
	}
}

func TestFetchFlagFilesRootMode(t *testing.T) {
	root := testutil.TempDir(t)
	testutil.Touch(t, root, filepath.Join("sampleA", "pipe_completed.flag"))
	testutil.Touch(t, root, filepath.Join("sampleB", "pipe_completed.flag"))
	// Two levels down: must not be discovered.
	testutil.Touch(t, root, filepath.Join("sampleB", "nested", "pipe_completed.flag"))

	filesByFlag, err := FetchFlagFiles(Query{ResultsRoot: root})
	if err != nil {
		t.Fatalf("FetchFlagFiles() returned error: %v", err)
	}
	if n := len(filesByFlag[Completed]); n != 2 {
		t.Errorf("expected 2 completed flag files one level down, got %d", n)
	}
}

func TestFetchFlagFilesMissingFoldersAreEmpty(t *testing.T) {
	prj := makeProject(t, "ghost")

	filesByFlag, err := FetchFlagFiles(Query{Project: prj})
	if err != nil {
		t.Fatalf("FetchFlagFiles() returned error: %v", err)
	}
	for f, paths := range filesByFlag {
		if len(paths) != 0 {
			t.Errorf("expected no %s flag files for missing folders, got %v", f, paths)
		}
	}
}

func TestFetchSampleFlags(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.Touch(t, dir, "mypipe_completed.flag")
	testutil.Touch(t, dir, "mypipe_running.flag")
	testutil.Touch(t, dir, "otherpipe_completed.flag")
	testutil.Touch(t, dir, "mypipe_notes.txt")
	testutil.WriteFile(t, dir, filepath.Join("mypipe_subdir.flag", ".keep"), "")

	found := FetchSampleFlags(nil, dir, "mypipe")
	if len(found) != 2 {
		t.Fatalf("expected 2 flag files, got %v", found)
	}
	for _, p := range found {
		base := filepath.Base(p)
		if base != "mypipe_completed.flag" && base != "mypipe_running.flag" {
			t.Errorf("unexpected flag file %q", base)
		}
	}
}

func TestFetchSampleFlagsMissingFolder(t *testing.T) {
	dir := testutil.TempDir(t)
	missing := filepath.Join(dir, "does-not-exist")

	found := FetchSampleFlags(nil, missing, "mypipe")
	if found != nil {
		t.Errorf("expected nil for missing folder, got %v", found)
	}
}

func TestAppearance(t *testing.T) {
	tests := []struct {
		flag  Flag
		kind  string
		class string
		label string
	}{
		{flag: Completed, kind: "table", class: "table-success", label: "Completed"},
		{flag: Running, kind: "table", class: "table-primary", label: "Running"},
		{flag: Failed, kind: "btn btn", class: "btn btn-danger", label: "Failed"},
		{flag: Partial, kind: "table", class: "table-warning", label: "Partial"},
		{flag: Waiting, kind: "btn btn", class: "btn btn-info", label: "Waiting"},
	}

	for _, tt := range tests {
		t.Run(string(tt.flag), func(t *testing.T) {
			a := AppearanceFor(tt.flag, tt.kind)
			if a.Class != tt.class {
				t.Errorf("class = %q, want %q", a.Class, tt.class)
			}
			if a.Label != tt.label {
				t.Errorf("label = %q, want %q", a.Label, tt.label)
			}
		})
	}
}
