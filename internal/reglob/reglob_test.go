package reglob

import (
	"path/filepath"
	"reflect"
	"regexp"
	"testing"

	"github.com/spf13/afero"
)

func writeFiles(t *testing.T, fsys afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := afero.WriteFile(fsys, p, []byte("x"), 0644); err != nil {
			t.Fatalf("writing %s: %v", p, err)
		}
	}
}

func TestFilesSingleLevel(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "/commands"
	writeFiles(t, fsys,
		filepath.Join(dir, "cgc_init.yaml"),
		filepath.Join(dir, "cgc_build.yaml"),
		filepath.Join(dir, "README.md"),
		filepath.Join(dir, "mac", "cgc_deploy.yaml"),
	)

	got, err := Files(fsys, dir, regexp.MustCompile(`^cgc_`), true)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	want := []string{
		filepath.Join(dir, "cgc_build.yaml"),
		filepath.Join(dir, "cgc_init.yaml"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestFilesSkipsMatchingDirectories(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/commands/cgc_dir.yaml", 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Files(fsys, "/commands", regexp.MustCompile(`^cgc_`), true)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no files, got %v", got)
	}
}

func TestFilesMissingDir(t *testing.T) {
	got, err := Files(afero.NewMemMapFs(), "/nope", regexp.MustCompile(`.*`), true)
	if err != nil {
		t.Fatalf("Files on missing dir: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no files, got %v", got)
	}
}

func TestMatchInvalidPattern(t *testing.T) {
	if _, err := Match(afero.NewMemMapFs(), "/", "([", true); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
