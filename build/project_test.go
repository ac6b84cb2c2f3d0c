package build

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseProject(t *testing.T) {
	proj, err := parseProject("/work/demo", []byte(`
[project]
name = "demo"
root = "main.fry"
include-dirs = ["lib", "vendor/fry"]
log-level = "warn"
`))
	if err != nil {
		t.Fatal(err)
	}

	if proj.Name != "demo" || proj.Root != "/work/demo/main.fry" {
		t.Errorf("got %+v", proj)
	}

	if proj.Output != "/work/demo/out/demo.js" || proj.Entry != "main" || proj.LogLevel != "warn" {
		t.Errorf("got defaults %+v", proj)
	}

	if len(proj.IncludeDirs) != 2 || proj.IncludeDirs[1] != "/work/demo/vendor/fry" {
		t.Errorf("got include dirs %v", proj.IncludeDirs)
	}
}

func TestInvalidProjects(t *testing.T) {
	cases := map[string]string{
		"missing table": `name = "demo"`,
		"missing name":  "[project]\nroot = \"main.fry\"",
		"bad name":      "[project]\nname = \"1demo\"\nroot = \"main.fry\"",
		"missing root":  "[project]\nname = \"demo\"",
		"bad log level": "[project]\nname = \"demo\"\nroot = \"main.fry\"\nlog-level = \"loud\"",
		"bad toml":      "[project\nname = ",
	}

	for name, src := range cases {
		if _, err := parseProject("/work", []byte(src)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestInitAndLoadProject(t *testing.T) {
	dir := t.TempDir()

	if err := InitProject(dir, "hello"); err != nil {
		t.Fatal(err)
	}

	if err := InitProject(dir, "hello"); err == nil {
		t.Error("expected an error when the project already exists")
	}

	proj, err := LoadProject(dir)
	if err != nil {
		t.Fatal(err)
	}

	if proj.Name != "hello" || proj.Output != filepath.Join(dir, "out", "hello.js") {
		t.Errorf("got %+v", proj)
	}

	out, entries, err := CompileFile(proj.Root, proj.IncludeDirs)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 || entries[0].Name != "main" {
		t.Errorf("got entries %+v", entries)
	}

	if !strings.Contains(out, "Hello from hello!") {
		t.Error("the generated root file must print a greeting")
	}
}

func TestLoadProjectMissingRoot(t *testing.T) {
	dir := t.TempDir()

	src := "[project]\nname = \"demo\"\nroot = \"missing.fry\"\n"
	if err := ioutil.WriteFile(filepath.Join(dir, "fry.toml"), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadProject(dir); err == nil {
		t.Error("expected an error for a missing root file")
	}
}
