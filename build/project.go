package build

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"fryc/common"
	"fryc/logging"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// tomlProjectFile represents the project file as it is encoded in TOML
type tomlProjectFile struct {
	Project *tomlProject `toml:"project"`
}

// tomlProject represents a Fry project as it is encoded in TOML
type tomlProject struct {
	Name        string   `toml:"name"`
	Root        string   `toml:"root"`
	Output      string   `toml:"output,omitempty"`
	IncludeDirs []string `toml:"include-dirs,omitempty"`
	LogLevel    string   `toml:"log-level,omitempty"`
	Entry       string   `toml:"entry,omitempty"`
	Version     string   `toml:"fry-version,omitempty"`
}

// Project is a loaded and validated project.  All paths are absolute.
type Project struct {
	Name string

	// Dir is the directory containing the project file.
	Dir string

	Root        string
	Output      string
	IncludeDirs []string
	LogLevel    string
	Entry       string
}

// LoadProject loads the project file of the project in dir.
func LoadProject(dir string) (*Project, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	buff, err := ioutil.ReadFile(filepath.Join(dir, common.ProjectFileName))
	if err != nil {
		return nil, errors.Wrap(err, "reading project file")
	}

	proj, err := parseProject(dir, buff)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(proj.Root); err != nil {
		return nil, errors.Wrapf(err, "root file of project `%s`", proj.Name)
	}

	return proj, nil
}

// parseProject decodes and validates the contents of a project file.
func parseProject(dir string, buff []byte) (*Project, error) {
	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, errors.Wrap(err, "decoding project file")
	}

	tp := tpf.Project
	if tp == nil {
		return nil, errors.New("project file is missing a [project] table")
	}

	if err := validateProject(dir, tp); err != nil {
		return nil, err
	}

	proj := &Project{
		Name:     tp.Name,
		Dir:      dir,
		Root:     filepath.Join(dir, tp.Root),
		LogLevel: tp.LogLevel,
		Entry:    tp.Entry,
	}

	if tp.Output == "" {
		proj.Output = filepath.Join(dir, "out", tp.Name+".js")
	} else {
		proj.Output = filepath.Join(dir, tp.Output)
	}

	for _, incDir := range tp.IncludeDirs {
		proj.IncludeDirs = append(proj.IncludeDirs, filepath.Join(dir, incDir))
	}

	if proj.Entry == "" {
		proj.Entry = "main"
	}

	if proj.LogLevel == "" {
		proj.LogLevel = "verbose"
	}

	return proj, nil
}

// validateProject checks that the project file contents are valid
func validateProject(dir string, tp *tomlProject) error {
	if tp.Name == "" {
		return errors.Errorf("missing project name for project at %s", dir)
	}

	if !common.IsValidIdentifier(tp.Name) {
		return errors.New("project name must be a valid identifier")
	}

	if tp.Root == "" {
		return errors.Errorf("project `%s` must specify a root file", tp.Name)
	}

	if tp.LogLevel != "" && !logging.IsValidLogLevel(tp.LogLevel) {
		return errors.Errorf("unknown log level `%s`", tp.LogLevel)
	}

	if tp.Version != "" && tp.Version != common.FryVersion {
		logging.LogBuildWarning(
			"project",
			fmt.Sprintf("version of project `%s` (v%s) does not match current fry version (v%s)", tp.Name, tp.Version, common.FryVersion),
		)
	}

	return nil
}

// InitProject creates a new project with the given name in dir along with an
// empty root file.
func InitProject(dir, name string) error {
	projFilePath := filepath.Join(dir, common.ProjectFileName)

	// check to see if a project already exists
	_, err := os.Stat(projFilePath)
	if err == nil {
		return errors.New("project file already exists")
	}

	if !os.IsNotExist(err) {
		return errors.Wrap(err, "project file error")
	}

	if !common.IsValidIdentifier(name) {
		return errors.New("project name must be a valid identifier")
	}

	proj := &tomlProject{
		Name:     name,
		Root:     "main" + common.FryFileExt,
		Output:   filepath.ToSlash(filepath.Join("out", name+".js")),
		LogLevel: "verbose",
		Entry:    "main",
		Version:  common.FryVersion,
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating project directory")
	}

	f, err := os.Create(projFilePath)
	if err != nil {
		return errors.Wrap(err, "creating project file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlProjectFile{Project: proj}); err != nil {
		return errors.Wrap(err, "encoding TOML")
	}

	rootPath := filepath.Join(dir, proj.Root)
	if _, err := os.Stat(rootPath); os.IsNotExist(err) {
		src := "function main\n{\n  print(v = \"Hello from " + name + "!\")\n}\n"
		if err := ioutil.WriteFile(rootPath, []byte(src), 0644); err != nil {
			return errors.Wrap(err, "creating root file")
		}
	}

	return nil
}
