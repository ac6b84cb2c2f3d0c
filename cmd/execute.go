package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"fryc/build"
	"fryc/common"
	"fryc/jsrun"
	"fryc/logging"

	"github.com/ComedicChimera/olive"
	"github.com/pkg/errors"
)

// Execute runs the main `fryc` application
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("fryc", "fryc compiles Fry programs to JavaScript", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, logging.LogLevels)
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile a file or project", true)
	buildCmd.AddPrimaryArg("path", "the path to the root file or project directory", true)
	buildCmd.AddStringArg("output", "o", "the path of the generated program", false)

	runCmd := cli.AddSubcommand("run", "compile and run a file or project", true)
	runCmd.AddPrimaryArg("path", "the path to the root file or project directory", true)
	runCmd.AddStringArg("entry", "e", "the function to run", false)

	initCmd := cli.AddSubcommand("init", "initialize a project", true)
	initCmd.AddPrimaryArg("project-path", "the path to the project directory", true)
	initCmd.AddStringArg("name", "n", "the name of the project", false)

	cli.AddSubcommand("repl", "start an interactive session", false)
	cli.AddSubcommand("version", "print the Fry version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	// process the inputed command line
	loglevel := result.Arguments["loglevel"].(string)
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult, loglevel)
	case "run":
		execRunCommand(subResult, loglevel)
	case "init":
		execInitCommand(subResult)
	case "repl":
		runRepl()
	case "version":
		logging.PrintInfoMessage("Fry Version", common.FryVersion)
	}
}

// target is what a build command compiles.
type target struct {
	root        string
	output      string
	entry       string
	includeDirs []string
	loglevel    string
}

// loadTarget interprets a path as either a project directory or a root file.
func loadTarget(path, loglevel string) (*target, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	finfo, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(err, "build target")
	}

	if finfo.IsDir() {
		proj, err := build.LoadProject(abs)
		if err != nil {
			return nil, err
		}

		// the project's log level applies unless one is given explicitly
		if loglevel == "verbose" {
			loglevel = proj.LogLevel
		}

		return &target{
			root:        proj.Root,
			output:      proj.Output,
			entry:       proj.Entry,
			includeDirs: proj.IncludeDirs,
			loglevel:    loglevel,
		}, nil
	}

	return &target{
		root:     abs,
		output:   abs[:len(abs)-len(filepath.Ext(abs))] + ".js",
		entry:    "main",
		loglevel: loglevel,
	}, nil
}

// compileTarget compiles a target displaying the compilation phases.  It
// returns false if compilation failed.
func compileTarget(t *target) (string, []build.EntryPoint, bool) {
	logging.Initialize(t.loglevel)
	logging.LogCompileHeader(filepath.Base(t.root))

	logging.LogBeginPhase("Compiling")
	out, entries, err := build.CompileFile(t.root, t.includeDirs)
	if err != nil {
		logging.LogCompileError(err)
	}
	logging.LogEndPhase()

	return out, entries, err == nil
}

// execBuildCommand executes the build subcommand and handles all errors
func execBuildCommand(result *olive.ArgParseResult, loglevel string) {
	path, _ := result.PrimaryArg()

	t, err := loadTarget(path, loglevel)
	if err != nil {
		logging.PrintErrorMessage("Project Load Error", err)
		return
	}

	if outArg, ok := result.Arguments["output"]; ok {
		t.output = outArg.(string)
	}

	out, _, ok := compileTarget(t)
	if ok {
		logging.LogBeginPhase("Writing")
		if err := writeOutput(t.output, out); err != nil {
			logging.LogConfigError("Output", err.Error())
		}
		logging.LogEndPhase()
	}

	logging.LogCompilationFinished()
}

func writeOutput(path, out string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	return errors.Wrap(ioutil.WriteFile(path, []byte(out), 0644), "writing output")
}

// execRunCommand executes the run subcommand: the target is compiled and its
// entry function is called in the embedded JavaScript engine.
func execRunCommand(result *olive.ArgParseResult, loglevel string) {
	path, _ := result.PrimaryArg()

	t, err := loadTarget(path, loglevel)
	if err != nil {
		logging.PrintErrorMessage("Project Load Error", err)
		return
	}

	if entryArg, ok := result.Arguments["entry"]; ok {
		t.entry = entryArg.(string)
	}

	out, entries, ok := compileTarget(t)
	logging.LogCompilationFinished()
	if !ok {
		return
	}

	if err := runProgram(out, entries, t.entry); err != nil {
		logging.PrintErrorMessage("Runtime Error", err)
	}
}

// runProgram loads a compiled program and calls its entry function.
func runProgram(out string, entries []build.EntryPoint, entry string) error {
	var ep *build.EntryPoint
	for i := range entries {
		if entries[i].Name == entry {
			ep = &entries[i]
		}
	}

	if ep == nil {
		return errors.Errorf("no function named `%s` in the root file", entry)
	}

	if len(ep.Params) > 0 {
		return errors.Errorf("entry function `%s` must not take parameters", entry)
	}

	r := jsrun.New(os.Stdout)
	if err := r.Load(out); err != nil {
		return err
	}

	if !ep.Suspends {
		_, err := r.Call(entry)
		return err
	}

	c, err := r.CallSuspending(entry, ep.Throws)
	if err != nil {
		return err
	}

	if c.Throws > 0 {
		return errors.Errorf("entry function `%s` threw %s", entry, c.Thrown.String())
	}

	return nil
}

// execInitCommand executes the `init` subcommand
func execInitCommand(result *olive.ArgParseResult) {
	path, _ := result.PrimaryArg()

	abs, err := filepath.Abs(path)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	name := filepath.Base(abs)
	if nameArg, ok := result.Arguments["name"]; ok {
		name = nameArg.(string)
	}

	if err := build.InitProject(abs, name); err != nil {
		logging.PrintErrorMessage("Project Init Error", err)
		return
	}

	logging.PrintInfoMessage("Project Created", abs)
}
