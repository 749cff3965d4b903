// This is the main-driver for our compiler.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/spf13/cobra"

	"github.com/danielcastelluccio/barelyc/compiler"
)

var (
	debug    bool
	run      bool
	assemble bool
)

var rootCmd = &cobra.Command{
	Use:   "barelyc <source1> [<source2> ...]",
	Short: "Ahead-of-time compiler, targeting FASM x86-64 assembly",
	Args:  cobra.MinimumNArgs(1),
	RunE:  compile,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Insert debug-level logging of each pipeline stage.")
	rootCmd.PersistentFlags().BoolVar(&assemble, "assemble", true, "Assemble the generated source with fasm.")
	rootCmd.PersistentFlags().BoolVar(&run, "run", false, "Run the binary, post-assembly.")
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05",
		LogFormat:       "[%lvl%] %time% - %msg%\n",
	})
	return log
}

// preflight checks that every named source file exists and is readable,
// before any of them are lexed, gathering every failure rather than
// stopping at the first (the one place in the pipeline that legitimately
// collects more than one independent failure; every later stage still
// halts on its first error, per the Non-goal of error recovery).
func preflight(paths []string) error {
	var result *multierror.Error
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
			continue
		}
		f.Close()
	}
	return result.ErrorOrNil()
}

func compile(cmd *cobra.Command, args []string) error {
	log := newLogger()
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := preflight(args); err != nil {
		return fmt.Errorf("preflight: %w", err)
	}

	sources := make([]string, 0, len(args))
	for _, path := range args {
		contents, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sources = append(sources, string(contents))
	}

	c := compiler.New(sources, log)
	c.SetDebug(debug)

	asm, err := c.Compile()
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(args[0]), ".barely")

	if err := os.MkdirAll("build", 0o755); err != nil {
		return fmt.Errorf("creating build directory: %w", err)
	}

	asmPath := filepath.Join("build", name+".asm")
	if err := os.WriteFile(asmPath, []byte(asm), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", asmPath, err)
	}
	log.WithField("path", asmPath).Info("wrote assembly")

	binPath := filepath.Join("build", name)
	if assemble {
		fasm := exec.Command("fasm", asmPath, binPath)
		fasm.Stdout = os.Stdout
		fasm.Stderr = os.Stderr
		if err := fasm.Run(); err != nil {
			return fmt.Errorf("fasm: %w", err)
		}
		log.WithField("path", binPath).Info("assembled binary")
	}

	if run {
		exe := exec.Command(binPath)
		exe.Stdout = os.Stdout
		exe.Stderr = os.Stderr
		if err := exe.Run(); err != nil {
			return fmt.Errorf("running %s: %w", binPath, err)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
