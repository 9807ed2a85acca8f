// Package main is the tarn CLI: it compiles Tarn source files into
// WebAssembly binaries.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tarnlang/tarn"
)

func main() {
	os.Exit(run(os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr))
}

// run is separated from main so tests can drive the CLI against an
// in-memory filesystem and captured output.
func run(args []string, fs afero.Fs, stdout, stderr io.Writer) int {
	logger := logrus.New()
	logger.SetOutput(stderr)

	root := newRootCommand(fs, stdout, logger)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func newRootCommand(fs afero.Fs, stdout io.Writer, logger *logrus.Logger) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "tarn",
		Short:         "tarn compiles Tarn programs to WebAssembly",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().SetNormalizeFunc(wordSepNormalizeFunc)

	root.AddCommand(newBuildCommand(fs, logger))
	root.AddCommand(newInspectCommand(fs, stdout))
	return root
}

func newBuildCommand(fs afero.Fs, logger *logrus.Logger) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build <source file>",
		Short: "Compile a source file to a .wasm binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := afero.ReadFile(fs, path)
			if err != nil {
				return err
			}

			wasmBytes, err := tarn.Compile(string(source))
			if err != nil {
				return err
			}

			out := output
			if out == "" {
				out = defaultOutputPath(path)
			}
			logger.WithFields(logrus.Fields{
				"source": path,
				"output": out,
				"bytes":  len(wasmBytes),
			}).Debug("compiled module")

			return afero.WriteFile(fs, out, wasmBytes, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: source file with a .wasm extension)")
	return cmd
}

// wordSepNormalizeFunc lets flags be given with underscores in place of
// dashes.
func wordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newInspectCommand(fs afero.Fs, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <source file>",
		Short: "Compile a source file and print its module sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := afero.ReadFile(fs, args[0])
			if err != nil {
				return err
			}
			listing, err := tarn.Inspect(string(source))
			if err != nil {
				return err
			}
			_, err = io.WriteString(stdout, listing)
			return err
		},
	}
}

// defaultOutputPath swaps the source extension for .wasm, e.g. hello.tarn
// becomes hello.wasm.
func defaultOutputPath(sourcePath string) string {
	if i := strings.LastIndexByte(sourcePath, '.'); i > strings.LastIndexByte(sourcePath, '/')+1 {
		return sourcePath[:i] + ".wasm"
	}
	return sourcePath + ".wasm"
}
