// Command scenario checks park scenario files before the server loads them.
//
//	scenario validate [dir]   validate every *.json scenario in dir
//	scenario analyze [dir]    print starting economics for every scenario
//
// dir defaults to $CONFIG_DIR, then configs.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/parkserver/game/engine"
)

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "scenario",
		Usage: "validate and analyze park scenarios",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "validate scenario files",
				ArgsUsage: "[dir]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "strict", Usage: "treat warnings as errors"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					files, err := scenarioFiles(cmd.Args().First())
					if err != nil {
						return err
					}
					return runValidate(out, files, cmd.Bool("strict"))
				},
			},
			{
				Name:      "analyze",
				Usage:     "print starting economics of scenario files",
				ArgsUsage: "[dir]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					files, err := scenarioFiles(cmd.Args().First())
					if err != nil {
						return err
					}
					return runAnalyze(out, files)
				},
			},
		},
	}
}

// scenarioFiles lists the *.json files of dir
func scenarioFiles(dir string) ([]string, error) {
	if dir == "" {
		dir = os.Getenv("CONFIG_DIR")
	}
	if dir == "" {
		dir = "configs"
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("finding scenario files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no scenario files in %s", dir)
	}
	return files, nil
}

// runValidate prints a report per file and fails if any file is invalid
func runValidate(out io.Writer, files []string, strict bool) error {
	allValid := true
	for _, file := range files {
		result := validateScenario(file)
		if strict && len(result.Warnings) > 0 {
			result.Valid = false
		}

		fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(out, "✅ VALID")
			for _, info := range result.Messages {
				fmt.Fprintln(out, "  "+info)
			}
		} else {
			fmt.Fprintln(out, "❌ INVALID")
			allValid = false
			for _, msg := range result.Messages {
				if !strings.HasPrefix(msg, "✓") {
					fmt.Fprintln(out, "  ❌ "+msg)
				}
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(out, "  ⚠️  "+warning)
		}
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		fmt.Fprintln(out, "❌ Some scenarios have errors")
		return cli.Exit("", 1)
	}
	fmt.Fprintln(out, "✅ All scenarios are valid!")
	return nil
}

// runAnalyze prints the analysis of every loadable file
func runAnalyze(out io.Writer, files []string) error {
	for _, file := range files {
		fmt.Fprintf(out, "\n=== Analyzing %s ===\n", filepath.Base(file))

		config, err := engine.LoadScenarioConfig(file)
		if err != nil {
			fmt.Fprintf(out, "Error loading scenario: %v\n", err)
			continue
		}
		printAnalysis(out, analyzeScenario(config))
	}
	return nil
}
