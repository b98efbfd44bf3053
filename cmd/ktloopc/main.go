package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/lgfh98/kotlin/internal/compiler"
	"github.com/lgfh98/kotlin/internal/diagnostic"
	"github.com/lgfh98/kotlin/internal/formatter"
	"github.com/lgfh98/kotlin/internal/linter"
	"github.com/lgfh98/kotlin/internal/parser"
	"github.com/lgfh98/kotlin/internal/testgen"
)

const usage = `ktloopc - for-loop lowering for a Kotlin subset

Usage:
  ktloopc check <path>...                      Parse and type-check only
  ktloopc lint <path>...                       Run style and loop-idiom checks
  ktloopc fmt [-w] <path>...                   Print (or rewrite) sources in canonical form
  ktloopc lower [options] <path>...            Print the IR after loop lowering
  ktloopc run [options] <file.kt>              Evaluate main
  ktloopc watch [options] <path>...            Re-run lower --report on every change
  ktloopc fuzz [--seed N] [-j N]               Check generated loops run the same lowered

A path is a .kt file or a directory searched for .kt files.

Options:
  --no-opt         Skip the for-loop lowering
  --report         Print one info line per for-loop (lower, watch)
  -j N             Lower up to N functions concurrently (default: GOMAXPROCS)
  -o DIR           Write <name>.lowered.kt files to DIR instead of stdout (lower)
  --max-steps N    Abort run after N statements (run)
  -w               Write formatted source back to the file (fmt)

Examples:
  ktloopc lower --report loops.kt      Show counted loops and what was lowered
  ktloopc lower -o out src/            Write out/<name>.lowered.kt for every file
  ktloopc run --no-opt loops.kt        Run with generic iterators
  ktloopc watch --report src/          Re-lower on save
  ktloopc fuzz --seed 7                Compare lowered and generic runs on boundary values
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command := os.Args[1]

	switch command {
	case "check":
		handleCheck(os.Args[2:])
	case "lint":
		handleLint(os.Args[2:])
	case "fmt":
		handleFmt(os.Args[2:])
	case "lower":
		handleLower(ctx, os.Args[2:])
	case "run":
		handleRun(ctx, os.Args[2:])
	case "watch":
		handleWatch(ctx, os.Args[2:])
	case "fuzz":
		handleFuzz(ctx, os.Args[2:])
	case "help", "--help", "-h":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// flags holds the options shared by the subcommands
type flags struct {
	opts   compiler.Options
	outDir string
	write  bool
	paths  []string
}

func parseFlags(args []string) flags {
	f := flags{opts: compiler.DefaultOptions()}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--no-opt":
			f.opts.Optimize = false
		case "--report":
			f.opts.Report = true
		case "-j":
			f.opts.Parallelism = intValue(args, &i)
		case "--max-steps":
			f.opts.MaxSteps = intValue(args, &i)
		case "-o":
			f.outDir = value(args, &i)
		case "-w":
			f.write = true
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
				os.Exit(1)
			}
			f.paths = append(f.paths, arg)
		}
	}

	if len(f.paths) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		os.Exit(1)
	}
	return f
}

func value(args []string, i *int) string {
	if *i+1 >= len(args) {
		fmt.Fprintf(os.Stderr, "Error: %s needs a value\n", args[*i])
		os.Exit(1)
	}
	*i++
	return args[*i]
}

func intValue(args []string, i *int) int {
	name := args[*i]
	n, err := strconv.Atoi(value(args, i))
	if err != nil || n < 0 {
		fmt.Fprintf(os.Stderr, "Error: %s needs a non-negative number\n", name)
		os.Exit(1)
	}
	return n
}

func workspace(paths []string) *compiler.Workspace {
	ws, err := compiler.NewWorkspace(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if len(ws.Files()) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no .kt files found")
		os.Exit(1)
	}
	return ws
}

func readSource(path string) string {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %s\n", err)
		os.Exit(1)
	}
	return string(source)
}

// printNonErrors prints warnings and infos the way check prints warnings
func printNonErrors(filePath string, diag *diagnostic.Diagnostics) {
	for _, d := range diag.All() {
		if d.Severity != diagnostic.Error {
			fmt.Printf("%s:%d:%d: %s: %s\n", filePath, d.Line, d.Column, d.Severity, d.Message)
		}
	}
}

func handleCheck(args []string) {
	f := parseFlags(args)
	failed := false

	for _, path := range workspace(f.paths).Files() {
		name := compiler.Display(path)
		diag := compiler.Check(readSource(path))
		if diag.HasErrors() {
			fmt.Fprintf(os.Stderr, "%s\n", diag.Format(name))
			failed = true
			continue
		}
		printNonErrors(name, diag)
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("No errors found.")
}

func handleLint(args []string) {
	f := parseFlags(args)
	count := 0

	for _, path := range workspace(f.paths).Files() {
		name := compiler.Display(path)
		p := parser.New(readSource(path))
		prog := p.Parse()

		if p.Diagnostics().HasErrors() {
			fmt.Fprintf(os.Stderr, "%s\n", p.Diagnostics().Format(name))
			os.Exit(1)
		}

		diag := linter.Lint(prog)
		if diag.Count() == 0 {
			continue
		}
		fmt.Println(diag.Format(name))
		count += diag.Count()
	}

	if count == 0 {
		fmt.Println("No lint warnings.")
		return
	}
	fmt.Printf("%d warning(s) found.\n", count)
}

func handleFmt(args []string) {
	f := parseFlags(args)

	for _, path := range workspace(f.paths).Files() {
		name := compiler.Display(path)
		source := readSource(path)
		p := parser.New(source)
		prog := p.Parse()

		if p.Diagnostics().HasErrors() {
			fmt.Fprintf(os.Stderr, "%s\n", p.Diagnostics().Format(name))
			os.Exit(1)
		}

		formatted := formatter.Format(prog)
		if !f.write {
			fmt.Print(formatted)
			continue
		}
		if formatted == source {
			continue
		}
		if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("Formatted %s\n", name)
	}
}

func handleLower(ctx context.Context, args []string) {
	f := parseFlags(args)
	files := workspace(f.paths).Files()

	if f.outDir != "" {
		for _, path := range files {
			outPath, err := compiler.Emit(ctx, path, f.outDir, f.opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wrote %s\n", compiler.Display(outPath))
		}
		return
	}

	failed := false
	for _, path := range files {
		if !lower(ctx, path, f.opts, len(files) > 1) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// lower prints the lowered IR of one file and its reports. It returns
// false when the file does not compile.
func lower(ctx context.Context, path string, opts compiler.Options, header bool) bool {
	name := compiler.Display(path)
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %s\n", err)
		return false
	}

	text, diag, err := compiler.Lower(ctx, string(source), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return false
	}
	if diag.HasErrors() {
		fmt.Fprintf(os.Stderr, "%s\n", diag.Format(name))
		return false
	}

	if header {
		fmt.Printf("// %s\n", name)
	}
	fmt.Print(text)
	printNonErrors(name, diag)
	return true
}

func handleRun(ctx context.Context, args []string) {
	f := parseFlags(args)
	if len(f.paths) != 1 {
		fmt.Fprintln(os.Stderr, "Error: run takes exactly one file")
		os.Exit(1)
	}
	path := f.paths[0]

	if err := compiler.Run(ctx, readSource(path), path, os.Stdout, f.opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func handleWatch(ctx context.Context, args []string) {
	f := parseFlags(args)
	f.opts.Report = true
	ws := workspace(f.paths)

	for _, path := range ws.Files() {
		lower(ctx, path, f.opts, true)
	}
	fmt.Fprintf(os.Stderr, "Watching %d file(s). Press Ctrl+C to stop.\n", len(ws.Files()))

	err := compiler.Watch(ctx, ws, func(path string) {
		fmt.Printf("\n// changed: %s\n", compiler.Display(path))
		lower(ctx, path, f.opts, false)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func handleFuzz(ctx context.Context, args []string) {
	opts := compiler.DefaultOptions()
	opts.MaxSteps = 1_000_000
	seed := uint64(1)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--seed":
			seed = uint64(intValue(args, &i))
		case "-j":
			opts.Parallelism = intValue(args, &i)
		case "--max-steps":
			opts.MaxSteps = intValue(args, &i)
		default:
			fmt.Fprintf(os.Stderr, "Unknown option: %s\n", args[i])
			os.Exit(1)
		}
	}

	outcomes, err := testgen.RunAll(ctx, testgen.Generate(seed), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, o := range outcomes {
		if o.Agrees() {
			continue
		}
		failed++
		fmt.Printf("MISMATCH %s\n%s\n--- generic\n%s--- lowered\n%s\n", o.Case.Name, o.Case.Source, o.Generic, o.Lowered)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d of %d programs disagree\n", failed, len(outcomes))
		os.Exit(1)
	}
	fmt.Printf("%d programs agree.\n", len(outcomes))
}
