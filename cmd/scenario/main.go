package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dharitri/dharitri-wasm-go/mock"
	"github.com/dharitri/dharitri-wasm-go/vmhost"
)

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98FB98"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
)

// contractFlag collects name=path.wasm pairs.
type contractFlag map[string]string

func (c contractFlag) String() string {
	var parts []string
	for name, path := range c {
		parts = append(parts, name+"="+path)
	}
	return strings.Join(parts, ",")
}

func (c contractFlag) Set(v string) error {
	name, path, ok := strings.Cut(v, "=")
	if !ok || name == "" || path == "" {
		return fmt.Errorf("expected name=path.wasm, got %q", v)
	}
	c[name] = path
	return nil
}

func main() {
	contracts := contractFlag{}
	flag.Var(contracts, "contract", "Register a wasm contract under a scenario code name (name=path.wasm, repeatable)")
	verbose := flag.Bool("v", false, "Log world and VM activity")
	interactive := flag.Bool("i", false, "Step through a single scenario interactively")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: scenario [-contract name=file.wasm ...] [-v] <scenario.toml> ...")
		fmt.Fprintln(os.Stderr, "       scenario [-contract name=file.wasm ...] -i <scenario.toml>")
		os.Exit(1)
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer l.Sync()
		mock.SetLogger(l.Named("mock"))
		vmhost.SetLogger(l.Named("vmhost"))
	}

	ctx := context.Background()
	rt, err := vmhost.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close(ctx)

	mods, err := compileContracts(ctx, rt, contracts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	newWorld := func() *mock.World {
		w := mock.NewWorld()
		for name, mod := range mods {
			w.RegisterContract([]byte(name), mod.Contract(ctx))
		}
		return w
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(flag.Arg(0), newWorld); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := runScenario(path, newWorld()); err != nil {
			failed++
			fmt.Printf("%s %s\n", failStyle.Render("FAIL"), nameStyle.Render(path))
			for _, e := range multierr.Errors(err) {
				fmt.Printf("     %v\n", e)
			}
			continue
		}
		fmt.Printf("%s %s\n", passStyle.Render("PASS"), nameStyle.Render(path))
	}
	fmt.Printf("\n%d passed, %d failed\n", flag.NArg()-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func compileContracts(ctx context.Context, rt *vmhost.Runtime, contracts contractFlag) (map[string]*vmhost.Module, error) {
	mods := make(map[string]*vmhost.Module, len(contracts))
	for name, path := range contracts {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read contract %s: %w", name, err)
		}
		mod, err := rt.Compile(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("compile contract %s: %w", name, err)
		}
		mods[name] = mod
	}
	return mods, nil
}

func runScenario(path string, w *mock.World) error {
	s, err := mock.LoadScenario(path)
	if err != nil {
		return err
	}
	return s.Run(w)
}
