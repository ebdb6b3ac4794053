// Command lc3as is a minimal reference driver for the assembler core.
// The real command-line surface is an external collaborator the core
// specification explicitly does not own (spec §1/§6); this is a small
// entry point included to exercise the library end to end, grounded on
// the teacher's main.go's use of the standard library flag package for
// its own command-line surface.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lc3tools/lc3asm/assemble"
	"github.com/lc3tools/lc3asm/config"
	"github.com/lc3tools/lc3asm/objrecord"
)

func main() {
	var (
		outPath    = flag.String("o", "", "output object file path (default: input path with .obj extension)")
		configPath = flag.String("config", "", "path to a TOML config file (default: platform config directory)")
		liberal    = flag.Bool("liberal", false, "assemble in liberal mode (warnings instead of errors for anomalies)")
		strict     = flag.Bool("strict", false, "assemble in strict mode (overrides -liberal and any config file)")
		verbose    = flag.Bool("verbose", false, "emit EXTRA-level diagnostic traces")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: lc3as [flags] <source.asm>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3as: %v\n", err)
		os.Exit(1)
	}
	if *liberal {
		cfg.Assembler.Mode = "liberal"
	}
	if *strict {
		cfg.Assembler.Mode = "strict"
	}
	cfg.Assembler.Verbose = cfg.Assembler.Verbose || *verbose

	src, err := os.ReadFile(inputPath) // #nosec G304 -- user-supplied source path is the whole point of this CLI
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3as: %v\n", err)
		os.Exit(1)
	}

	result, log := assemble.Assemble(string(src), inputPath, *cfg)
	if err := log.WriteTo(os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "lc3as: writing diagnostics: %v\n", err)
	}

	if log.HasErrors() || result == nil {
		fmt.Fprintln(os.Stderr, "lc3as: assembly failed")
		os.Exit(1)
	}

	destPath := *outPath
	if destPath == "" {
		destPath = objectPath(inputPath, cfg.Output.ObjectExtension)
	}

	out, err := os.Create(destPath) // #nosec G304 -- user-supplied output path
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3as: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeObject(out, result); err != nil {
		fmt.Fprintf(os.Stderr, "lc3as: writing object file: %v\n", err)
		os.Exit(1)
	}
}

func writeObject(w io.Writer, result *assemble.Result) error {
	return objrecord.WriteAll(w, result.Entries)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func objectPath(inputPath, ext string) string {
	if ext == "" {
		ext = ".obj"
	}
	trimmed := inputPath
	for i := len(trimmed) - 1; i >= 0; i-- {
		if trimmed[i] == '.' {
			trimmed = trimmed[:i]
			break
		}
		if trimmed[i] == '/' {
			break
		}
	}
	return trimmed + ext
}
