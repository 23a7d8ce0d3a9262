package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/suparena/sfactory"
	"github.com/suparena/sfactory/manifest"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	envFlag     = flag.String("env", "", "Dotenv file to load before expanding binding values")
)

func main() {
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := sfactory.GetVersionInfo()
		fmt.Printf("sfactory bindcheck version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: bindcheck [-env file] <manifest.yaml>\n")
		os.Exit(2)
	}

	if *envFlag != "" {
		if err := godotenv.Load(*envFlag); err != nil {
			fmt.Fprintf(os.Stderr, "bindcheck: loading %s: %v\n", *envFlag, err)
			os.Exit(1)
		}
	}

	m, err := manifest.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "bindcheck: %v\n", err)
		os.Exit(1)
	}
	if err := m.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "bindcheck: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("manifest version %d, %d binding(s)\n", m.Version, len(m.Bindings))
	if gen, err := m.Generated(); err == nil && m.GeneratedAt != "" {
		fmt.Printf("generated at %s\n", gen)
	}
	for _, b := range m.Bindings {
		if b.Doc != "" {
			fmt.Printf("  %s -> %s (%s)\n", b.Key, b.Provider, b.Doc)
		} else {
			fmt.Printf("  %s -> %s\n", b.Key, b.Provider)
		}
	}
}
