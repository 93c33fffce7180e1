package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/sessgrep/internal/excerpt"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check environment and configuration health",
		Run: func(cmd *cobra.Command, args []string) {
			runDoctor()
		},
	}
}

func runDoctor() {
	fmt.Println("sessgrep doctor")
	fmt.Printf("  Version:  %s\n", version)
	fmt.Printf("  OS:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("  Go:       %s\n", runtime.Version())
	fmt.Println()

	cfgPath := resolveConfigPath()
	fmt.Printf("  Config:   %s", cfgPath)
	if _, err := os.Stat(cfgPath); err != nil {
		fmt.Println(" (not found, using defaults)")
	} else {
		fmt.Println(" (OK)")
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("  Config load error: %s\n", err)
		return
	}

	fmt.Printf("  Projects: %s", cfg.ProjectsDir)
	if _, err := os.Stat(cfg.ProjectsDir); err != nil {
		fmt.Println(" (NOT FOUND)")
	} else {
		files := newManager(cfg).Files()
		projects := map[string]bool{}
		for _, f := range files {
			projects[f.Project] = true
		}
		fmt.Printf(" (%d sessions in %d projects)\n", len(files), len(projects))
	}

	tokenizer := cfg.Tokenizer
	if tokenizer == "" {
		tokenizer = excerpt.DefaultEncoding
	}
	fmt.Printf("  Tokenizer: %s", tokenizer)
	if _, err := excerpt.NewTiktokenEstimator(cfg.Tokenizer); err != nil {
		fmt.Printf(" (unavailable: %s; --precise-tokens will fall back to the heuristic)\n", err)
	} else {
		fmt.Println(" (OK)")
	}

	fmt.Println()
	fmt.Println("Doctor check complete.")
}
