package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thu-info-community/thu-info-code-scan/internal/analyzer"
	"github.com/thu-info-community/thu-info-code-scan/internal/output"
	"github.com/thu-info-community/thu-info-code-scan/internal/parser"
	"github.com/thu-info-community/thu-info-code-scan/internal/registry"
	"github.com/thu-info-community/thu-info-code-scan/internal/scanner"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	rootCmd = &cobra.Command{
		Use:           "thu-info-code-scan",
		Short:         "List every external login performed by thu-info-lib",
		Long:          "A static auditor that finds every place thu-info-lib authenticates against an external system and checks it against the built-in registry.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	scanCmd = &cobra.Command{
		Use:   "scan [project-dir]",
		Short: "Scan thu-info-lib for authentication touch-points",
		Long: "Locate the thu-info-lib sources (src/lib of the library itself, or node_modules/thu-info-lib/src/lib " +
			"of a dependent project), report every login they perform and fail on anything the registry does not know.",
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	registryCmd = &cobra.Command{
		Use:   "registry",
		Short: "Print the built-in registry of external resources",
		Args:  cobra.NoArgs,
		RunE:  runRegistry,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}

	// Flags
	srcDir       string
	jsonOutput   bool
	noColor      bool
	silent       bool
	debug        bool
	includeGlobs []string
	excludeGlobs []string
)

func init() {
	scanCmd.Flags().StringVar(&srcDir, "src", "", "Scan this directory directly instead of locating thu-info-lib")
	scanCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output usages as JSON lines")
	scanCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	scanCmd.Flags().BoolVar(&silent, "silent", false, "Do not print progress and summary to stderr")
	scanCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	scanCmd.Flags().StringSliceVar(&includeGlobs, "include", []string{}, "Glob patterns of file names to include")
	scanCmd.Flags().StringSliceVar(&excludeGlobs, "exclude", []string{}, "Glob patterns of file names to exclude")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(versionCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	reg, err := registry.Load()
	if err != nil {
		return err
	}

	root, err := sourceRoot(args)
	if err != nil {
		return err
	}

	fileScanner := scanner.NewScanner()
	if len(includeGlobs) > 0 {
		if err := fileScanner.SetIncludeGlobs(includeGlobs); err != nil {
			return err
		}
	}
	if len(excludeGlobs) > 0 {
		if err := fileScanner.SetExcludeGlobs(excludeGlobs); err != nil {
			return err
		}
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if !silent {
		fmt.Fprintf(stderr, "Scanning %s...\n", root)
	}
	files, err := fileScanner.Scan(root)
	if err != nil {
		return fmt.Errorf("failed to scan directory: %w", err)
	}
	if !silent {
		fmt.Fprintf(stderr, "Found %d files\n\n", len(files))
	}

	var sink analyzer.Sink
	if jsonOutput {
		sink = output.NewJSONReporter(stdout)
	} else {
		color := false
		if f, ok := stdout.(*os.File); ok && !noColor {
			color = output.ColorSupported(f)
		}
		sink = output.NewTextReporter(stdout, color)
	}
	counter := output.NewCounter(sink)

	tsParser := parser.NewParser()
	tsParser.SetDebug(debug)

	a := analyzer.New(reg, counter)
	a.SetDebug(debug)
	if err := a.Run(files, tsParser); err != nil {
		return err
	}

	if !silent {
		fmt.Fprintf(stderr, "Reported %s\n", counter.Summary())
	}
	return nil
}

// sourceRoot resolves the directory to scan from --src or the project directory
func sourceRoot(args []string) (string, error) {
	if srcDir != "" {
		absPath, err := filepath.Abs(srcDir)
		if err != nil {
			return "", fmt.Errorf("invalid path: %w", err)
		}
		return absPath, nil
	}

	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}
	absPath, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("path does not exist: %s", absPath)
	}
	return scanner.FindSourceRoot(absPath)
}

func runRegistry(cmd *cobra.Command, args []string) error {
	reg, err := registry.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Unified identity systems:")
	for _, key := range reg.IdentifierKeys() {
		title, _ := reg.Identifier(key)
		fmt.Fprintf(out, "  %s  %s\n", key, title)
	}
	fmt.Fprintln(out)

	vpn := reg.VPN()
	fmt.Fprintln(out, "WebVPN:")
	fmt.Fprintf(out, "  %s  %s\n\n", vpn.Title, vpn.URL)

	fmt.Fprintln(out, "Password logins:")
	for _, name := range reg.PasswordNames() {
		login, _ := reg.Password(name)
		fmt.Fprintf(out, "  %s  %s  %s\n", name, login.Title, login.URL)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, output.FormatError(err))
		os.Exit(1)
	}
}
