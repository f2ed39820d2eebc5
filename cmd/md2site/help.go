package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build the site into an output directory")
	fmt.Fprintln(w, "  check       Parse and validate documents without writing")
	fmt.Fprintln(w, "  watch       Build, then rebuild on every change")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2site help <command>' for details on a specific command.")
}

func printSiteFlags(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -r, --root <dir>          Site root holding src/, template/ and config.toml")
	fmt.Fprintln(w, "  -c, --config <file>       Configuration merged over the site config")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Documents:")
	fmt.Fprintln(w, "      --article-regex <re>  Only build documents whose path matches;")
	fmt.Fprintln(w, "                            assets are not copied")
	fmt.Fprintln(w, "      --drafts              Include draft articles")
	fmt.Fprintln(w)
}

func printOutputControl(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log every document")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2SITE_ROOT, MD2SITE_CONFIG, MD2SITE_OUT, MD2SITE_WORKERS, MD2SITE_DEBOUNCE")
	fmt.Fprintln(w, "  supply defaults for the matching flags.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site build --out <dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every document under <root>/src and copy the other files.")
	fmt.Fprintln(w, "An article without a date stops the build before anything is written.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --out <dir>           Output directory (required)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printOutputControl(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site check [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parse every document and verify the site invariants. Nothing is written.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	printOutputControl(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site watch --out <dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the site, then rebuild when documents, templates or the")
	fmt.Fprintln(w, "configuration change. Failed rebuilds are reported; watching continues.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --out <dir>           Output directory (required)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --debounce <d>        Delay before rebuilding (default 300ms)")
	fmt.Fprintln(w)
	printOutputControl(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2site version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2site help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
