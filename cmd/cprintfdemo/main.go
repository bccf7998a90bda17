package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lhsprint/cprintf"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

// demoArgs is the fixed representative argument set the demo feeds to
// -format: arbitrary CLI-typed variadic arguments aren't practical to
// parse generically, so the demo exercises one signed integer, one
// unsigned integer, one float, one string, and one rune, in that
// directive order, rather than a speculative generic CLI grammar.
func demoArgs() []cprintf.Arg {
	return []cprintf.Arg{
		cprintf.IntArg(-42),
		cprintf.UintArg(255),
		cprintf.FloatArg(3.14159265),
		cprintf.StringArg("cprintf"),
		cprintf.RuneArg('!'),
	}
}

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		format      = flag.String("format", "%d %#x %.3f %s%c", "Format string to render against the demo argument set")
		policyFile  = flag.String("policy", "", "Path to a TOML policy file overlaying the default behavior")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("cprintfdemo %s (commit %s, built %s)\n", Version, Commit, Date)
		return
	}
	if *showHelp {
		fmt.Println("cprintfdemo renders -format against a fixed demo argument set: one signed int, one unsigned int, one float, one string, one rune.")
		flag.PrintDefaults()
		return
	}

	if *policyFile == "" {
		*policyFile = os.Getenv("CPRINTF_POLICY_FILE")
	}

	policy := cprintf.DefaultPolicy()
	if *policyFile != "" {
		loaded, err := cprintf.LoadPolicyFrom(*policyFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cprintfdemo: %v\n", err)
			os.Exit(1)
		}
		policy = loaded
	}

	engine := cprintf.NewEngine(policy, cprintf.NopLogger())
	out, err := engine.Sprintf(*format, demoArgs()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cprintfdemo: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}
