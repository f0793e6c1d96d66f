// cmd/tools/ruleset-check/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"carbon-assistant/internal/assistant/intent"
	"carbon-assistant/pkg/schemas"
)

func main() {
	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)
	classifyCmd := flag.NewFlagSet("classify", flag.ExitOnError)

	// Check command flags
	rulesetPath := checkCmd.String("ruleset", "configs/intent-rules.yaml", "Path to the intent ruleset file")
	registryPath := checkCmd.String("registry", "", "Path to the request schema registry (optional)")

	// Classify command flags
	classifyRuleset := classifyCmd.String("ruleset", "", "Ruleset file to use (compiled-in default otherwise)")
	message := classifyCmd.String("message", "", "Message to classify")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		checkCmd.Parse(os.Args[2:])
		if err := runCheck(*rulesetPath, *registryPath); err != nil {
			fmt.Printf("Check failed: %v\n", err)
			os.Exit(1)
		}

	case "classify":
		classifyCmd.Parse(os.Args[2:])
		if *message == "" {
			fmt.Println("Error: message is required for classify.")
			classifyCmd.Usage()
			os.Exit(1)
		}
		if err := runClassify(*classifyRuleset, *message); err != nil {
			fmt.Printf("Classify failed: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func runCheck(rulesetPath, registryPath string) error {
	rs, err := intent.LoadRuleset(rulesetPath)
	if err != nil {
		return fmt.Errorf("failed to load ruleset: %w", err)
	}
	if _, err := intent.NewClassifier(rs); err != nil {
		return fmt.Errorf("ruleset does not build a classifier: %w", err)
	}
	fmt.Printf("Ruleset OK: version %s, %d rules.\n", rs.Version, len(rs.Rules))

	if registryPath != "" {
		reg, err := schemas.LoadRegistry(registryPath)
		if err != nil {
			return fmt.Errorf("failed to load schema registry: %w", err)
		}
		fmt.Printf("Schema registry OK: version %s, %d operations.\n", reg.Version, len(reg.Operations))
	}

	return nil
}

func runClassify(rulesetPath, message string) error {
	rs := intent.DefaultRuleset()
	if rulesetPath != "" {
		var err error
		rs, err = intent.LoadRuleset(rulesetPath)
		if err != nil {
			return fmt.Errorf("failed to load ruleset: %w", err)
		}
	}
	classifier, err := intent.NewClassifier(rs)
	if err != nil {
		return fmt.Errorf("ruleset does not build a classifier: %w", err)
	}

	result := classifier.Classify(message)
	fmt.Printf("Intent:     %s\n", result.Name)
	fmt.Printf("Confidence: %.2f\n", result.Confidence)

	names := make([]string, 0, len(result.Scores))
	for name := range result.Scores {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Scores:")
	for _, name := range names {
		fmt.Printf("  %-22s %d\n", name, result.Scores[name])
	}

	return nil
}

func help() {
	fmt.Print(`
Usage: ruleset-check <command> [flags]

Commands:
  check     Validate a ruleset file and optionally a schema registry
  classify  Classify a message and print the per-rule scores
  help      Show this help message

Examples:
  ruleset-check check -ruleset configs/intent-rules.yaml
  ruleset-check check -ruleset configs/intent-rules.yaml -registry configs/request-schemas.json
  ruleset-check classify -message "how do I reduce my carbon footprint"
  ruleset-check classify -ruleset configs/intent-rules.yaml -message "hello"

Use 'ruleset-check <command> -h' for more information about a command.

`)
}
