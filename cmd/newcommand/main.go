// Command newcommand scaffolds a new slash command: a Go source file under
// internal/commands plus a JSON description of its schema.
//
// Usage:
//
//	newcommand -name greet -description "Say hello" \
//	    -option string:target:"Who to greet":required \
//	    -out internal/commands
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tellebma/template-discord-bot/internal/generator"
)

type optionFlags []string

func (o *optionFlags) String() string { return strings.Join(*o, ", ") }

func (o *optionFlags) Set(v string) error {
	*o = append(*o, v)
	return nil
}

func main() {
	var (
		name        = flag.String("name", "", "command name (required, lowercase)")
		description = flag.String("description", "", "command description")
		category    = flag.String("category", "", "command category")
		cooldownSec = flag.Int("cooldown", 0, "per-user cooldown in seconds")
		permissions = flag.String("permissions", "", "comma-separated permission names, e.g. ManageServer")
		out         = flag.String("out", "internal/commands", "output directory")
	)
	var options optionFlags
	flag.Var(&options, "option", "option as type:name:description[:required], repeatable")
	flag.Parse()

	spec := &generator.Spec{
		Name:        *name,
		Description: *description,
		Category:    *category,
		Cooldown:    *cooldownSec,
	}
	if *permissions != "" {
		for _, p := range strings.Split(*permissions, ",") {
			spec.Permissions = append(spec.Permissions, strings.TrimSpace(p))
		}
	}

	for _, raw := range options {
		opt, err := parseOption(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad -option %q: %v\n", raw, err)
			os.Exit(1)
		}
		spec.Options = append(spec.Options, opt)
	}

	sourcePath, schemaPath, err := spec.WriteFiles(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s\n", sourcePath)
	fmt.Printf("wrote %s\n", schemaPath)
}

// parseOption reads "type:name:description[:required][:max=N][:min=N]".
func parseOption(raw string) (generator.OptionSpec, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return generator.OptionSpec{}, fmt.Errorf("need at least type:name")
	}

	opt := generator.OptionSpec{
		Type: strings.ToLower(parts[0]),
		Name: parts[1],
	}
	if len(parts) > 2 {
		opt.Description = parts[2]
	}
	for _, extra := range parts[3:] {
		switch {
		case extra == "required":
			opt.Required = true
		case strings.HasPrefix(extra, "max="):
			n, err := strconv.Atoi(strings.TrimPrefix(extra, "max="))
			if err != nil {
				return opt, fmt.Errorf("bad max: %v", err)
			}
			if opt.Type == "string" {
				opt.MaxLength = &n
			} else {
				f := float64(n)
				opt.Max = &f
			}
		case strings.HasPrefix(extra, "min="):
			n, err := strconv.Atoi(strings.TrimPrefix(extra, "min="))
			if err != nil {
				return opt, fmt.Errorf("bad min: %v", err)
			}
			if opt.Type == "string" {
				opt.MinLength = &n
			} else {
				f := float64(n)
				opt.Min = &f
			}
		default:
			return opt, fmt.Errorf("unknown modifier %q", extra)
		}
	}
	return opt, nil
}
