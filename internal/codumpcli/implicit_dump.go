package codumpcli

import (
	"strings"

	"github.com/spf13/cobra"
)

// RewriteArgsForImplicitDump turns "codump FILE PATH..." into "codump dump FILE PATH..."
// when the first positional argument is not a subcommand.
func RewriteArgsForImplicitDump(root *cobra.Command, args []string) []string {
	if root == nil || len(args) == 0 {
		return args
	}

	first, ok := firstPositionalArgAfterFlags(args)
	if !ok {
		return args
	}

	known := knownTopLevelCommands(root)
	if known[strings.TrimSpace(first)] {
		return args
	}

	return append([]string{"dump"}, args...)
}

func knownTopLevelCommands(root *cobra.Command) map[string]bool {
	known := map[string]bool{
		"help":       true,
		"completion": true,
	}

	if root == nil {
		return known
	}

	for _, c := range root.Commands() {
		if c == nil {
			continue
		}
		known[c.Name()] = true
		for _, a := range c.Aliases {
			known[a] = true
		}
	}

	return known
}

// valueLongFlags are the persistent long flags that consume the next argument.
var valueLongFlags = map[string]bool{
	"outer": true, "outer-start": true, "outer-end": true,
	"inner": true, "inner-start": true, "inner-end": true,
	"ignore": true, "preset": true, "format": true,
	"theme": true, "presets-file": true,
}

func firstPositionalArgAfterFlags(args []string) (string, bool) {
	skipNext := false
	positionalOnly := false

	for i := 0; i < len(args); i++ {
		a := strings.TrimSpace(args[i])
		if a == "" {
			continue
		}
		if skipNext {
			skipNext = false
			continue
		}

		if a == "--" {
			positionalOnly = true
			continue
		}

		if positionalOnly {
			return a, true
		}

		if strings.HasPrefix(a, "--") {
			if strings.Contains(a, "=") {
				continue
			}
			// --explain takes its value only with "="
			if valueLongFlags[strings.TrimPrefix(a, "--")] {
				skipNext = true
			}
			continue
		}

		if strings.HasPrefix(a, "-") && a != "-" {
			// -i/-f/-p take the next argument unless the value is inlined (-p=rust, -prust).
			// They may end a group of bool flags, as in -cp rust.
			if strings.ContainsRune(a, '=') {
				continue
			}
			last := a[len(a)-1]
			if strings.IndexByte("ifp", last) >= 0 && strings.Trim(a[1:len(a)-1], "cCvq") == "" {
				skipNext = true
			}
			continue
		}

		return a, true
	}

	return "", false
}
