package cmds

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	seen := make(map[*Command]bool)
	names := slices.Sorted(maps.Keys(p.commands))
	for _, name := range names {
		command := p.commands[name]
		if seen[command] {
			continue
		}
		seen[command] = true
		printCommand(name, command, 0)
	}
}

func printCommand(name string, command *Command, depth int) {
	indent := strings.Repeat("  ", depth)
	if command == nil {
		fmt.Fprintf(os.Stderr, "%s%s\n", indent, name)
		return
	}
	line := indent + name
	if len(command.Aliases) > 0 {
		line += " (" + strings.Join(command.Aliases, ", ") + ")"
	}
	if command.Description != "" {
		line += "\n" + indent + "  " + command.Description
	}
	fmt.Fprintln(os.Stderr, line)
	subnames := slices.Sorted(maps.Keys(command.Subs))
	for _, subname := range subnames {
		printCommand(subname, command.Subs[subname], depth+1)
	}
}
