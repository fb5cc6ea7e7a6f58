package commands

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// sessionExcluded lists commands that make no sense inside a session
var sessionExcluded = map[string]bool{
	"interactive": true,
	"completion":  true,
	"help":        true,
	"serve":       true,
}

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start a session that loads the config and store once and runs many commands",
		Long: `Start an interactive session. The configuration, OAuth token and snapshot store are set up once
and shared by every command until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("\nShift cockpit session (unit %s, %s store)\n", app.Cfg.UnitID, app.Cfg.Store)
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			commands := sessionCommands(cmd.Parent())
			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}

				parts, err := splitCommandLine(scanner.Text())
				if err != nil {
					fmt.Printf("❌ %v\n\n", err)
					continue
				}
				if len(parts) == 0 {
					continue
				}

				name, cmdArgs := parts[0], parts[1:]
				switch name {
				case "exit", "quit":
					fmt.Println("👋 Goodbye!")
					return nil
				case "help":
					printSessionHelp(commands)
					continue
				}

				target, ok := commands[name]
				if !ok {
					fmt.Printf("❌ Unknown command: %s (type 'help' for available commands)\n\n", name)
					continue
				}

				if err := runInSession(target, cmdArgs); err != nil {
					fmt.Printf("❌ Error: %v\n\n", err)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			return nil
		},
	}
}

// sessionCommands indexes the root's subcommands that can run inside a session
func sessionCommands(root *cobra.Command) map[string]*cobra.Command {
	commands := make(map[string]*cobra.Command)
	for _, sub := range root.Commands() {
		if !sessionExcluded[sub.Name()] {
			commands[sub.Name()] = sub
		}
	}
	return commands
}

// runInSession runs a command's RunE directly so PersistentPreRunE does not set the app up again.
// Flags are reset to their defaults first.
func runInSession(target *cobra.Command, args []string) error {
	target.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})

	if err := target.ParseFlags(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	args = target.Flags().Args()

	if target.Args != nil {
		if err := target.Args(target, args); err != nil {
			return err
		}
	}

	if target.RunE != nil {
		return target.RunE(target, args)
	}
	if target.Run != nil {
		target.Run(target, args)
	}
	return nil
}

func printSessionHelp(commands map[string]*cobra.Command) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nAvailable commands:")
	for _, name := range names {
		fmt.Printf("  %-70s %s\n", commands[name].Use, commands[name].Short)
	}
	fmt.Printf("\n  %-70s %s\n", "help", "Show this help message")
	fmt.Printf("  %-70s %s\n\n", "exit, quit", "Exit the interactive session")
}

// splitCommandLine splits a line into arguments. Single or double quotes group words
// and a backslash escapes the next rune.
func splitCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var quote rune
	inArg, escaped := false, false

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped, inArg = true, true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote, inArg = r, true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", quote)
	}
	if escaped {
		return nil, fmt.Errorf("trailing backslash")
	}
	if inArg {
		args = append(args, current.String())
	}

	return args, nil
}
