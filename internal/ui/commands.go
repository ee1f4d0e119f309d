// internal/ui/commands.go
package ui

import (
	"fmt"
	"strings"
)

// ColonVerb is a recognized command-line verb
type ColonVerb int

const (
	VerbNone ColonVerb = iota
	VerbQuit
	VerbOpen       // :open <path>           sqlite file
	VerbMySQL      // :mysql <dsn>
	VerbMariaDB    // :mariadb <dsn>
	VerbExec       // :exec [sql]            run arg, or statement at cursor
	VerbClear      // :clear                 leave schema context
	VerbDisconnect // :disconnect [target]   close active or named connection
	VerbRefresh    // :refresh               refetch the viewer's table
	VerbHistory    // :history [substring]
	VerbHelp       // :help
)

// ColonCommand is a parsed command line
type ColonCommand struct {
	Verb ColonVerb
	Arg  string
}

// ParseColon parses the text typed after ':'. An empty line is a no-op;
// an unknown verb is an error naming the verb.
func ParseColon(text string) (ColonCommand, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ColonCommand{}, nil
	}

	verb, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "q", "quit":
		return ColonCommand{Verb: VerbQuit}, nil
	case "open":
		if arg == "" {
			return ColonCommand{}, fmt.Errorf("open needs a file path")
		}
		return ColonCommand{Verb: VerbOpen, Arg: arg}, nil
	case "mysql":
		if arg == "" {
			return ColonCommand{}, fmt.Errorf("mysql needs a connection string")
		}
		return ColonCommand{Verb: VerbMySQL, Arg: arg}, nil
	case "mariadb":
		if arg == "" {
			return ColonCommand{}, fmt.Errorf("mariadb needs a connection string")
		}
		return ColonCommand{Verb: VerbMariaDB, Arg: arg}, nil
	case "exec", "execute":
		return ColonCommand{Verb: VerbExec, Arg: arg}, nil
	case "clear":
		return ColonCommand{Verb: VerbClear}, nil
	case "disconnect", "close":
		return ColonCommand{Verb: VerbDisconnect, Arg: arg}, nil
	case "refresh":
		return ColonCommand{Verb: VerbRefresh}, nil
	case "history":
		return ColonCommand{Verb: VerbHistory, Arg: arg}, nil
	case "help":
		return ColonCommand{Verb: VerbHelp}, nil
	default:
		return ColonCommand{}, fmt.Errorf("not a command: %s", verb)
	}
}
