package console

import (
	"fmt"
	"sort"
	"strings"
)

// usage holds the help text for each verb.
var usage = map[string]string{
	VerbCreate:  "create <class>\n        Create an instance of <class>, save it and print its id.",
	VerbShow:    "show <class> <id>\n        Print the string form of an instance.",
	VerbDestroy: "destroy <class> <id>\n        Delete an instance and save the change.",
	VerbAll:     "all [<class>]\n        Print every instance, or every instance of <class>.",
	VerbUpdate:  "update <class> <id> <attribute> \"<value>\"\n        Set one attribute and save the change.",
	VerbCount:   "count <class>\n        Print the number of instances of <class>.",
	VerbHelp:    "help [<command>]\n        List commands or describe one.",
	VerbQuit:    "quit\n        Exit the program.",
	VerbEOF:     "EOF\n        Exit the program at end of input.",
}

func (c *Console) help(args []string) error {
	if len(args) > 0 {
		text, ok := usage[args[0]]
		if !ok {
			fmt.Fprintf(c.out, "*** No help on %s\n", args[0])
			return nil
		}
		fmt.Fprintln(c.out, text)
		return nil
	}

	verbs := make([]string, 0, len(usage))
	for v := range usage {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)

	const header = "Documented commands (type help <topic>):"
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, header)
	fmt.Fprintln(c.out, strings.Repeat("=", len(header)))
	fmt.Fprintln(c.out, strings.Join(verbs, "  "))
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Objects can also be addressed as <class>.all(), <class>.count(),")
	fmt.Fprintln(c.out, "<class>.show(<id>), <class>.destroy(<id>) and")
	fmt.Fprintln(c.out, "<class>.update(<id>, <attribute>, <value>).")
	return nil
}
