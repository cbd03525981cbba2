// Command hbnb is the HBNB console. With no arguments it reads commands from
// standard input; see "hbnb --help" for subcommands.
package main

import "github.com/mesh-intelligence/hbnb/internal/cli"

func main() {
	cli.Execute()
}
