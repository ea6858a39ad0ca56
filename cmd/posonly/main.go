// posonly — positional-only calling convention enforcement.
package main

import "github.com/arpegio/posonly/internal/cli"

func main() {
	cli.Execute()
}
