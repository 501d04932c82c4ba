// Command chests inspects and configures the storage containers of a save.
package main

import "github.com/mesh-intelligence/chests/internal/cli"

func main() {
	cli.Execute()
}
