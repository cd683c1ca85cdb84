// cubectl - CLI for driving and stress-testing a concurrent cube.
package main

import (
	"github.com/SeamusWaldron/concurrentcube/internal/cli"
)

func main() {
	cli.Execute()
}
