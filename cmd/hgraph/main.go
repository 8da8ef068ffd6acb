// Command hgraph declares typed graph schemas and checks record streams
// against them.
package main

import "github.com/mesh-intelligence/hgraph/internal/cli"

func main() {
	cli.Execute()
}
