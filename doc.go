/*
Package fractree is a procedural fractal tree generator, which expands a small set of
numeric parameters (trunk length, branch angle, length and thickness decay, recursion
depth, color palette, randomness) into an ordered list of branch segments and renders
them into a raster image.

The package provides a command line interface, supporting a flag for each tree parameter.
To check the supported commands type:

	$ fractree --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/esimov/fractree"
	)

	func main() {
		p := &fractree.Processor{
			Params: fractree.DefaultParams(),
		}

		out, _ := os.Create("tree.png")
		defer out.Close()

		if err := p.Process(out); err != nil {
			fmt.Printf("Error rendering the tree: %s", err.Error())
		}
	}
*/
package fractree
