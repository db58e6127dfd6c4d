package main

import "github.com/agentic-research/treeslice/cmd"

func main() {
	cmd.Execute()
}
