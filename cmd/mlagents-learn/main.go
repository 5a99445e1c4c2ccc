package main

import "github.com/Edlina007/ml-agents/cli"

func main() {
	cli.Execute()
}
