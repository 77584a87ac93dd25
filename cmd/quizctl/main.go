package main

import "github.com/mcoot/vocabquiz/internal/cli"

func main() {
	cli.Execute()
}
