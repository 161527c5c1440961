package main

import "github.com/paranoixa/paranoixa/build-tools/cmd"

func main() {
	cmd.Execute()
}
