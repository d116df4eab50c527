package main

import "github.com/serenelab/serene/cmd"

func main() {
	cmd.Execute()
}
