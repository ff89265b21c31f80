package main

import "github.com/dgallion1/coursegen/cmd/coursegen/cmd"

func main() {
	cmd.Execute()
}
