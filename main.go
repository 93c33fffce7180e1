package main

import "github.com/nextlevelbuilder/sessgrep/cmd"

func main() {
	cmd.Execute()
}
