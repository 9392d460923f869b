package main

import "github.com/cameronsjo/capstan/internal/cmd"

func main() {
	cmd.Execute()
}
