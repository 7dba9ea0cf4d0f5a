package main

import "github.com/curaious/taskhive/cmd"

func main() {
	cmd.Execute()
}
