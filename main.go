package main

import "github.com/xenexes/bragbuddy/cmd"

func main() {
	cmd.Execute()
}
