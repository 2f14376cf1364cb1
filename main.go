package main

import "github.com/skillbridge/skillbridge/cmd"

func main() {
	cmd.Execute()
}
