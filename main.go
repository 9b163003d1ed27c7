package main

import "github.com/zjrosen/carillon/cmd"

func main() {
	cmd.Execute()
}
