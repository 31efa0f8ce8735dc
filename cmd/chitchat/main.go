package main

import (
	"os"

	"github.com/roudra323/Chitchat-DApp-Project/cmd/chitchat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
