package main

import "github.com/RyanBlaney/chord-scout/cmd"

func main() {
	cmd.Execute()
}
