package main

import "voiture/cmd"

func main() {
	cmd.Execute()
}
