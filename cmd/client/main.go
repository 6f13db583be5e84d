package main

import "parsedash/cmd/client/cmd"

func main() {
	cmd.Execute()
}
