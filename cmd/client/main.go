package main

import "windkey/cmd/client/cmd"

func main() {
	cmd.Execute()
}
