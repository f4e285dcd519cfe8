package main

import "shelfmerge/cmd/shelfmerge/cmd"

func main() {
	cmd.Execute()
}
