package main

import "bom-merger/cmd"

func main() {
	cmd.Execute()
}
