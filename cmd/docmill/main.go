package main

import "github.com/docmill/docmill/cmd/docmill/cmd"

func main() {
	cmd.Execute()
}
