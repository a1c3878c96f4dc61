/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package main

import (
	"github.com/anothersoft/bns-plus/cmd/bns-cli/cmd"
)

func main() {
	cmd.Execute()
}
