package main

import (
	"github.com/octo47/cgtcalc/cmd"
)

func main() {
	cmd.Execute()
}
