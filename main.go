package main

import (
	"github.com/yeisme/jdoccov/cmd"
)

func main() {
	cmd.Execute()
}
