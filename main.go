package main

import (
	"github.com/cvelens/cvelens/cmd"
)

func main() {
	cmd.Execute()
}
