package main

import (
	"github.com/berth-host/berth/cmd/berth/internal/command"
)

func main() {
	command.Execute()
}
