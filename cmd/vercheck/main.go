package main

import (
	"github.com/NVIDIA/version-checker/pkg/cli"
)

func main() {
	cli.Execute()
}
