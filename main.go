package main

import (
	"fmt"

	"github.com/Jjschwartz/gym-cyber-attack/benchmarks"
)

func main() {
	rootCommand := benchmarks.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
