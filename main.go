// main is the entry point for the nestscore CLI.
package main

import (
	"github.com/huangsam/nestscore/cmd"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/internal/iostore"
)

func main() {
	defer iostore.CloseStores()

	if err := cmd.Execute(); err != nil {
		if stopErr := cmd.StopProfiling(); stopErr != nil {
			contract.LogWarn("Cannot stop profiling", stopErr)
		}
		iostore.CloseStores()
		contract.LogFatal("Cannot run command", err)
	}

	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Cannot stop profiling", err)
	}
}
