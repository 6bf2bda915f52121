package main

import (
	"fmt"

	"github.com/zegri1/project-to-xml/internal/cli"
	"github.com/zegri1/project-to-xml/internal/utils"
)

// main is the entry point for the project-to-xml command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(loggerInstance); applicationExecutionError != nil {
		loggerInstance.Fatal("Error: " + applicationExecutionError.Error())
	}
}
