// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zegri1/project-to-xml/internal/analyzer"
	"github.com/zegri1/project-to-xml/internal/config"
	"github.com/zegri1/project-to-xml/internal/output"
	"github.com/zegri1/project-to-xml/internal/tokenizer"
	"github.com/zegri1/project-to-xml/internal/utils"
)

const (
	rootUse              = "project-to-xml [path]"
	rootShortDescription = "convert a project directory into XML documentation"
	rootLongDescription  = `project-to-xml walks a project directory and writes a single XML document
describing its structure and, for non-excluded files, their textual contents.
Exclusion rules come from built-in defaults overlaid with analyzer_config.json
override files; file text is embedded in CDATA literal sections.`
	rootUsageExample = `  # Analyze the current directory
  project-to-xml

  # Analyze a project and choose the output file
  project-to-xml ./myproject -o snapshot.xml

  # Use a custom configuration file and copy the result to the clipboard
  project-to-xml ./myproject -c custom_config.json --copy`

	outputFlagName          = "output"
	outputFlagShorthand     = "o"
	outputFlagDescription   = "output file path (default <path>/project_structure.xml)"
	configFlagName          = "config"
	configFlagShorthand     = "c"
	configFlagDescription   = "configuration file path"
	overviewFlagName        = "overview"
	overviewFlagDescription = "override the project overview text"
	copyFlagName            = "copy"
	copyFlagDescription     = "copy the rendered XML to the clipboard"
	tokensFlagName          = "tokens"
	tokensFlagDescription   = "annotate content entries with token counts"
	modelFlagName           = "model"
	modelFlagDescription    = "tokenizer model to use for token counting"
	versionFlagName         = "version"
	versionFlagDescription  = "display application version"
	versionTemplate         = "project-to-xml version: %s\n"

	defaultPath = "."

	successMessageFormat        = "XML file created successfully: %s\n"
	warningClipboardFormat      = "failed to copy output to clipboard: %v"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorPathMissingFormat      = "path '%s' does not exist"
	errorStatFormat             = "stat failed for '%s': %w"
	errorNotDirectoryFormat     = "path '%s' is not a directory"
)

// runOptions stores the flag values for a single invocation.
type runOptions struct {
	outputPath       string
	configPath       string
	overviewOverride string
	copyEnabled      bool
	tokensEnabled    bool
	tokenizerModel   string
}

// Execute runs the project-to-xml application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var showVersion bool
	var options runOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			rootArgument := defaultPath
			if len(arguments) > 0 {
				rootArgument = arguments[0]
			}
			return runAnalysis(command, logger, rootArgument, options)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	rootCommand.Flags().StringVarP(&options.configPath, configFlagName, configFlagShorthand, "", configFlagDescription)
	rootCommand.Flags().StringVar(&options.overviewOverride, overviewFlagName, "", overviewFlagDescription)
	rootCommand.Flags().BoolVar(&options.copyEnabled, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenizerModel, modelFlagName, tokenizer.DefaultModelName, modelFlagDescription)
	return rootCommand
}

// runAnalysis performs one full run: configuration resolution, the two
// traversal passes, content population, and document assembly.
func runAnalysis(command *cobra.Command, logger *zap.Logger, rootArgument string, options runOptions) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	configuration := config.LoadConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
		Logger:           logger,
	})

	absoluteRootPath, rootPathError := resolveRootDirectory(rootArgument)
	if rootPathError != nil {
		return rootPathError
	}

	configuration = config.MergeProjectConfiguration(configuration, absoluteRootPath, logger)
	if options.overviewOverride != "" {
		configuration = configuration.Merge(config.Configuration{ProjectOverview: options.overviewOverride})
	}

	var tokenCounter tokenizer.Counter
	if options.tokensEnabled {
		createdCounter, counterError := tokenizer.NewCounter(options.tokenizerModel)
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
	}

	filesystem := afero.NewOsFs()
	projectAnalyzer := analyzer.New(filesystem, configuration)

	structureNodes, structureError := projectAnalyzer.BuildStructure(absoluteRootPath)
	if structureError != nil {
		return structureError
	}
	fileEntries, collectError := projectAnalyzer.CollectFiles(absoluteRootPath)
	if collectError != nil {
		return collectError
	}
	projectAnalyzer.PopulateContents(fileEntries, absoluteRootPath, tokenCounter)

	document := output.BuildDocument(absoluteRootPath, configuration.ProjectOverview, structureNodes, fileEntries)
	resolvedOutputPath := output.ResolveOutputPath(absoluteRootPath, configuration.DefaultOutputName, options.outputPath)
	renderedText, writeError := output.WriteDocument(filesystem, document, resolvedOutputPath)
	if writeError != nil {
		return writeError
	}

	if options.copyEnabled {
		if clipboardError := clipboard.WriteAll(renderedText); clipboardError != nil {
			logger.Warn(fmt.Sprintf(warningClipboardFormat, clipboardError))
		}
	}

	fmt.Fprintf(command.OutOrStdout(), successMessageFormat, resolvedOutputPath)
	return nil
}

// resolveRootDirectory converts the root argument to a clean absolute path
// and verifies that it names an existing directory.
func resolveRootDirectory(rootArgument string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(rootArgument)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, rootArgument, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	fileInformation, statError := os.Stat(cleanPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorPathMissingFormat, rootArgument)
		}
		return "", fmt.Errorf(errorStatFormat, rootArgument, statError)
	}
	if !fileInformation.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, rootArgument)
	}
	return cleanPath, nil
}
