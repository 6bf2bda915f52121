package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	configurationType             = "json"
	warningLoadFailedFormat       = "failed to load configuration from %s: %v"
	messageLoadedConfiguration    = "loaded configuration from: %s"
	messageUsingDefaults          = "using default configuration"
	messageProjectConfiguration   = "updated configuration from project: %s"
	errorConfigurationIsDirectory = "configuration path %s is a directory"
)

// LoadOptions controls how the run configuration is discovered.
type LoadOptions struct {
	// WorkingDirectory anchors relative explicit paths and the conventional
	// override file search. Defaults to the process working directory.
	WorkingDirectory string
	// ExplicitFilePath, when set, names the override file to load instead of
	// searching for the conventional file.
	ExplicitFilePath string
	// Logger receives warnings about unreadable or malformed override files.
	Logger *zap.Logger
}

// LoadConfiguration resolves the run configuration: built-in defaults overlaid
// with the explicit override file or, absent one, the conventional override
// file in the working directory. Override problems are downgraded to warnings
// and leave the defaults in place; this function never fails.
func LoadConfiguration(options LoadOptions) Configuration {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		if currentDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
			workingDirectory = currentDirectory
		}
	}

	configuration := DefaultConfiguration()

	candidatePath := resolveOverridePath(workingDirectory, options.ExplicitFilePath)
	if candidatePath == "" {
		logger.Info(messageUsingDefaults)
		return configuration
	}

	override, overrideFound, loadError := loadConfigurationFromPath(candidatePath)
	if loadError != nil {
		logger.Warn(fmt.Sprintf(warningLoadFailedFormat, candidatePath, loadError))
		return configuration
	}
	if !overrideFound {
		logger.Info(messageUsingDefaults)
		return configuration
	}

	logger.Info(fmt.Sprintf(messageLoadedConfiguration, candidatePath))
	return configuration.Merge(override)
}

// MergeProjectConfiguration overlays the conventional override file found
// directly under rootPath, returning a new configuration value. Problems with
// the project file are downgraded to warnings.
func MergeProjectConfiguration(configuration Configuration, rootPath string, logger *zap.Logger) Configuration {
	if logger == nil {
		logger = zap.NewNop()
	}
	projectConfigPath := filepath.Join(rootPath, ConfigFileName)
	override, overrideFound, loadError := loadConfigurationFromPath(projectConfigPath)
	if loadError != nil {
		logger.Warn(fmt.Sprintf(warningLoadFailedFormat, projectConfigPath, loadError))
		return configuration
	}
	if !overrideFound {
		return configuration
	}
	logger.Info(fmt.Sprintf(messageProjectConfiguration, projectConfigPath))
	return configuration.Merge(override)
}

// resolveOverridePath picks the override file path to try: the explicit path
// when given, otherwise the conventional file in the working directory.
func resolveOverridePath(workingDirectory, explicitPath string) string {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath
		}
		if workingDirectory == "" {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	if workingDirectory == "" {
		return ""
	}
	return filepath.Join(workingDirectory, ConfigFileName)
}

// loadConfigurationFromPath reads and decodes one JSON override file.
// A missing file is not an error; it is reported through the found flag.
func loadConfigurationFromPath(path string) (Configuration, bool, error) {
	fileInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return Configuration{}, false, nil
		}
		return Configuration{}, false, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if fileInformation.IsDir() {
		return Configuration{}, false, fmt.Errorf(errorConfigurationIsDirectory, path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType(configurationType)
	if readError := reader.ReadInConfig(); readError != nil {
		return Configuration{}, false, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var override Configuration
	if decodeError := reader.Unmarshal(&override); decodeError != nil {
		return Configuration{}, false, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return override, true, nil
}
