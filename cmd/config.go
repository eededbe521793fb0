/**************************************************************************************************
** Configuration and environment management for the import-grouper CLI.
** Handles logger configuration, environment variable loading, and global configuration
** state.
**************************************************************************************************/

package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/majorfi/import-grouper/pkg/classify"
	"github.com/majorfi/import-grouper/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Global configuration variables
var editedSuffix string
var includePattern string
var extensions string
var withFingerprint bool
var cacheDB string
var nearDistance int

/**************************************************************************************************
** Configures the logger based on environment variables. Sets up the log level and format
** according to LOG_LEVEL and LOG_FORMAT environment variables.
**
** @return *logrus.Logger - Configured logger instance
**************************************************************************************************/
func configureLogger() *logrus.Logger {
	logger := logrus.New()

	// Set log level from environment variable
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if parsedLevel, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(parsedLevel)
		} else {
			logger.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", level)
			logger.SetLevel(logrus.InfoLevel)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	// Set log format from environment variable
	if format := os.Getenv("LOG_FORMAT"); format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
			FullTimestamp:    false,
			TimestampFormat:  time.RFC3339,
		})
	}

	return logger
}

/**************************************************************************************************
** Loads environment variables and command-line flags, with flags taking precedence over env
** variables.
**
** @return *logrus.Logger - Configured logger instance
**************************************************************************************************/
func loadEnv() *logrus.Logger {
	_ = godotenv.Load()
	logger := configureLogger()
	if editedSuffix == "" {
		editedSuffix = os.Getenv("EDITED_SUFFIX")
	}
	if editedSuffix == "" {
		editedSuffix = classify.DefaultEditedSuffix
	}
	if includePattern == "" {
		includePattern = os.Getenv("INCLUDE")
	}
	if cacheDB == "" {
		cacheDB = os.Getenv("CACHE_DB")
	}
	if extensions == "" {
		extensions = os.Getenv("EXTENSIONS")
	}
	if extensions == "" {
		extensions = utils.DefaultMediaExtensionsString
	}
	return logger
}
