package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

var (
	logger = logrus.New()

	// log is the session-scoped entry every handler logs through.
	log *logrus.Entry = logrus.NewEntry(logger)
)

// ensureDirExists ensures that a directory exists, and if it isn't present, it tries to create a new one.
func ensureDirExists(path string) (bool, error) {
	// Check if the directory exists
	if _, err := os.Stat(path); err == nil {
		return true, nil
	}

	// Create the directory
	err := os.Mkdir(path, 0700)
	if err != nil {
		return false, err
	}

	return true, nil
}

// setupLogger initializes the CLI's logger (logrus). Warnings and worse
// go to the main log file, everything else to a separate debug log, so
// verbose output never crowds the user's filesystem by default.
func setupLogger(logger *logrus.Logger) (*os.File, *os.File, error) {
	// Define log file paths, based on the home directory.
	logPath := "gdoc.log"
	debugLogPath := "gdoc-debug.log"

	// Get the home directory.
	homeDirExists := true
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDirExists = false
	}

	if homeDirExists {
		gdocDir := filepath.Join(homeDir, ".gdoc-cli")

		dirExists, err := ensureDirExists(gdocDir)
		if err != nil {
			return nil, nil, err
		}

		// Get log paths based on the home directory.
		if dirExists {
			logPath = filepath.Join(gdocDir, "gdoc.log")
			debugLogPath = filepath.Join(gdocDir, "gdoc-debug.log")
		}
	}

	// Open the log file and create if it does not exist.
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	// Create a separate log file for verbose logs.
	debugLogFile, err := os.OpenFile(debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logFile.Close()
		return nil, nil, err
	}

	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(&writer.Hook{
		Writer: logFile,
		LogLevels: []logrus.Level{
			logrus.WarnLevel,
			logrus.ErrorLevel,
			logrus.FatalLevel,
			logrus.PanicLevel,
		},
	})
	logger.AddHook(&writer.Hook{
		Writer: debugLogFile,
		LogLevels: []logrus.Level{
			logrus.TraceLevel,
			logrus.DebugLevel,
			logrus.InfoLevel,
		},
	})

	log = logger.WithField("session", uuid.NewString())

	return logFile, debugLogFile, nil
}

// closeLogFiles closes the log files created by the CLI.
// closeLogFiles is meant to be used for defer calls.
func closeLogFiles(logFile, debugLogFile *os.File) {
	if err := logFile.Close(); err != nil {
		return
	}

	_ = debugLogFile.Close()
}
