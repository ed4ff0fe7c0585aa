package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the file system locations used by one run.
// Unlike installed services, metadash works relative to the working
// directory: the dataset and the report directory come from configuration.
type Paths struct {
	DataFile  string
	OutputDir string
	LogsDir   string
}

// ResolvePaths turns the configured locations into absolute paths
func ResolvePaths(cfg *Config) (*Paths, error) {
	dataFile, err := filepath.Abs(cfg.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dataset path: %w", err)
	}

	outputDir := cfg.Report.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	outputDir, err = filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}

	logsDir := "logs"
	if cfg.Logging.FilePath != "" {
		logsDir = filepath.Dir(cfg.Logging.FilePath)
	}
	logsDir, err = filepath.Abs(logsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve logs directory: %w", err)
	}

	return &Paths{
		DataFile:  dataFile,
		OutputDir: outputDir,
		LogsDir:   logsDir,
	}, nil
}

// EnsureOutputDir creates the report directory if it doesn't exist
func (p *Paths) EnsureOutputDir() error {
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", p.OutputDir, err)
	}
	slog.Default().Debug("Ensured directory exists", slog.String("directory", p.OutputDir))
	return nil
}

// ArtifactPath returns the location of a named report artifact
func (p *Paths) ArtifactPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// LogPath returns the location of a log file
func (p *Paths) LogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved locations at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Path resolution summary",
		slog.Group("paths",
			slog.String("data_file", p.DataFile),
			slog.String("output_dir", p.OutputDir),
			slog.String("logs_dir", p.LogsDir),
		))
}
