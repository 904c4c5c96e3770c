package config

import (
	"os"
	"path/filepath"
)

// Paths is the single source of truth for the application's directories.
type Paths struct {
	DataDir     string
	InvoicesDir string
	ReportsDir  string
	LogsDir     string
}

// NewPaths derives the directory layout under the configured data dir.
func NewPaths(cfg PathsConfig) *Paths {
	return &Paths{
		DataDir:     cfg.DataDir,
		InvoicesDir: filepath.Join(cfg.DataDir, "invoices"),
		ReportsDir:  filepath.Join(cfg.DataDir, "reports"),
		LogsDir:     filepath.Join(cfg.DataDir, "logs"),
	}
}

// EnsureDirectories creates every application directory that is missing.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.InvoicesDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// GetReportPath returns the full path of a report file.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path of a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
