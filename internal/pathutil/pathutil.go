// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"

	"github.com/ayoisaiah/presence/store"
)

// Paths holds all application path configurations.
type Paths struct {
	appDir         string
	configFileName string
	dbBaseName     string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dataDir        string
	logFilePath    string
}

var (
	paths   *Paths
	initErr error
	once    sync.Once
)

// Initialize resolves the application paths. Only the first call does any
// work; later calls return the same result.
func Initialize() error {
	once.Do(func() {
		p := &Paths{
			appDir:         "presence",
			configFileName: "config.yml",
			dbBaseName:     "presence",
			logFileName:    "presence.log",
		}

		p.applyEnvironmentOverrides()

		initErr = p.computePaths()
		if initErr == nil {
			paths = p
		}
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return Must().appDir
}

func ConfigFilePath() string {
	return Must().configFilePath
}

// DBFilePath returns the default event log location for the given driver.
func DBFilePath(driver string) string {
	p := Must()

	ext := ".db"
	if driver == store.DriverSQLite {
		ext = ".sqlite"
	}

	return filepath.Join(p.dataDir, p.dbBaseName+ext)
}

func LogFilePath() string {
	return Must().logFilePath
}

// applyEnvironmentOverrides keeps separate files per PRESENCE_ENV so that a
// development run doesn't touch the real event log.
func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv("PRESENCE_ENV"))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbBaseName = fmt.Sprintf("presence_%s", env)
		p.logFileName = fmt.Sprintf("presence_%s.log", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.appDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return err
	}

	p.dataDir, err = xdg.DataFile(p.appDir)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(p.dataDir, 0o750); err != nil {
		return err
	}

	p.logFilePath = filepath.Join(p.dataDir, "log", p.logFileName)

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}
