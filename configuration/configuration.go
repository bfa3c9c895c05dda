// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "rgb"

	defaultLogDirectory = "log"
	defaultLogFile      = "rgb-cli.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultCacheExpiry = 600 // seconds
	defaultRate        = 5.0 // resolutions per second
	defaultBurst       = 10
	defaultMaxDelay    = 30 // seconds
)

// DatabaseType - location of the stash database
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// ResolverType - limits on transaction resolution
type ResolverType struct {
	CacheExpiry int     `gluamapper:"cache_expiry" json:"cache_expiry"`
	Rate        float64 `gluamapper:"rate" json:"rate"`
	Burst       int     `gluamapper:"burst" json:"burst"`
	MaxDelay    int     `gluamapper:"max_delay" json:"max_delay"`
}

// Expiry - cache expiry as a duration
func (r ResolverType) Expiry() time.Duration {
	return time.Duration(r.CacheExpiry) * time.Second
}

// Delay - longest wait for the rate limiter as a duration
func (r ResolverType) Delay() time.Duration {
	return time.Duration(r.MaxDelay) * time.Second
}

// Configuration - everything read from the configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Resolver      ResolverType         `gluamapper:"resolver" json:"resolver"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read decode and verify the configuration
//
// relative paths are taken from the data directory, which must exist;
// the database and log directories are created
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Resolver: ResolverType{
			CacheExpiry: defaultCacheExpiry,
			Rate:        defaultRate,
			Burst:       defaultBurst,
			MaxDelay:    defaultMaxDelay,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	if options.Resolver.Rate <= 0 || options.Resolver.Burst <= 0 || options.Resolver.CacheExpiry < 0 || options.Resolver.MaxDelay < 0 {
		return nil, fmt.Errorf("resolver: rate: %g  burst: %d  cache_expiry: %d  max_delay: %d are not all valid",
			options.Resolver.Rate, options.Resolver.Burst, options.Resolver.CacheExpiry, options.Resolver.MaxDelay)
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = ensureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path separator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = ensureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	return options, nil
}

// ensureAbsolute - prefix a relative path with the directory
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
