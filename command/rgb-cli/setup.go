// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/rgbcore/configuration"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/resolver"
	"github.com/bitmark-inc/rgbcore/stash"
	"github.com/bitmark-inc/rgbcore/storage"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	log     *logger.L
	opened  bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// locate the configuration file
func (m *metadata) configurationFile() (string, error) {
	if "" != m.file {
		return m.file, nil
	}
	p := os.Getenv("XDG_CONFIG_HOME")
	if "" == p {
		return "", fmt.Errorf("XDG_CONFIG_HOME environment is not set")
	}
	return filepath.Join(p, "rgb-cli", "rgb-cli.conf"), nil
}

// open - read the configuration then start logging, storage and stash
//
// only commands that touch the stash need this
func (m *metadata) open() error {
	if m.opened {
		return nil
	}

	file, err := m.configurationFile()
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "reading config file: %s\n", file)
	}

	m.config, err = configuration.GetConfiguration(file)
	if nil != err {
		return err
	}

	if err := logger.Initialise(m.config.Logging); nil != err {
		return err
	}
	if err := fault.Initialise(); nil != err {
		logger.Finalise()
		return err
	}
	m.log = logger.New("rgb-cli")
	m.log.Infof("version: %s", version)

	if err := storage.Initialise(m.config.Database.Name, storage.ReadWrite); nil != err {
		m.log.Criticalf("storage initialise error: %s", err)
		fault.Finalise()
		logger.Finalise()
		return err
	}
	if err := stash.Initialise(); nil != err {
		m.log.Criticalf("stash initialise error: %s", err)
		storage.Finalise()
		fault.Finalise()
		logger.Finalise()
		return err
	}

	m.opened = true
	return nil
}

// close - stop in the reverse order of open
func (m *metadata) close() error {
	if !m.opened {
		return nil
	}
	m.opened = false

	err := stash.Finalise()
	storage.Finalise()
	m.log.Info("finished")
	m.log.Flush()
	fault.Finalise()
	logger.Finalise()
	return err
}

// resolver - stash transactions behind the configured limits
func (m *metadata) resolver() resolver.Resolver {
	r := m.config.Resolver
	limited := resolver.NewLimited(stash.Resolver(), rate.Limit(r.Rate), r.Burst, r.Delay())
	return resolver.NewCached(limited, r.Expiry())
}
