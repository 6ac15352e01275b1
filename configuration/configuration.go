// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/cashlink/chain"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/fee"
	"github.com/bitmark-inc/cashlink/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultDatabaseSuffix = ".leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "cashlink.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	// seconds
	defaultRetryDelay       = 5
	defaultConsensusTimeout = 60
	defaultCacheExpiry      = 600

	defaultRelayRate  = 10
	defaultRelayBurst = 5
)

// how the link reaches the network
const (
	ModeFull = "full"
	ModeNano = "nano"
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// a fresh map each time, the parsed file is merged into it
func defaultLogLevels() LoglevelMap {
	return LoglevelMap{
		"main":            "info",
		logger.DefaultTag: "critical",
	}
}

// FeeType - fee policy, rate is in parts per million
type FeeType struct {
	Rate    uint64 `gluamapper:"rate" json:"rate"`
	Minimum uint64 `gluamapper:"minimum" json:"minimum"`
	Maximum uint64 `gluamapper:"maximum" json:"maximum"`
}

// RelayType - limits on transactions relayed for light clients
type RelayType struct {
	Rate  float64 `gluamapper:"rate" json:"rate"`
	Burst int     `gluamapper:"burst" json:"burst"`
}

// Configuration - everything read from the configuration file
//
// durations are in seconds
type Configuration struct {
	DataDirectory    string               `gluamapper:"data_directory" json:"data_directory"`
	Chain            string               `gluamapper:"chain" json:"chain"`
	Mode             string               `gluamapper:"mode" json:"mode"`
	Database         string               `gluamapper:"database" json:"database"`
	RetryDelay       int                  `gluamapper:"retry_delay" json:"retry_delay"`
	ConsensusTimeout int                  `gluamapper:"consensus_timeout" json:"consensus_timeout"`
	CacheExpiry      int                  `gluamapper:"cache_expiry" json:"cache_expiry"`
	Fee              FeeType              `gluamapper:"fee" json:"fee"`
	Relay            RelayType            `gluamapper:"relay" json:"relay"`
	Logging          logger.Configuration `gluamapper:"logging" json:"logging"`
}

// Get - read, decode and verify the configuration
func Get(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory:    defaultDataDirectory,
		Chain:            chain.Local,
		Mode:             ModeFull,
		RetryDelay:       defaultRetryDelay,
		ConsensusTimeout: defaultConsensusTimeout,
		CacheExpiry:      defaultCacheExpiry,

		Fee: FeeType{
			Rate:    fee.DefaultRate,
			Minimum: fee.DefaultMinimum,
			Maximum: fee.DefaultMaximum,
		},

		Relay: RelayType{
			Rate:  defaultRelayRate,
			Burst: defaultRelayBurst,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels(),
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q: %w", options.Chain, fault.ErrInvalidChain)
	}

	options.Mode = strings.ToLower(options.Mode)
	switch options.Mode {
	case ModeFull, ModeNano:
	default:
		return nil, fmt.Errorf("mode: %q: %w", options.Mode, fault.ErrInvalidConfiguration)
	}

	if options.RetryDelay <= 0 || options.ConsensusTimeout <= 0 || options.CacheExpiry <= 0 {
		return nil, fmt.Errorf("durations must be positive: %w", fault.ErrInvalidConfiguration)
	}

	if err := options.Fees().Validate(); nil != err {
		return nil, err
	}

	if "" == options.Database {
		options.Database = options.Chain + defaultDatabaseSuffix
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory: %w", options.DataDirectory, fault.ErrInvalidConfiguration)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = util.EnsureAbsolute(dataDirectory, options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if !util.IsDirectory(options.DataDirectory) {
		return nil, fmt.Errorf("path: %q is not a directory: %w", options.DataDirectory, fault.ErrInvalidConfiguration)
	}

	// fail if any of these are not simple file names
	for _, f := range []string{options.Database, options.Logging.File} {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("file: %q is not plain name: %w", f, fault.ErrInvalidConfiguration)
		}
	}

	options.Database = util.EnsureAbsolute(options.DataDirectory, options.Database)

	// make absolute and create directories if they do not already exist
	options.Logging.Directory = util.EnsureAbsolute(options.DataDirectory, options.Logging.Directory)
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	return options, nil
}

// Nano - true if the link talks only to a remote consensus node
func (c *Configuration) Nano() bool {
	return ModeNano == c.Mode
}

// Fees - the configured fee policy
func (c *Configuration) Fees() fee.Policy {
	return fee.Policy{
		Rate:    c.Fee.Rate,
		Minimum: c.Fee.Minimum,
		Maximum: c.Fee.Maximum,
	}
}

// RetryDelayDuration - pause between failed attempts
func (c *Configuration) RetryDelayDuration() time.Duration {
	return time.Duration(c.RetryDelay) * time.Second
}

// ConsensusTimeoutDuration - longest wait for consensus
func (c *Configuration) ConsensusTimeoutDuration() time.Duration {
	return time.Duration(c.ConsensusTimeout) * time.Second
}

// CacheExpiryDuration - lifetime of a cached account lookup
func (c *Configuration) CacheExpiryDuration() time.Duration {
	return time.Duration(c.CacheExpiry) * time.Second
}

// RelayLimit - rate limit for relayed transactions
func (c *Configuration) RelayLimit() rate.Limit {
	return rate.Limit(c.Relay.Rate)
}
