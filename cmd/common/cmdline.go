// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/blinklabs-io/goiost"
	"github.com/blinklabs-io/goiost/spv"
)

type GlobalFlags struct {
	Flagset    *flag.FlagSet
	ConfigFile string
	Network    string
	StoreDir   string
	LogLevel   string
	// Resolved after Parse
	Config spv.Config
	Logger *slog.Logger
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.ConfigFile,
		"config",
		"",
		"path to YAML file with committee parameters",
	)
	f.Flagset.StringVar(
		&f.Network,
		"network",
		"mainnet",
		"specifies network whose committee parameters are used",
	)
	f.Flagset.StringVar(
		&f.StoreDir,
		"store",
		"",
		"directory for the persistent epoch store (in-memory if empty)",
	)
	f.Flagset.StringVar(
		&f.LogLevel,
		"log-level",
		"info",
		"log level (debug, info, warn, error)",
	)
	return f
}

func (f *GlobalFlags) Parse() {
	if err := f.ParseArgs(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
}

// ParseArgs parses args and resolves the network, config file and logger
func (f *GlobalFlags) ParseArgs(args []string) error {
	if err := f.Flagset.Parse(args); err != nil {
		return err
	}
	network := goiost.NetworkByName(f.Network)
	if network == goiost.NetworkInvalid {
		return fmt.Errorf("invalid network specified: %s", f.Network)
	}
	config, err := LoadConfig(f.ConfigFile, network.SPVConfig())
	if err != nil {
		return err
	}
	f.Config = config
	logger, err := NewLogger(f.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	f.Logger = logger
	return nil
}
