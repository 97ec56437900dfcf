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
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/blinklabs-io/goiost/spv"
	"gopkg.in/yaml.v3"
)

// LoadConfig overlays the YAML file at path onto base. An empty path
// returns base unchanged
func LoadConfig(path string, base spv.Config) (spv.Config, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data, base)
}

func ParseConfig(data []byte, base spv.Config) (spv.Config, error) {
	config := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return base, err
	}
	return config, nil
}

// NewLogger returns a text logger writing to w at the named level
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level: %s", level)
	}
	return slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}),
	), nil
}
