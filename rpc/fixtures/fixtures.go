// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test scaffolding
package fixtures

import (
	"fmt"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

const (
	dir = "testing"

	// LogCategory - the default test log category
	LogCategory = "testing"
)

// SetupTestLogger - direct logging to a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// MakeKeyPair - a throwaway self-signed certificate and key in PEM form
func MakeKeyPair(name string) (certificate string, key string, err error) {
	validUntil := time.Now().Add(24 * time.Hour)
	certificateBytes, keyBytes, err := certgen.NewTLSCertPair("testing: "+name, validUntil, false, nil)
	if nil != err {
		return "", "", err
	}
	return string(certificateBytes), string(keyBytes), nil
}
