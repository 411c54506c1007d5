// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"

	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/rpc/listeners"
	"github.com/solvernet/solverd/util"
)

// replace certificate and key file names by their PEM content
//
// the listeners take the PEM data itself so a broken file fails here,
// before any listener starts
func loadCertificates(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration) error {

	items := []*string{
		&rpcConfiguration.Certificate,
		&rpcConfiguration.PrivateKey,
	}
	if 0 != len(httpsConfiguration.Listen) {
		items = append(items, &httpsConfiguration.Certificate, &httpsConfiguration.PrivateKey)
	}

	for _, item := range items {
		data, err := ioutil.ReadFile(*item)
		if nil != err {
			return err
		}
		*item = string(data)
	}

	return nil
}

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) error {

	if util.EnsureFileExists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "solverd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if err != nil {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); err != nil {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}
