// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
	"github.com/kexa-network/kexa/p2p"
)

// logRotator writes logged events to a rotating log file in the node's
// data directory in addition to stdout, the same pair of sinks the
// reference btcd-style nodes wire up in their log.go.
var logRotator *rotator.Rotator

// backendLog is the logging backend every subsystem logger is spawned
// from, matching btclog's subsystem-tag convention (NODE, PEER).
var backendLog = btclog.NewBackend(logWriter{})

// logWriter sends logged bytes to both stdout and the rotator, once
// initialized.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

// log is the NODE subsystem logger main.go uses directly. peerLog is held
// onto separately (rather than re-requested from backendLog) so
// setLogLevel adjusts the very same instance p2p holds a reference to.
var (
	log     = backendLog.Logger("NODE")
	peerLog = backendLog.Logger("PEER")
)

// initLogRotator opens (creating if necessary) a rotating log file under
// dataDir/logs so node output survives process restarts.
func initLogRotator(dataDir string) error {
	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return err
	}
	r, err := rotator.New(filepath.Join(logDir, "kexanode.log"), 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

// useLoggers wires every subsystem package's logger to backendLog, matching
// p2p's btclog.UseLogger hook.
func useLoggers() {
	p2p.UseLogger(peerLog)
}

// setLogLevel sets the logging level for every known subsystem; level is
// one of the names btclog.LevelFromString understands ("debug", "info",
// "warn", "error", ...).
func setLogLevel(level string) {
	l, ok := btclog.LevelFromString(level)
	if !ok {
		l = btclog.LevelInfo
	}
	log.SetLevel(l)
	peerLog.SetLevel(l)
}
