// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/logdb"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/thor"
)

func initLogger(w io.Writer, verbosity int, jsonLogs bool) *slog.LevelVar {
	var level slog.LevelVar
	level.Set(log.FromVerbosity(verbosity))

	var handler slog.Handler
	if jsonLogs {
		handler = log.JSONHandlerWithLevel(w, &level)
	} else {
		handler = log.TerminalHandler(w, &level)
	}
	log.SetDefault(log.NewLogger(handler))
	return &level
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	home := homeDir()
	if home == "" {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "org.vechain.stakeledger")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "org.vechain.stakeledger")
	default:
		return filepath.Join(home, ".org.vechain.stakeledger")
	}
}

// makeInstanceDir returns a directory under the data dir unique to the genesis.
func makeInstanceDir(ctx *cli.Context, genesisID thor.Bytes32) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", genesisID.Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

type databases struct {
	main *lvldb.LevelDB
	logs logdb.LogDB
}

func (d *databases) Close() {
	if d.logs != nil {
		log.Info("closing log database...")
		if err := d.logs.Close(); err != nil {
			log.Warn("failed to close log database", "err", err)
		}
	}
	if d.main != nil {
		log.Info("closing main database...")
		if err := d.main.Close(); err != nil {
			log.Warn("failed to close main database", "err", err)
		}
	}
}

func openDatabases(instanceDir string) (*databases, error) {
	dbs := &databases{}
	var err error
	if instanceDir == "" {
		if dbs.main, err = lvldb.NewMem(); err != nil {
			return nil, errors.Wrap(err, "open main database")
		}
		if dbs.logs, err = logdb.NewMem(); err != nil {
			dbs.Close()
			return nil, errors.Wrap(err, "open log database")
		}
		return dbs, nil
	}

	dir := filepath.Join(instanceDir, "main.db")
	if dbs.main, err = lvldb.New(dir, lvldb.Options{CacheSize: 64, OpenFilesCacheCapacity: 64}); err != nil {
		return nil, errors.Wrapf(err, "open main database [%v]", dir)
	}
	dir = filepath.Join(instanceDir, "logs.db")
	if dbs.logs, err = logdb.New(dir); err != nil {
		dbs.Close()
		return nil, errors.Wrapf(err, "open log database [%v]", dir)
	}
	return dbs, nil
}
