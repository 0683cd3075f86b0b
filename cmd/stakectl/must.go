// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/paideiadao/paideia-contracts/co"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/journal"
	"github.com/paideiadao/paideia-contracts/log"
	"github.com/paideiadao/paideia-contracts/lvldb"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// maxClockOffset is the tolerated drift before warning: emissions are gated
// on wall clock time.
const maxClockOffset = 5 * time.Second

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, &level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
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
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.paideia.staking")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.paideia.staking")
		default:
			return filepath.Join(home, ".org.paideia.staking")
		}
	}
	return ""
}

func makeInstanceDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	instanceDir := filepath.Join(dataDir, ctx.String(networkFlag.Name))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

// selectParams returns the parameter preset, or the deployment file when
// given.
func selectParams(ctx *cli.Context) config.Params {
	if path := ctx.String(configFlag.Name); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			fatal(err)
		}
		return cfg.Params()
	}
	cfg, ok := config.ByName(ctx.String(networkFlag.Name))
	if !ok {
		fatal(fmt.Sprintf("unknown network %q", ctx.String(networkFlag.Name)))
	}
	return cfg.Params()
}

func parseTree(ctx *cli.Context, flag cli.StringFlag) paideia.Tree {
	s := ctx.String(flag.Name)
	if s == "" {
		fatal(fmt.Sprintf("-%s is required", flag.Name))
	}
	tree, err := paideia.ParseTree(s)
	if err != nil || tree.IsEmpty() {
		fatal(fmt.Sprintf("invalid -%s: %v", flag.Name, err))
	}
	return tree
}

func openMainDB(ctx *cli.Context, dataDir string) *lvldb.LevelDB {
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	log.Debug("cache size(MB)", "size", cacheMB)

	// Ensure Go's GC ignores the database cache for trigger percentage
	gogc := math.Max(20, math.Min(100, 100/(float64(cacheMB)/1024)))
	log.Debug("sanitize Go's GC trigger", "percent", int(gogc))
	debug.SetGCPercent(int(gogc))

	fdCache := suggestFDCache()
	log.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(dataDir, "ledger.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		fatal(fmt.Sprintf("open ledger database [%v]: %v", dir, err))
	}
	return db
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		log.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			log.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		fatal("failed to get fd limit:", err)
	}
	if limit <= 1024 {
		log.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120
	}
	return n
}

func openJournal(dataDir string) *journal.Journal {
	dir := filepath.Join(dataDir, "journal.db")
	j, err := journal.New(dir)
	if err != nil {
		fatal(fmt.Sprintf("open journal database [%v]: %v", dir, err))
	}
	return j
}

func startAPIServer(ctx *cli.Context, handler http.Handler) (string, func()) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen API addr [%v]: %v", addr, err))
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		goes.Wait()
	}
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

func checkClockOffset() {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		log.Debug("failed to access NTP", "err", err)
		return
	}
	if resp.ClockOffset > maxClockOffset || resp.ClockOffset < -maxClockOffset {
		log.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}
