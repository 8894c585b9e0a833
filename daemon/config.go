package daemon

import (
	"path"
	"time"

	"gopkg.in/urfave/cli.v1"
)

// Config holds the daemon's runtime settings, populated from CommandFlags
// the way TraceService.Init in the teacher repo layers CLI flags over
// defaults.
type Config struct {
	SelfName    string
	SnapshotDir string
	SweepEvery  time.Duration
}

// DefaultConfig mirrors the teacher's DefaultHistoryConfig pattern: a
// package-level default, overridden field-by-field from CLI flags.
var DefaultConfig = &Config{
	SweepEvery: time.Minute,
}

var (
	// SnapshotDirFlag points the optional nodestore at a directory; an
	// empty value disables diagnostic snapshotting entirely.
	SnapshotDirFlag = cli.StringFlag{
		Name:  "keystate.snapshotdir",
		Usage: "directory for the optional node key-status snapshot log",
	}

	// SweepIntervalFlag controls how often the router's flood-dedup cache
	// is swept of expired fingerprints.
	SweepIntervalFlag = cli.DurationFlag{
		Name:  "keystate.sweepinterval",
		Usage: "interval between flood-dedup cache sweeps",
		Value: time.Minute,
	}
)

// CommandFlags exposes this package's CLI surface, following the same
// (commands, flags) shape as the teacher's service Command Flags methods.
func CommandFlags() ([]cli.Command, []cli.Flag) {
	return nil, []cli.Flag{SnapshotDirFlag, SweepIntervalFlag}
}

// FromContext builds a Config from a populated cli.Context, homeDir being
// the process's base data directory.
func FromContext(ctx *cli.Context, homeDir, selfName string) *Config {
	cfg := &Config{
		SelfName:   selfName,
		SweepEvery: DefaultConfig.SweepEvery,
	}
	if ctx.GlobalIsSet(SnapshotDirFlag.Name) {
		cfg.SnapshotDir = ctx.GlobalString(SnapshotDirFlag.Name)
	} else {
		cfg.SnapshotDir = path.Join(homeDir, "keystate-snapshots")
	}
	if ctx.GlobalIsSet(SweepIntervalFlag.Name) {
		cfg.SweepEvery = ctx.GlobalDuration(SweepIntervalFlag.Name)
	}
	return cfg
}
