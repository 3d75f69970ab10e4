package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"concore/internal/asyncexec"
	"concore/internal/trace"
)

type executorSection struct {
	Deterministic bool   `toml:"deterministic"`
	Fuzz          bool   `toml:"fuzz"`
	Seed          uint64 `toml:"seed"`
}

type tracerSection struct {
	Level      string `toml:"level"`
	Mode       string `toml:"mode"`
	Format     string `toml:"format"`
	OutputPath string `toml:"output_path"`
	RingSize   int    `toml:"ring_size"`
	HeartbeatMs int   `toml:"heartbeat_ms"`
}

type fileConfig struct {
	Executor executorSection `toml:"executor"`
	Tracer   tracerSection   `toml:"tracer"`
}

// Config is the decoded, ready-to-use pair of executor and tracer
// configuration this module's CLI needs to construct a runnable
// asyncexec.Executor.
type Config struct {
	Executor asyncexec.Config
	Tracer   trace.Config
}

// Default returns the configuration a bare `concore run` uses when no
// config file is given: deterministic FIFO scheduling, tracing off.
func Default() Config {
	return Config{
		Executor: asyncexec.Config{Deterministic: true},
		Tracer:   trace.Config{Level: trace.LevelOff},
	}
}

// Load parses a TOML file at path into a Config, falling back to
// Default() for any section the file omits.
func Load(path string) (Config, error) {
	cfg := Default()

	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if meta.IsDefined("executor") {
		cfg.Executor.Deterministic = fc.Executor.Deterministic
		cfg.Executor.Fuzz = fc.Executor.Fuzz
		cfg.Executor.Seed = fc.Executor.Seed
	}

	if meta.IsDefined("tracer") {
		level := trace.LevelOff
		if fc.Tracer.Level != "" {
			level, err = trace.ParseLevel(fc.Tracer.Level)
			if err != nil {
				return Config{}, fmt.Errorf("%s: %w", path, err)
			}
		}
		mode := trace.ModeRing
		if fc.Tracer.Mode != "" {
			mode, err = trace.ParseMode(fc.Tracer.Mode)
			if err != nil {
				return Config{}, fmt.Errorf("%s: %w", path, err)
			}
		}
		format, err := parseFormat(fc.Tracer.Format)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
		cfg.Tracer = trace.Config{
			Level:      level,
			Mode:       mode,
			Format:     format,
			OutputPath: fc.Tracer.OutputPath,
			RingSize:   fc.Tracer.RingSize,
		}
		if fc.Tracer.HeartbeatMs > 0 {
			cfg.Tracer.Heartbeat = msToDuration(fc.Tracer.HeartbeatMs)
		}
	}

	return cfg, nil
}

func parseFormat(s string) (trace.Format, error) {
	switch s {
	case "", "auto":
		return trace.FormatAuto, nil
	case "text":
		return trace.FormatText, nil
	case "ndjson":
		return trace.FormatNDJSON, nil
	case "chrome":
		return trace.FormatChrome, nil
	default:
		return trace.FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson|chrome)", s)
	}
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
