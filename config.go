package refframe

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/spf13/viper"
)

// Config holds the engine's runtime tunables, loaded from a TOML file the
// same way the reference codebase's smdConfig loads conf.toml: an
// environment variable names the directory, viper parses it, and the
// result is cached after first load. Generalized from the teacher's single
// global SPICE/VSOP87 toggle struct into the tunables this engine actually
// needs (cache sizing, light-time convergence, default derivative order).
type Config struct {
	// CacheThreads is the number of per-thread evaluator cache slots to
	// preallocate (§5, §9): one per concurrent goroutine expected to call
	// System.Rotation/System.State.
	CacheThreads int
	// LightTimeMaxIter bounds the light-time fixed-point iteration (§6)
	// before it reports ErrLightTimeNoConverge.
	LightTimeMaxIter int
	// LightTimeTolSec is the convergence tolerance, in seconds, between
	// successive light-time iterates.
	LightTimeTolSec float64
	// DefaultOrder is a derivative order carried with the configuration.
	// System does not read it: every Rotation/State query takes its order
	// as an explicit argument.
	DefaultOrder Order
}

// DefaultConfig mirrors the values a fresh conf.toml would set: a modest
// thread pool, a tight but bounded light-time iteration, and full jerk
// order (the engine's own default, distinct from any per-query request).
func DefaultConfig() Config {
	return Config{
		CacheThreads:     runtime.NumCPU(),
		LightTimeMaxIter: 10,
		LightTimeTolSec:  1e-6,
		DefaultOrder:     OrderJerk,
	}
}

var (
	cfgOnce   sync.Once
	cfgLoaded Config
	cfgErr    error
)

// LoadConfig reads a "conf" file (conf.toml/conf.yaml/...) from the
// directory named by the REFFRAME_CONFIG environment variable, the same
// discovery convention as the reference codebase's SMD_CONFIG. Values
// absent from the file fall back to DefaultConfig. Missing or unset
// REFFRAME_CONFIG is not an error, unlike the teacher's smdConfig (which
// panics): this engine is a library, not a standalone tool, so it must be
// usable without any file on disk.
func LoadConfig() (Config, error) {
	cfgOnce.Do(func() {
		cfg := DefaultConfig()
		confPath := os.Getenv("REFFRAME_CONFIG")
		if confPath == "" {
			cfgLoaded = cfg
			return
		}
		v := viper.New()
		v.SetConfigName("conf")
		v.AddConfigPath(confPath)
		if err := v.ReadInConfig(); err != nil {
			cfgErr = fmt.Errorf("reading %s/conf.*: %w", confPath, err)
			return
		}
		if v.IsSet("cache.threads") {
			cfg.CacheThreads = v.GetInt("cache.threads")
		}
		if v.IsSet("lighttime.max_iter") {
			cfg.LightTimeMaxIter = v.GetInt("lighttime.max_iter")
		}
		if v.IsSet("lighttime.tol_sec") {
			cfg.LightTimeTolSec = v.GetFloat64("lighttime.tol_sec")
		}
		if v.IsSet("general.default_order") {
			cfg.DefaultOrder = Order(v.GetInt("general.default_order"))
		}
		cfgLoaded = cfg
	})
	return cfgLoaded, cfgErr
}
