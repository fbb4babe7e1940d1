package refframe

import "fmt"

// System owns an axes graph, a points graph, and the shared configuration
// both are queried through. It is the engine's single entry point,
// grounded on mission.go's Mission struct: a long-lived value constructed
// once and then queried repeatedly over the life of a program, rather than
// rebuilt per call.
type System struct {
	Axes   *axesRegistry
	Points *pointRegistry
	Config Config
	Log    Logger

	cache *evalCache
}

// NewSystem constructs an empty System ready for axes/points registration.
// If cfg.CacheThreads is zero, DefaultConfig's value is used. A nil logger
// is replaced with NopLogger.
func NewSystem(cfg Config, logger Logger) *System {
	if logger == nil {
		logger = NopLogger()
	}
	if cfg.CacheThreads <= 0 {
		cfg.CacheThreads = DefaultConfig().CacheThreads
	}
	return &System{
		Axes:   newAxesRegistry(logger),
		Points: newPointRegistry(logger),
		Config: cfg,
		Log:    logger,
		cache:  newEvalCache(cfg.CacheThreads),
	}
}

// resolveAxesName looks up a NodeID by its registered axes name.
func (s *System) resolveAxesName(name string) (NodeID, error) {
	id, ok := s.Axes.graph.lookup(name)
	if !ok {
		return 0, fmt.Errorf("axes %q: %w", name, ErrUnknownAxes)
	}
	return id, nil
}

// resolvePointName looks up a NodeID by its registered point name.
func (s *System) resolvePointName(name string) (NodeID, error) {
	id, ok := s.Points.graph.lookup(name)
	if !ok {
		return 0, fmt.Errorf("point %q: %w", name, ErrUnknownPoint)
	}
	return id, nil
}
