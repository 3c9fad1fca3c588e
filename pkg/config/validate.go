package config

import (
	"slices"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/integrations/pexels"
)

var (
	sourceKinds   = []string{SourcePexels, SourceLocal}
	cacheBackends = []string{cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone}
)

// Validate checks every section and returns the first problem found as an
// INVALID_CONFIG error.
func (c *Config) Validate() error {
	checks := []func() error{
		c.validateLayout,
		c.validateTiming,
		c.validateSource,
		c.validateCache,
		c.validateServer,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return invalid(err)
		}
	}
	return nil
}

func (c *Config) validateLayout() error {
	l := c.Layout
	if err := errors.ValidatePositive("layout.column_width", l.ColumnWidth); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("layout.gap", l.Gap); err != nil {
		return err
	}
	if err := errors.ValidatePositive("layout.item_height", l.ItemHeight); err != nil {
		return err
	}
	if l.Overscan < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout.overscan must not be negative, got %d", l.Overscan)
	}
	return nil
}

func (c *Config) validateTiming() error {
	t := c.Timing
	if t.BottomDelay < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timing.bottom_delay must not be negative")
	}
	if t.ResizeDelay < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timing.resize_delay must not be negative")
	}
	if t.FrameRate < 1 || t.FrameRate > 240 {
		return errors.New(errors.ErrCodeInvalidInput, "timing.frame_rate must be between 1 and 240, got %d", t.FrameRate)
	}
	return nil
}

func (c *Config) validateSource() error {
	s := c.Source
	if !slices.Contains(sourceKinds, s.Kind) {
		return errors.New(errors.ErrCodeInvalidInput, "source.kind must be one of %v, got %q", sourceKinds, s.Kind)
	}
	if s.PerPage < 1 || s.PerPage > pexels.MaxPerPage {
		return errors.New(errors.ErrCodeInvalidInput, "source.per_page must be between 1 and %d, got %d", pexels.MaxPerPage, s.PerPage)
	}
	switch s.Kind {
	case SourceLocal:
		if s.Dir == "" {
			return errors.New(errors.ErrCodeInvalidInput, "source.dir is required for the local source")
		}
	case SourcePexels:
		if err := errors.ValidateURL(s.BaseURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "source.base_url")
		}
	}
	return nil
}

func (c *Config) validateCache() error {
	cc := c.Cache
	if !slices.Contains(cacheBackends, cc.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be one of %v, got %q", cacheBackends, cc.Backend)
	}
	if cc.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server.addr cannot be empty")
	}
	if c.Server.SessionTTL <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.session_ttl must be positive")
	}
	return nil
}

func invalid(err error) error {
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", errors.UserMessage(err))
}
