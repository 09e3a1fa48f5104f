package registry

import (
	"log/slog"

	"github.com/xab-mack/metaast/internal/analyzer"
	"github.com/xab-mack/metaast/internal/config"
)

// AutoRegister runs the startup registration pass: every candidate module not
// excluded by the static configuration is registered and given its default
// configuration. Individual failures are logged and skipped; startup never
// aborts because one module is broken.
func (r *Registry) AutoRegister(cfg config.File, modules []analyzer.Analyzer) {
	for _, m := range modules {
		meta, err := safeMeta(m)
		if err != nil {
			slog.Warn("registry.autoregister.skip", "error", err)
			continue
		}
		if cfg.Disallowed(meta.Name) {
			slog.Info("registry.autoregister.disabled", "analyzer", meta.Name)
			continue
		}
		if err := r.Register(m); err != nil {
			slog.Warn("registry.autoregister.skip", "analyzer", meta.Name, "error", err)
			continue
		}
		if defaults := cfg.Analyzers[meta.Name]; len(defaults) > 0 {
			if err := r.Configure(m, defaults); err != nil {
				slog.Warn("registry.autoregister.config", "analyzer", meta.Name, "error", err)
			}
		}
	}
}
