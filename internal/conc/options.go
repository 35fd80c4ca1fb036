package conc

import (
	ants "github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"field-marshaller/internal/log"
)

type poolOption struct {
	// preAlloc allocates all workers up front.
	preAlloc bool
}

func (opt *poolOption) antsOptions() []ants.Option {
	return []ants.Option{
		ants.WithPreAlloc(opt.preAlloc),
		// tasks recover their own panics; this only fires for bugs in the pool wrapper itself.
		ants.WithPanicHandler(func(v any) {
			log.Error("conc pool panicked", zap.Any("panic", v))
		}),
	}
}

// PoolOption configures a Pool.
type PoolOption func(opt *poolOption)

func defaultPoolOption() *poolOption {
	return &poolOption{}
}

func WithPreAlloc(v bool) PoolOption {
	return func(opt *poolOption) {
		opt.preAlloc = v
	}
}
