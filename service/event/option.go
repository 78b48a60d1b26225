package event

import "github.com/viant/procsched/service/messaging/memory"

type options struct {
	memConfig memory.Config
}

type Option func(o *options)

// WithMemoryQueueConfig sets the memory queue configuration
func WithMemoryQueueConfig(config memory.Config) Option {
	return func(o *options) {
		o.memConfig = config
	}
}
