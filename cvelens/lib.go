package cvelens

import (
	"github.com/wagoodman/go-partybus"

	"github.com/cvelens/cvelens/cvelens/logger"
	"github.com/cvelens/cvelens/internal/bus"
	"github.com/cvelens/cvelens/internal/log"
)

// SetLogger routes all library log output through the given logger.
func SetLogger(l logger.Logger) {
	log.Log = l
}

// SetBus attaches an event bus for progress and lifecycle events.
func SetBus(b *partybus.Bus) {
	bus.SetPublisher(b)
}
