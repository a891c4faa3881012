// Package bridge hands flags to a sandboxed child widget and subscribes to
// its outbound ports. The bridge accepts a module handle, flags and an
// out-port subscriber; nothing else crosses the boundary.
package bridge

import (
	"sync"

	"github.com/rs/zerolog"
)

// PortTooltips is the child's only outbound port today; firing it triggers
// tooltip activation on the host side.
const PortTooltips = "tooltips"

// Flags is the initialisation payload handed to the child exactly once.
type Flags struct {
	Token   string
	BaseURL string
}

// Ports maps port names to the child's outbound event channels. A closed
// channel ends the subscription.
type Ports map[string]<-chan struct{}

// InitContext is what the child receives: its container node and the flags.
type InitContext struct {
	Node  *Container
	Flags Flags
}

// InitFunc boots a child widget inside a container.
type InitFunc func(InitContext) (Ports, error)

// Child is a named entry in a packaged module's Children map.
type Child struct {
	Init InitFunc
}

// Handle is a resolved widget module. Two packagings are supported: the
// module exposes Init directly, or under a Children map keyed by name.
type Handle struct {
	Init     InitFunc
	Children map[string]Child
}

func (h Handle) resolve(name string) InitFunc {
	if h.Init != nil {
		return h.Init
	}
	if child, ok := h.Children[name]; ok {
		return child.Init
	}
	return nil
}

// Container is the host node a child renders into.
type Container struct {
	mu    sync.Mutex
	empty bool
}

func NewContainer() *Container { return &Container{} }

// Empty reports whether the bridge fell back to rendering nothing.
func (c *Container) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.empty
}

func (c *Container) markEmpty() {
	c.mu.Lock()
	c.empty = true
	c.mu.Unlock()
}

// Bridge mounts widget modules.
type Bridge struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Bridge {
	return &Bridge{log: log}
}

// Mounted is one live mount. Close ends the port subscription.
type Mounted struct {
	done chan struct{}
	once sync.Once
}

func (m *Mounted) Close() {
	m.once.Do(func() { close(m.done) })
}

// Mount resolves the named child in the handle and initialises it exactly
// once with the container and flags, then subscribes the tooltips port to
// onTooltips. An absent module or missing init logs a diagnostic and leaves
// an empty container; Mount never panics on a malformed handle. Parent-side
// flag changes after Mount are deliberately ignored — only a fresh Mount
// re-initialises the child.
func (b *Bridge) Mount(h Handle, name string, node *Container, flags Flags, onTooltips func()) *Mounted {
	m := &Mounted{done: make(chan struct{})}

	init := h.resolve(name)
	if init == nil {
		b.log.Error().Str("module", name).Msg("widget module missing init, rendering empty container")
		node.markEmpty()
		return m
	}

	ports, err := init(InitContext{Node: node, Flags: flags})
	if err != nil {
		b.log.Error().Err(err).Str("module", name).Msg("widget init failed, rendering empty container")
		node.markEmpty()
		return m
	}

	if ch, ok := ports[PortTooltips]; ok && onTooltips != nil {
		go func() {
			for {
				select {
				case <-m.done:
					return
				case _, open := <-ch:
					if !open {
						return
					}
					onTooltips()
				}
			}
		}()
	}
	return m
}
