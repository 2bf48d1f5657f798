// Package simple is an in-memory component framework: it keeps the port
// table, processes port and state commands, queues events for the client and
// answers the parameters a concrete component does not own.
package simple

import (
	"log/slog"

	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
	"github.com/pkg/errors"
	"github.com/vishalkuo/bimap"
)

// EventRecord is one event emitted by the component.
type EventRecord struct {
	Event omx.Event
	Data1 uint32
	Data2 uint32
	Extra any
}

// Component is the framework side of one component instance.
type Component struct {
	name   string
	logger *slog.Logger

	handler omx.Handler
	state   omx.State
	ports   []*omx.PortInfo

	pending []EventRecord

	extensions *bimap.BiMap[string, omx.Index]
}

var _ omx.Framework = (*Component)(nil)

// New creates an unbound framework component in the loaded state.
func New(name string, logger *slog.Logger) *Component {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Component{
		name:       name,
		logger:     logger.With("framework", name),
		state:      omx.StateLoaded,
		extensions: bimap.NewBiMap[string, omx.Index](),
	}
	// native buffer registration is handled by the framework itself
	c.RegisterExtension(omx.ExtUseNativeBuffer2, omx.IndexParamUseNativeBuffer2)
	return c
}

// Bind attaches the concrete component requests are routed to.
func (c *Component) Bind(h omx.Handler) {
	c.handler = h
}

// Name returns the component name.
func (c *Component) Name() string {
	return c.name
}

// State returns the component state.
func (c *Component) State() omx.State {
	return c.state
}

// AddPort appends a port. Ports are indexed in the order they are added.
func (c *Component) AddPort(def omx.PortDefinition) {
	if int(def.PortIndex) != len(c.ports) {
		panic(errors.Errorf("simple: port %d added at position %d", def.PortIndex, len(c.ports)))
	}
	c.ports = append(c.ports, &omx.PortInfo{Def: def})
}

// EditPortInfo returns the mutable record of a port.
func (c *Component) EditPortInfo(portIndex uint32) *omx.PortInfo {
	if int(portIndex) >= len(c.ports) {
		panic(errors.Errorf("simple: no port %d on %s", portIndex, c.name))
	}
	return c.ports[portIndex]
}

// NumPorts returns the number of ports added so far.
func (c *Component) NumPorts() int {
	return len(c.ports)
}

// Notify queues an event for the client. It never calls back into the
// component.
func (c *Component) Notify(event omx.Event, data1, data2 uint32, extra any) {
	c.logger.Debug("event queued", "event", event.String(), "data1", data1, "data2", data2)
	c.pending = append(c.pending, EventRecord{Event: event, Data1: data1, Data2: data2, Extra: extra})
}

// DrainEvents returns the queued events in emission order and clears the queue.
func (c *Component) DrainEvents() []EventRecord {
	events := c.pending
	c.pending = nil
	return events
}

// RegisterExtension makes an extension name resolvable by the framework
// default and by ExtensionName.
func (c *Component) RegisterExtension(name string, index omx.Index) {
	c.extensions.Insert(name, index)
}

// ExtensionName returns the registered name of an extension index.
func (c *Component) ExtensionName(index omx.Index) (string, bool) {
	return c.extensions.GetInverse(index)
}
