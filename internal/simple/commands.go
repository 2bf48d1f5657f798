package simple

import (
	"github.com/babelcloud/gbox/packages/vdec/internal/omx"
)

// SendCommand processes a client command synchronously. Completion is
// reported with a queued EventCmdComplete.
func (c *Component) SendCommand(cmd omx.Command, param uint32) error {
	switch cmd {
	case omx.CommandPortDisable, omx.CommandPortEnable:
		return c.setPortEnabled(param, cmd == omx.CommandPortEnable)

	case omx.CommandStateSet:
		return c.setState(omx.State(param))

	case omx.CommandFlush:
		if param > omx.MaxPortIndex && param != allPorts {
			return omx.ErrorBadPortIndex
		}
		c.Notify(omx.EventCmdComplete, uint32(omx.CommandFlush), param, nil)
		return nil

	default:
		return omx.ErrorUnsupportedIndex
	}
}

// allPorts addresses every port in a flush command.
const allPorts = 0xFFFFFFFF

func (c *Component) setPortEnabled(portIndex uint32, enabled bool) error {
	if int(portIndex) >= len(c.ports) {
		return omx.ErrorBadPortIndex
	}
	port := c.ports[portIndex]
	if port.Def.Enabled == enabled {
		return omx.ErrorIncorrectState
	}

	port.Def.Enabled = enabled
	if !enabled {
		port.Def.Populated = false
		port.NativeBuffers = nil
	}

	cmd := omx.CommandPortDisable
	if enabled {
		cmd = omx.CommandPortEnable
	}
	c.logger.Debug("port command completed", "command", cmd.String(), "port", portIndex)
	c.Notify(omx.EventCmdComplete, uint32(cmd), portIndex, nil)

	if c.handler != nil {
		c.handler.OnPortEnableCompleted(portIndex, enabled)
	}
	return nil
}

func (c *Component) setState(target omx.State) error {
	switch target {
	case omx.StateLoaded, omx.StateIdle, omx.StateExecuting:
	default:
		return omx.ErrorIncorrectState
	}
	if target == c.state {
		return omx.ErrorIncorrectState
	}

	from := c.state
	c.state = target
	if target == omx.StateLoaded && c.handler != nil {
		c.handler.OnReset()
	}

	c.logger.Info("state changed", "from", from.String(), "to", target.String())
	c.Notify(omx.EventCmdComplete, uint32(omx.CommandStateSet), uint32(target), nil)
	return nil
}
