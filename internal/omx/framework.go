package omx

//go:generate mockgen -destination=mocks/mock_framework.go -package=mocks . Framework

// Framework is the part of the enclosing component framework a concrete
// component calls into: port table, event emission and default parameter
// handling for indices the component does not own.
type Framework interface {
	// AddPort appends a port to the component's port table.
	AddPort(def PortDefinition)

	// EditPortInfo returns the mutable record of a port. It panics for an
	// index that was never added.
	EditPortInfo(portIndex uint32) *PortInfo

	// Notify emits an event to the client. It does not wait for the client.
	Notify(event Event, data1, data2 uint32, extra any)

	// InternalGetParameter is the default handling for parameter reads.
	InternalGetParameter(index Index, params any) error

	// InternalSetParameter is the default handling for parameter writes.
	InternalSetParameter(index Index, params any) error

	// GetExtensionIndex resolves an extension name the component does not own.
	GetExtensionIndex(name string) (Index, error)
}

// Handler is implemented by a concrete component. The framework routes
// client requests and lifecycle callbacks to it.
type Handler interface {
	InternalGetParameter(index Index, params any) error
	InternalSetParameter(index Index, params any) error
	GetConfig(index Index, params any) error
	GetExtensionIndex(name string) (Index, error)

	// OnPortEnableCompleted runs after a port disable or enable command finished.
	OnPortEnableCompleted(portIndex uint32, enabled bool)

	// OnReset runs when the component returns to the loaded state.
	OnReset()
}
