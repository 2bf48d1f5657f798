// Package registry builds decoder components by name and serializes every
// call into one instance, which the components themselves rely on.
package registry

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/babelcloud/gbox/packages/vdec/internal/codecs"
	"github.com/babelcloud/gbox/packages/vdec/internal/simple"
	"github.com/babelcloud/gbox/packages/vdec/internal/vdec"
	"github.com/dchest/uniuri"
	"github.com/pkg/errors"
	"k8s.io/utils/keymutex"
)

const handleLength = 16

// Options apply to every component the registry creates.
type Options struct {
	// DecoderSoftware selects CPU decoding backends.
	DecoderSoftware bool
	// IOMMUEnabled marks output buffers as IOMMU mapped.
	IOMMUEnabled bool
	// MinInputBufferSize raises the input buffer size of every codec to at
	// least this many bytes. Zero keeps the codec defaults.
	MinInputBufferSize uint32
}

// Registry creates and tracks component instances.
type Registry struct {
	logger *slog.Logger
	opts   Options

	mu        sync.RWMutex
	instances map[string]*Instance

	dispatchLock keymutex.KeyMutex
}

// New creates an empty registry.
func New(logger *slog.Logger, opts Options) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:       logger,
		opts:         opts,
		instances:    make(map[string]*Instance),
		dispatchLock: keymutex.NewHashed(0),
	}
}

// Names returns the component names the registry can create.
func (r *Registry) Names() []string {
	all := codecs.All()
	names := make([]string, 0, len(all))
	for _, c := range all {
		names = append(names, c.Name)
	}
	return names
}

// Create builds a component with initialized ports.
func (r *Registry) Create(name string) (*Instance, error) {
	codec, ok := codecs.Lookup(name)
	if !ok {
		return nil, errors.Errorf("registry: unknown component %q", name)
	}

	handle := uniuri.NewLen(handleLength)
	logger := r.logger.With("handle", handle)

	fw := simple.New(codec.Name, logger)
	dec, err := vdec.New(vdec.Config{
		Name:            codec.Name,
		Role:            codec.Role,
		CodingType:      codec.CodingType,
		ProfileLevels:   codec.ProfileLevels,
		Width:           codec.Width,
		Height:          codec.Height,
		DecoderSoftware: r.opts.DecoderSoftware,
		IOMMUEnabled:    r.opts.IOMMUEnabled,
	}, fw, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "registry: failed to create %s", name)
	}
	fw.Bind(dec)

	inputBufferSize := max(codec.InputBufferSize, r.opts.MinInputBufferSize)
	dec.InitPorts(codec.NumInputBuffers, inputBufferSize, codec.NumOutputBuffers, codec.MIMEType, codec.MinCompressionRatio)

	inst := &Instance{
		handle: handle,
		codec:  codec,
		fw:     fw,
		dec:    dec,
		lock:   r.dispatchLock,
	}

	r.mu.Lock()
	r.instances[handle] = inst
	r.mu.Unlock()

	r.logger.Info("component created", "name", name, "handle", handle)
	return inst, nil
}

// Get returns a live instance by handle.
func (r *Registry) Get(handle string) (*Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[handle]
	return inst, ok
}

// Handles returns the handles of live instances in sorted order.
func (r *Registry) Handles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handles := make([]string, 0, len(r.instances))
	for h := range r.instances {
		handles = append(handles, h)
	}
	sort.Strings(handles)
	return handles
}

// Destroy forgets an instance. Calls already dispatched to it complete first.
func (r *Registry) Destroy(handle string) error {
	r.mu.Lock()
	inst, ok := r.instances[handle]
	delete(r.instances, handle)
	r.mu.Unlock()
	if !ok {
		return errors.Errorf("registry: no component with handle %s", handle)
	}

	r.dispatchLock.LockKey(handle)
	inst.destroyed = true
	if err := r.dispatchLock.UnlockKey(handle); err != nil {
		return errors.Wrapf(err, "registry: failed to release %s", handle)
	}

	r.logger.Info("component destroyed", "name", inst.codec.Name, "handle", handle)
	return nil
}
