package probe

import (
	"context"
	"strconv"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/structlayout/errors"
	"github.com/wippyai/structlayout/internal/abi"
	"github.com/wippyai/structlayout/record"
	"github.com/wippyai/structlayout/report"
)

// memoryModule is a core module with one exported memory of one page and
// nothing else.
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 memory, min 1 page
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00, // export "memory"
}

// Config holds probe configuration.
type Config struct {
	// Trace, when set, receives an access line for every field store.
	Trace *report.Trace

	// MemoryLimitPages caps linear memory in 64KB pages. 0 means 1.
	MemoryLimitPages uint32
}

// Option configures a Probe.
type Option func(*Config)

// WithMemoryLimitPages caps linear memory growth.
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *Config) {
		c.MemoryLimitPages = pages
	}
}

// WithTrace reports every field store on t.
func WithTrace(t *report.Trace) Option {
	return func(c *Config) {
		c.Trace = t
	}
}

// Probe owns a wazero runtime and the linear memory of one module.
type Probe struct {
	runtime wazero.Runtime
	mem     api.Memory
	trace   *report.Trace
}

// New starts a runtime and instantiates the memory module.
func New(ctx context.Context, opts ...Option) (*Probe, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MemoryLimitPages == 0 {
		cfg.MemoryLimitPages = 1
	}

	runtimeCfg := wazero.NewRuntimeConfig().WithMemoryLimitPages(cfg.MemoryLimitPages)
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	mod, err := rt.Instantiate(ctx, memoryModule)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseProbe, errors.KindInstantiation, err, "memory module")
	}

	mem := mod.ExportedMemory("memory")
	if mem == nil {
		_ = rt.Close(ctx)
		return nil, errors.New(errors.PhaseProbe, errors.KindInstantiation).
			Detail("module exports no memory").
			Build()
	}

	Logger().Debug("probe ready", zap.Uint32("memory_bytes", mem.Size()))

	return &Probe{
		runtime: rt,
		mem:     mem,
		trace:   cfg.Trace,
	}, nil
}

// MemorySize returns the current size of linear memory in bytes.
func (p *Probe) MemorySize() uint32 {
	return p.mem.Size()
}

// Store clears the record's bytes at base and writes each field value at
// base + offset. values are in field declaration order.
func (p *Probe) Store(base uint32, l record.Layout, values []uint64) error {
	if len(values) != len(l.Fields) {
		return errors.New(errors.PhaseProbe, errors.KindMismatch).
			Path(l.TypeName).
			Layout(l.Name).
			Detail("%d values for %d fields", len(values), len(l.Fields)).
			Build()
	}

	if err := p.checkBounds(base, uint32(l.Size), []string{l.TypeName}); err != nil {
		return err
	}
	if !p.mem.Write(base, make([]byte, l.Size)) {
		return errors.OutOfBounds(errors.PhaseProbe, []string{l.TypeName}, base, uint32(l.Size), p.mem.Size())
	}

	for i, f := range l.Fields {
		addr, err := p.fieldAddr(base, l, f)
		if err != nil {
			return err
		}
		if err := p.write(addr, f, values[i]); err != nil {
			return err
		}
		if p.trace != nil {
			if err := p.trace.Access(uintptr(addr), f.Size, f.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Load reads every field of a record stored at base.
func (p *Probe) Load(base uint32, l record.Layout) ([]uint64, error) {
	values := make([]uint64, len(l.Fields))
	for i, f := range l.Fields {
		addr, err := p.fieldAddr(base, l, f)
		if err != nil {
			return nil, err
		}
		v, err := p.read(addr, f)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Verify stores values at address 0, reads them back and reports every
// field that did not survive the round trip.
func (p *Probe) Verify(l record.Layout, values []uint64) error {
	if err := p.Store(0, l, values); err != nil {
		return err
	}
	got, err := p.Load(0, l)
	if err != nil {
		return err
	}

	var errs error
	for i, f := range l.Fields {
		if got[i] != values[i] {
			mismatch := errors.Mismatch(errors.PhaseProbe, []string{l.TypeName, f.Name}, values[i], got[i])
			mismatch.Layout = l.Name
			errs = multierr.Append(errs, mismatch)
		}
	}

	Logger().Debug("probe verified",
		zap.String("layout", l.Name),
		zap.Int("fields", len(l.Fields)),
		zap.Int("mismatches", len(multierr.Errors(errs))))
	return errs
}

// Snapshot returns a copy of the l.Size bytes at base.
func (p *Probe) Snapshot(base uint32, l record.Layout) ([]byte, error) {
	if err := p.checkBounds(base, uint32(l.Size), []string{l.TypeName}); err != nil {
		return nil, err
	}
	view, ok := p.mem.Read(base, uint32(l.Size))
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseProbe, []string{l.TypeName}, base, uint32(l.Size), p.mem.Size())
	}
	return append([]byte(nil), view...), nil
}

// Close releases the runtime and its memory.
func (p *Probe) Close(ctx context.Context) error {
	return p.runtime.Close(ctx)
}

func (p *Probe) fieldAddr(base uint32, l record.Layout, f record.Field) (uint32, error) {
	path := []string{l.TypeName, f.Name}
	addr, ok := abi.SafeAddU32(base, uint32(f.Offset))
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseProbe, path, base, uint32(f.Offset+f.Size), p.mem.Size())
	}
	if err := p.checkBounds(addr, uint32(f.Size), path); err != nil {
		return 0, err
	}
	return addr, nil
}

func (p *Probe) checkBounds(offset, size uint32, path []string) error {
	end, ok := abi.SafeAddU32(offset, size)
	if !ok || end > p.mem.Size() {
		return errors.OutOfBounds(errors.PhaseProbe, path, offset, size, p.mem.Size())
	}
	return nil
}

func (p *Probe) write(addr uint32, f record.Field, v uint64) error {
	var ok bool
	switch f.Size {
	case 1:
		ok = p.mem.WriteByte(addr, byte(v))
	case 2:
		ok = p.mem.WriteUint16Le(addr, uint16(v))
	case 4:
		ok = p.mem.WriteUint32Le(addr, uint32(v))
	case 8:
		ok = p.mem.WriteUint64Le(addr, v)
	default:
		return errors.Unsupported(errors.PhaseProbe, "field size "+sizeName(f.Size))
	}
	if !ok {
		return errors.OutOfBounds(errors.PhaseProbe, []string{f.Name}, addr, uint32(f.Size), p.mem.Size())
	}
	return nil
}

func (p *Probe) read(addr uint32, f record.Field) (uint64, error) {
	var (
		v  uint64
		ok bool
	)
	switch f.Size {
	case 1:
		var b byte
		b, ok = p.mem.ReadByte(addr)
		v = uint64(b)
	case 2:
		var u uint16
		u, ok = p.mem.ReadUint16Le(addr)
		v = uint64(u)
	case 4:
		var u uint32
		u, ok = p.mem.ReadUint32Le(addr)
		v = uint64(u)
	case 8:
		v, ok = p.mem.ReadUint64Le(addr)
	default:
		return 0, errors.Unsupported(errors.PhaseProbe, "field size "+sizeName(f.Size))
	}
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseProbe, []string{f.Name}, addr, uint32(f.Size), p.mem.Size())
	}
	return v, nil
}

func sizeName(n uintptr) string {
	return strconv.FormatUint(uint64(n), 10)
}
