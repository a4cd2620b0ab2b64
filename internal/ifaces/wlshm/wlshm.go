// Package wlshm implements wl_shm, wl_shm_pool, and wl_buffer: the
// shared-memory buffer path every client that does not use a GPU
// allocator falls back to. The pool's backing fd is consumed from the
// message's ancillary file-descriptor queue by internal/wire/internal
// transport before this handler ever runs; this package only tracks
// the accounting (offset, stride, format) a real renderer would need
// to map it, without mapping anything itself (spec.md §1 Non-goals).
package wlshm

import (
	"os"

	"github.com/jaywm/jayd/internal/ifaces"
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/wire"
)

const (
	ShmInterfaceName    = "wl_shm"
	PoolInterfaceName   = "wl_shm_pool"
	BufferInterfaceName = "wl_buffer"
)

const (
	ShmRequestCreatePool wire.Opcode = 0

	PoolRequestCreateBuffer wire.Opcode = 0
	PoolRequestDestroy      wire.Opcode = 1
	PoolRequestResize       wire.Opcode = 2

	BufferRequestDestroy wire.Opcode = 0

	shmEventFormat      wire.Opcode = 0
	bufferEventRelease  wire.Opcode = 0
)

// FormatArgb8888 and FormatXrgb8888 are the two formats wl_shm
// guarantees every compositor supports.
const (
	FormatArgb8888 uint32 = 0
	FormatXrgb8888 uint32 = 1
)

type Shm struct {
	ifaces.Base
}

func (s *Shm) NumRequests() uint32 { return 1 }
func (s *Shm) BreakLoops()         {}

// Pool records a client's shared-memory pool: the fd backing it (closed
// when the last buffer and the pool itself are destroyed, tracked here
// by a simple refcount rather than actual mmap bookkeeping) and its
// current size.
type Pool struct {
	ifaces.Base
	FD       int
	Size     int32
	liveBufs int
	destroyed bool
}

func (p *Pool) NumRequests() uint32 { return 3 }
func (p *Pool) BreakLoops()         {}

// Buffer is one wl_buffer view into a Pool's memory.
type Buffer struct {
	ifaces.Base
	Pool                    *Pool
	Offset, Width, Height, Stride int32
	Format                  uint32
}

func (b *Buffer) NumRequests() uint32 { return 1 }
func (b *Buffer) BreakLoops()         { b.Pool = nil }

func init() {
	object.Register(&object.InterfaceTable{
		Name: ShmInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			ShmRequestCreatePool: handleCreatePool,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: PoolInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			PoolRequestCreateBuffer: handleCreateBuffer,
			PoolRequestDestroy:      handlePoolDestroy,
			PoolRequestResize:       handlePoolResize,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: BufferInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			BufferRequestDestroy: handleBufferDestroy,
		},
	})
	ifaces.RegisterFactory(ShmInterfaceName, func(client *object.Client, id wire.ObjectID, version uint32) (object.Object, error) {
		shm := &Shm{Base: ifaces.NewBase(id, ShmInterfaceName, version)}
		enc := wire.NewEncoder(4)
		enc.PutUint32(FormatArgb8888)
		ifaces.SendEvent(client, id, shmEventFormat, enc.Bytes())
		enc2 := wire.NewEncoder(4)
		enc2.PutUint32(FormatXrgb8888)
		ifaces.SendEvent(client, id, shmEventFormat, enc2.Bytes())
		return shm, nil
	})
}

func handleCreatePool(obj object.Object, client *object.Client, args *wire.Decoder) error {
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	fd, err := args.FD()
	if err != nil {
		return err
	}
	size, err := args.Int32()
	if err != nil {
		return err
	}
	return client.AddClientObj(&Pool{Base: ifaces.NewBase(newID, PoolInterfaceName, obj.Version()), FD: fd, Size: size})
}

func handleCreateBuffer(obj object.Object, client *object.Client, args *wire.Decoder) error {
	p := obj.(*Pool)
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	offset, err := args.Int32()
	if err != nil {
		return err
	}
	width, err := args.Int32()
	if err != nil {
		return err
	}
	height, err := args.Int32()
	if err != nil {
		return err
	}
	stride, err := args.Int32()
	if err != nil {
		return err
	}
	format, err := args.Uint32()
	if err != nil {
		return err
	}
	p.liveBufs++
	return client.AddClientObj(&Buffer{
		Base: ifaces.NewBase(newID, BufferInterfaceName, obj.Version()),
		Pool: p, Offset: offset, Width: width, Height: height, Stride: stride, Format: format,
	})
}

func handlePoolDestroy(obj object.Object, client *object.Client, args *wire.Decoder) error {
	p := obj.(*Pool)
	p.destroyed = true
	if p.liveBufs == 0 {
		_ = os.NewFile(uintptr(p.FD), "wl_shm_pool").Close()
	}
	return client.RemoveObj(p)
}

func handlePoolResize(obj object.Object, client *object.Client, args *wire.Decoder) error {
	p := obj.(*Pool)
	size, err := args.Int32()
	if err != nil {
		return err
	}
	p.Size = size
	return nil
}

func handleBufferDestroy(obj object.Object, client *object.Client, args *wire.Decoder) error {
	b := obj.(*Buffer)
	if b.Pool != nil {
		b.Pool.liveBufs--
		if b.Pool.destroyed && b.Pool.liveBufs == 0 {
			_ = os.NewFile(uintptr(b.Pool.FD), "wl_shm_pool").Close()
		}
	}
	return client.RemoveObj(b)
}
