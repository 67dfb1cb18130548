package disasm

import (
	"github.com/arloliu/dex2smali/dex"
	"github.com/arloliu/dex2smali/instr"
	"github.com/arloliu/dex2smali/internal/deschash"
)

// cachingPool wraps a *dex.Dex, memoizing its FieldRef/MethodRef/ProtoRef
// renderings (the pool lookups real-world DEX files repeat most often
// across a class's instruction stream) through a shared deschash.Cache.
// Implements instr.Pool.
type cachingPool struct {
	d     *dex.Dex
	cache *deschash.Cache
}

var _ instr.Pool = (*cachingPool)(nil)

func (p *cachingPool) String(idx uint32) (string, error) { return p.d.String(idx) }
func (p *cachingPool) Type(idx uint16) (string, error)    { return p.d.Type(idx) }

func (p *cachingPool) FieldRef(idx uint16) (string, error) {
	return p.cache.GetOrRender(deschash.KindField, uint32(idx), func() (string, error) {
		return p.d.FieldRef(idx)
	})
}

func (p *cachingPool) MethodRef(idx uint16) (string, error) {
	return p.cache.GetOrRender(deschash.KindMethod, uint32(idx), func() (string, error) {
		return p.d.MethodRef(idx)
	})
}

func (p *cachingPool) ProtoRef(idx uint16) (string, error) {
	return p.cache.GetOrRender(deschash.KindProto, uint32(idx), func() (string, error) {
		return p.d.ProtoRef(idx)
	})
}

func (p *cachingPool) CallSiteRef(idx uint16) (string, error) {
	return p.cache.GetOrRender(deschash.KindCallSite, uint32(idx), func() (string, error) {
		return p.d.CallSiteRef(idx)
	})
}

func (p *cachingPool) MethodHandleRef(idx uint16) (string, error) {
	return p.cache.GetOrRender(deschash.KindMethodHandle, uint32(idx), func() (string, error) {
		return p.d.MethodHandleRef(idx)
	})
}
