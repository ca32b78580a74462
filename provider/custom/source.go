package custom

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/resolver-cli/resolver/identity"
	"github.com/resolver-cli/resolver/network"
	"github.com/resolver-cli/resolver/source"
	lua "github.com/yuin/gopher-lua"
)

// ErrClosed is returned by calls made after Close.
var ErrClosed = errors.New("provider is closed")

// Provider is a source.Source implemented by a Lua script.
//
// A Lua state is single threaded: calls are serialized, so concurrent season
// fetches of a show run one after another.
type Provider struct {
	name              string
	path              string
	fetcher           network.Fetcher
	seasonConcurrency int

	mu     sync.Mutex
	state  *lua.LState
	closed bool

	// failure is the Go-side error raised by a fetch during the running call.
	failure error
}

// Name returns the script name.
func (p *Provider) Name() string {
	return p.name
}

// ID returns the local identity of the script.
func (p *Provider) ID() identity.Provider {
	return identity.Local(p.name)
}

// Path is the script location.
func (p *Provider) Path() string {
	return p.path
}

// Close releases the Lua state. Calls still queued on the state fail with ErrClosed.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.state.Close()
}

// call executes a global Lua function and returns its single result.
func (p *Provider) call(ctx context.Context, fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("%s %s: %w", p.name, fn, ErrClosed)
	}

	luaFn := p.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	p.failure = nil
	p.state.SetContext(ctx)
	defer p.state.RemoveContext()

	err := p.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if p.failure != nil {
			return nil, fmt.Errorf("%s: %w", fn, p.failure)
		}
		return nil, fmt.Errorf("%s: %w", fn, err)
	}

	retval := p.state.Get(-1)
	p.state.Pop(1)

	if retval.Type() != retType {
		return nil, &source.DecodeError{
			URL:   p.path,
			Cause: fmt.Errorf("%s returned %s, expected %s", fn, retval.Type(), retType),
		}
	}

	return retval, nil
}
