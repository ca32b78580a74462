package custom

import (
	"context"

	"github.com/resolver-cli/resolver/source"
	lua "github.com/yuin/gopher-lua"
)

// registerFetch injects the "fetch" global module, backed by the provider's fetcher.
//
//	fetch.get(url)              → body string
//	fetch.get(url, headers_tbl) → body string
//	fetch.challenge(url)        → aborts the call with a captcha error for url
//
// Failures abort the running call and surface as the Go error, so a challenge
// detected by the fetcher reaches the caller intact.
func registerFetch(L *lua.LState, p *Provider) {
	mod := L.NewTable()

	L.SetField(mod, "get", L.NewFunction(func(L *lua.LState) int {
		url := L.CheckString(1)

		headers := make(map[string]string)
		if tbl, ok := L.Get(2).(*lua.LTable); ok {
			tbl.ForEach(func(k, v lua.LValue) {
				headers[k.String()] = v.String()
			})
		}

		ctx := L.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		body, err := p.fetcher.Fetch(ctx, url, headers)
		if err != nil {
			p.failure = err
			L.RaiseError("fetch %s: %s", url, err.Error())
			return 0
		}

		L.Push(lua.LString(body))
		return 1
	}))

	L.SetField(mod, "challenge", L.NewFunction(func(L *lua.LState) int {
		p.failure = &source.CaptchaError{URL: L.CheckString(1)}
		L.RaiseError("%s", p.failure.Error())
		return 0
	}))

	L.SetGlobal("fetch", mod)
}
