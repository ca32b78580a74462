// Package scraper compiles and runs scripted provider modules.
package scraper

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/resolver-cli/resolver/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var bytecodeCache sync.Map

// PreCompileAndLoad runs the script at scriptPath in L. Compiled prototypes are cached by content,
// so loading the same script into many states parses it once.
func PreCompileAndLoad(L *lua.LState, scriptPath string) error {
	contents, err := filesystem.API().ReadFile(scriptPath)
	if err != nil {
		return err
	}

	sum := sha256.Sum256(contents)
	cacheKey := scriptPath + "@" + hex.EncodeToString(sum[:])

	proto, err := compile(cacheKey, scriptPath, string(contents))
	if err != nil {
		return err
	}

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}

func compile(cacheKey, name, contents string) (*lua.FunctionProto, error) {
	if cacheKey != "" {
		if cached, ok := bytecodeCache.Load(cacheKey); ok {
			return cached.(*lua.FunctionProto), nil
		}
	}

	chunk, err := parse.Parse(strings.NewReader(contents), name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	if cacheKey != "" {
		bytecodeCache.Store(cacheKey, proto)
	}
	return proto, nil
}
