package scraper

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/filesystem"
	"github.com/resolver-cli/resolver/network"
	"github.com/resolver-cli/resolver/where"
)

// Install downloads the script at remoteURL into the providers directory as <name>.lua.
// It reports whether the file changed; an identical local copy is left untouched.
func Install(ctx context.Context, fetcher network.Fetcher, remoteURL, name string) (path string, changed bool, err error) {
	body, err := fetcher.Fetch(ctx, remoteURL, nil)
	if err != nil {
		return "", false, err
	}

	if err := Check(name, body); err != nil {
		return "", false, err
	}

	path = filepath.Join(where.Providers(), name+constant.ScriptExtension)

	local, err := filesystem.API().ReadFile(path)
	if err == nil && bytes.Equal(local, body) {
		return path, false, nil
	}

	tmp := path + ".tmp"
	if err := filesystem.API().WriteFile(tmp, body, 0644); err != nil {
		return "", false, err
	}

	if err := filesystem.API().Rename(tmp, path); err != nil {
		_ = filesystem.API().Remove(tmp)
		return "", false, err
	}

	return path, true, nil
}

// Check parses and compiles a script without running it.
func Check(name string, contents []byte) error {
	if _, err := compile("", name, string(contents)); err != nil {
		return fmt.Errorf("invalid script: %w", err)
	}
	return nil
}
