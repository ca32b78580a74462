package scraper

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/resolver-cli/resolver/filesystem"
	"github.com/resolver-cli/resolver/where"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

type fakeFetcher map[string]string

func (f fakeFetcher) Fetch(_ context.Context, url string, _ map[string]string) ([]byte, error) {
	body, ok := f[url]
	if !ok {
		return nil, errors.New("not found: " + url)
	}
	return []byte(body), nil
}

const script = `Answer = 40 + 2`

func TestPreCompileAndLoad(t *testing.T) {
	Convey("Given a script on disk", t, func() {
		filesystem.SetMemMapFs()
		path := filepath.Join(where.Providers(), "answer.lua")
		So(filesystem.API().WriteFile(path, []byte(script), 0o644), ShouldBeNil)

		Convey("It runs in every state it is loaded into", func() {
			for range 2 {
				L := lua.NewState()
				So(PreCompileAndLoad(L, path), ShouldBeNil)
				So(L.GetGlobal("Answer").String(), ShouldEqual, "42")
				L.Close()
			}
		})

		Convey("Changed contents are compiled again", func() {
			So(filesystem.API().WriteFile(path, []byte(`Answer = 7`), 0o644), ShouldBeNil)
			L := lua.NewState()
			defer L.Close()
			So(PreCompileAndLoad(L, path), ShouldBeNil)
			So(L.GetGlobal("Answer").String(), ShouldEqual, "7")
		})

		Convey("Syntax errors are reported", func() {
			So(filesystem.API().WriteFile(path, []byte(`Answer = = 1`), 0o644), ShouldBeNil)
			L := lua.NewState()
			defer L.Close()
			So(PreCompileAndLoad(L, path), ShouldNotBeNil)
		})

		Convey("A missing file is an error", func() {
			L := lua.NewState()
			defer L.Close()
			So(PreCompileAndLoad(L, path+".missing"), ShouldNotBeNil)
		})
	})
}

func TestInstall(t *testing.T) {
	Convey("Given a remote script", t, func() {
		filesystem.SetMemMapFs()
		ctx := context.Background()
		fetcher := fakeFetcher{
			"https://scripts.example/akwam.lua":  script,
			"https://scripts.example/broken.lua": `function (`,
		}

		Convey("It is written to the providers directory", func() {
			path, changed, err := Install(ctx, fetcher, "https://scripts.example/akwam.lua", "akwam")
			So(err, ShouldBeNil)
			So(changed, ShouldBeTrue)
			So(path, ShouldEqual, filepath.Join(where.Providers(), "akwam.lua"))

			contents, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(contents), ShouldEqual, script)

			Convey("Installing the same content again changes nothing", func() {
				_, changed, err := Install(ctx, fetcher, "https://scripts.example/akwam.lua", "akwam")
				So(err, ShouldBeNil)
				So(changed, ShouldBeFalse)
			})
		})

		Convey("Invalid scripts are rejected before touching the disk", func() {
			_, _, err := Install(ctx, fetcher, "https://scripts.example/broken.lua", "broken")
			So(err, ShouldNotBeNil)

			exists, _ := filesystem.API().Exists(filepath.Join(where.Providers(), "broken.lua"))
			So(exists, ShouldBeFalse)
		})

		Convey("Fetch failures are returned", func() {
			_, _, err := Install(ctx, fetcher, "https://scripts.example/missing.lua", "missing")
			So(err, ShouldNotBeNil)
		})
	})
}
