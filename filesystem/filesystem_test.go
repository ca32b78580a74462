package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("The backend can be swapped", t, func() {
		SetOsFs()
		So(API().Name(), ShouldEqual, "OsFs")

		SetMemMapFs()
		So(API().Name(), ShouldEqual, "MemMapFS")
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given the in-memory backend", t, func() {
		SetMemMapFs()
		fs := GacheFs{}
		dir := "/cache/resolver"
		path := filepath.Join(dir, "queries.json")

		Convey("Files written through GacheFs land in the backend", func() {
			So(fs.MkdirAll(dir, os.ModePerm), ShouldBeNil)

			f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			_, err = io.WriteString(f, `{"heat":1}`)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			contents, err := API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(contents), ShouldEqual, `{"heat":1}`)
		})
	})
}
