package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("Given provider names typed by a user", t, func() {
		Convey("Unsafe characters become underscores", func() {
			So(SanitizeFilename("egy:best?"), ShouldEqual, "egy_best")
		})

		Convey("Runs of separators collapse", func() {
			So(SanitizeFilename("my  new   provider"), ShouldEqual, "my_new_provider")
			So(SanitizeFilename("a__b"), ShouldEqual, "a_b")
		})

		Convey("Leading and trailing separators are trimmed", func() {
			So(SanitizeFilename("-moviebox-"), ShouldEqual, "moviebox")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify picks the noun form", t, func() {
		So(Quantify(1, "episode", "episodes"), ShouldEqual, "1 episode")
		So(Quantify(0, "episode", "episodes"), ShouldEqual, "0 episodes")
		So(Quantify(12, "episode", "episodes"), ShouldEqual, "12 episodes")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize upper-cases the first rune only", t, func() {
		So(Capitalize("search queries"), ShouldEqual, "Search queries")
		So(Capitalize("émission"), ShouldEqual, "Émission")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem drops the directory and extension", t, func() {
		So(FileStem("/home/u/.config/resolver/providers/akwam.lua"), ShouldEqual, "akwam")
		So(FileStem("https://scripts.example/egybest.lua"), ShouldEqual, "egybest")
		So(FileStem("akwam"), ShouldEqual, "akwam")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max and Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(4, 5, 2), ShouldEqual, 2)
		So(Max(-3, -7), ShouldEqual, -3)
		So(Max[int](), ShouldEqual, 0)
		So(Min("b", "a"), ShouldEqual, "a")
	})
}
