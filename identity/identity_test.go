package identity

import (
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJSON(t *testing.T) {
	Convey("Given a local identity", t, func() {
		id := Local("akwam")

		Convey("It encodes as a single local key", func() {
			data, err := json.Marshal(id)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"local":{"id":"akwam"}}`)

			Convey("And decodes back to the same value", func() {
				var decoded Provider
				So(json.Unmarshal(data, &decoded), ShouldBeNil)
				So(decoded, ShouldResemble, id)
				So(decoded.IsLocal(), ShouldBeTrue)
			})
		})
	})

	Convey("Given a remote identity", t, func() {
		data, err := json.Marshal(Remote("f3b1"))
		So(err, ShouldBeNil)
		So(string(data), ShouldEqual, `{"remote":{"id":"f3b1"}}`)
	})

	Convey("Decoding rejects", t, func() {
		reject := func(input string) {
			var p Provider
			err := json.Unmarshal([]byte(input), &p)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrMalformed), ShouldBeTrue)
		}

		Convey("both keys", func() {
			reject(`{"local":{"id":"akwam"},"remote":{"id":"x"}}`)
		})
		Convey("no key", func() {
			reject(`{}`)
		})
		Convey("an unknown key", func() {
			reject(`{"plugin":{"id":"x"}}`)
		})
		Convey("an empty id", func() {
			reject(`{"local":{}}`)
		})
		Convey("null", func() {
			reject(`null`)
		})
	})

	Convey("The zero value does not encode", t, func() {
		_, err := json.Marshal(Provider{})
		So(err, ShouldNotBeNil)
	})

	Convey("Identities embed in other structures", t, func() {
		type entry struct {
			Provider Provider `json:"provider"`
		}
		var e entry
		So(json.Unmarshal([]byte(`{"provider":{"remote":{"id":"abc"}}}`), &e), ShouldBeNil)
		So(e.Provider, ShouldResemble, Remote("abc"))
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("A bare name is local", func() {
			p, err := Parse("moviebox")
			So(err, ShouldBeNil)
			So(p, ShouldResemble, Local("moviebox"))
		})

		Convey("It reads the String form", func() {
			p, err := Parse(Remote("abc").String())
			So(err, ShouldBeNil)
			So(p, ShouldResemble, Remote("abc"))
		})

		Convey("It rejects unknown kinds and empty ids", func() {
			_, err := Parse("plugin:abc")
			So(err, ShouldNotBeNil)
			_, err = Parse("remote:")
			So(err, ShouldNotBeNil)
			_, err = Parse("")
			So(err, ShouldNotBeNil)
		})
	})
}
