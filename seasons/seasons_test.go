package seasons

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func episodes(n int) []source.Episode {
	return lo.Times(n, func(i int) source.Episode { return source.Episode{Number: i + 1} })
}

// network simulates per-season latency and results.
func network(counts map[int]int, failing map[int]error) FetchFunc {
	return func(ctx context.Context, n int) ([]source.Episode, error) {
		select {
		case <-time.After(time.Duration(rand.Intn(20)) * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if err, ok := failing[n]; ok {
			return nil, err
		}
		return episodes(counts[n]), nil
	}
}

func TestGather(t *testing.T) {
	ctx := context.Background()
	const showURL = "https://site.example/show/1"

	Convey("Given seasons with 3, 0 and 5 episodes", t, func() {
		fetch := network(map[int]int{1: 3, 2: 0, 3: 5}, nil)

		Convey("Only non-empty seasons are returned, in order", func() {
			for i := 0; i < 20; i++ {
				seasons, err := Gather(ctx, showURL, 3, 0, fetch)
				So(err, ShouldBeNil)
				So(seasons, ShouldHaveLength, 2)
				So(seasons[0].Number, ShouldEqual, 1)
				So(seasons[0].Episodes, ShouldHaveLength, 3)
				So(seasons[1].Number, ShouldEqual, 3)
				So(seasons[1].Episodes, ShouldHaveLength, 5)
				So(seasons[1].URL, ShouldEqual, showURL)
			}
		})
	})

	Convey("Given a season whose fetch fails", t, func() {
		boom := errors.New("connection reset")
		fetch := network(map[int]int{1: 3, 3: 5}, map[int]error{2: boom})

		Convey("The whole show fails", func() {
			seasons, err := Gather(ctx, showURL, 3, 0, fetch)
			So(seasons, ShouldBeNil)
			So(errors.Is(err, boom), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "season 2")
		})
	})

	Convey("Given a failure while siblings are slow", t, func() {
		var cancelled atomic.Int32
		fetch := func(ctx context.Context, n int) ([]source.Episode, error) {
			if n == 1 {
				return nil, errors.New("503")
			}
			select {
			case <-time.After(5 * time.Second):
				return episodes(1), nil
			case <-ctx.Done():
				cancelled.Add(1)
				return nil, ctx.Err()
			}
		}

		Convey("The siblings are cancelled promptly", func() {
			start := time.Now()
			_, err := Gather(ctx, showURL, 4, 0, fetch)
			So(err, ShouldNotBeNil)
			So(time.Since(start), ShouldBeLessThan, 2*time.Second)
			So(cancelled.Load(), ShouldBeLessThanOrEqualTo, 3)
		})
	})

	Convey("Given a concurrency limit", t, func() {
		var inFlight, peak atomic.Int32
		fetch := func(ctx context.Context, n int) ([]source.Episode, error) {
			now := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				old := peak.Load()
				if now <= old || peak.CompareAndSwap(old, now) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return episodes(1), nil
		}

		Convey("No more than limit fetches run at once", func() {
			seasons, err := Gather(ctx, showURL, 12, 3, fetch)
			So(err, ShouldBeNil)
			So(seasons, ShouldHaveLength, 12)
			So(peak.Load(), ShouldBeLessThanOrEqualTo, 3)
		})
	})

	Convey("A cancelled caller context fails the call", t, func() {
		cancelledCtx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Gather(cancelledCtx, showURL, 2, 0, network(map[int]int{1: 1, 2: 1}, nil))
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})

	Convey("Zero seasons is an empty show", t, func() {
		seasons, err := Gather(ctx, showURL, 0, 0, nil)
		So(err, ShouldBeNil)
		So(seasons, ShouldBeEmpty)
	})
}
