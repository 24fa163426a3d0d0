package player

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/castplay/internal/cast"
	"github.com/san-kum/castplay/internal/clock"
	"github.com/san-kum/castplay/internal/fetch"
	"github.com/san-kum/castplay/internal/timeline"
)

// Frames after batching: 0.5 "a", 1 "bc", 2.5 "d", 4 "e".
const demo = `{"version":2,"width":80,"height":24,"title":"demo"}
[0.5,"o","a"]
[1,"o","b"]
[1,"i","x"]
[1,"o","c"]
[2.5,"o","d"]
[4,"o","e"]
`

type failingFetcher struct{ err error }

func (f failingFetcher) Fetch(context.Context, string, fetch.Options) ([]byte, error) {
	return nil, f.err
}

// leakyClock hands out timers that cannot be cancelled, like a wake that
// was already queued on the event loop when playback paused.
type leakyClock struct{ *clock.Fake }

type noStop struct{}

func (noStop) Stop() bool { return false }

func (c leakyClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.Fake.AfterFunc(d, f)
	return noStop{}
}

var _ = Describe("Driver", func() {
	var (
		fake     *clock.Fake
		fed      []string
		finished int
		ports    Ports
		drv      *Driver
		ctx      context.Context
	)

	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	BeforeEach(func() {
		ctx = context.Background()
		fake = clock.NewFake()
		fed = nil
		finished = 0
		ports = Ports{
			Feed:     func(s string) { fed = append(fed, s) },
			Clock:    fake,
			OnFinish: func() { finished++ },
			Fetcher:  fetch.Bytes(demo),
			Logger:   slog.New(slog.DiscardHandler),
		}
		drv = New(Options{URL: "demo.cast"}, ports)
	})

	Describe("loading", func() {
		It("reports dimensions and duration", func() {
			info, err := drv.Init(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(info).To(Equal(Info{Cols: 80, Rows: 24, Duration: 4}))
			Expect(drv.State()).To(Equal(Stopped))
			Expect(drv.Header().Title).To(Equal("demo"))
			Expect(fed).To(BeEmpty())
		})

		It("rejects table operations before loading", func() {
			_, err := drv.PauseOrResume()
			Expect(err).To(MatchError(ErrNotLoaded))
			Expect(drv.Seek(At(1))).To(MatchError(ErrNotLoaded))
			_, err = drv.Poster(1)
			Expect(err).To(MatchError(ErrNotLoaded))
			Expect(drv.Duration()).To(BeZero())
		})

		It("surfaces transport errors", func() {
			ports.Fetcher = failingFetcher{err: &fetch.TransportError{URL: "demo.cast", Status: 404, Message: "Not Found"}}
			drv = New(Options{URL: "demo.cast"}, ports)

			_, err := drv.Init(ctx)
			var te *fetch.TransportError
			Expect(errors.As(err, &te)).To(BeTrue())
			Expect(te.Status).To(Equal(404))
			Expect(drv.Table()).To(BeNil())
		})

		It("surfaces format errors without committing a table", func() {
			ports.Fetcher = fetch.Bytes("{\"version\":2,\"width\":80,\"height\":24}\n[0,\"o\",\"a\"]\n[oops\n")
			drv = New(Options{URL: "demo.cast"}, ports)

			err := drv.Start(ctx)
			var fe *cast.FormatError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Line).To(Equal(3))
			Expect(drv.Table()).To(BeNil())
			Expect(fed).To(BeEmpty())
		})
	})

	Describe("scheduling", func() {
		It("emits every frame once, in order, on time", func() {
			var at []time.Duration
			start := fake.Now()
			ports.Feed = func(s string) {
				fed = append(fed, s)
				at = append(at, fake.Now().Sub(start))
			}
			drv = New(Options{URL: "demo.cast"}, ports)

			Expect(drv.Start(ctx)).To(Succeed())
			Expect(drv.State()).To(Equal(Playing))
			fake.Advance(10 * time.Second)

			Expect(fed).To(Equal([]string{"a", "bc", "d", "e"}))
			Expect(at).To(Equal([]time.Duration{ms(500), ms(1000), ms(2500), ms(4000)}))
			Expect(finished).To(Equal(1))
			Expect(drv.State()).To(Equal(Finished))
			Expect(drv.CurrentTime()).To(BeNumerically("~", 4, 1e-9))
			Expect(fake.Pending()).To(BeZero())
		})

		It("catches up after a late wake", func() {
			Expect(drv.Start(ctx)).To(Succeed())

			fake.Jump(3 * time.Second)
			fake.Fire()
			Expect(fed).To(Equal([]string{"a", "bc", "d"}))
			Expect(fake.Pending()).To(Equal(1))

			fake.Advance(time.Second)
			Expect(fed).To(Equal([]string{"a", "bc", "d", "e"}))
			Expect(finished).To(Equal(1))
		})

		It("pauses and resumes without losing time", func() {
			Expect(drv.Start(ctx)).To(Succeed())
			fake.Advance(ms(1200))
			Expect(fed).To(Equal([]string{"a", "bc"}))

			playing, err := drv.PauseOrResume()
			Expect(err).NotTo(HaveOccurred())
			Expect(playing).To(BeFalse())
			Expect(drv.State()).To(Equal(Paused))
			Expect(drv.CurrentTime()).To(BeNumerically("~", 1.2, 1e-9))
			Expect(fake.Pending()).To(BeZero())

			fake.Advance(time.Minute)
			Expect(fed).To(HaveLen(2))
			Expect(drv.CurrentTime()).To(BeNumerically("~", 1.2, 1e-9))

			playing, err = drv.PauseOrResume()
			Expect(err).NotTo(HaveOccurred())
			Expect(playing).To(BeTrue())
			fake.Advance(ms(1299))
			Expect(fed).To(HaveLen(2))
			fake.Advance(ms(1))
			Expect(fed).To(Equal([]string{"a", "bc", "d"}))
		})

		It("ignores a wake that was queued before a pause", func() {
			ports.Clock = leakyClock{fake}
			drv = New(Options{URL: "demo.cast"}, ports)

			Expect(drv.Start(ctx)).To(Succeed())
			fake.Advance(ms(600))
			Expect(fed).To(Equal([]string{"a"}))

			_, err := drv.PauseOrResume()
			Expect(err).NotTo(HaveOccurred())
			fake.Advance(10 * time.Second)
			Expect(fed).To(Equal([]string{"a"}))
			Expect(drv.State()).To(Equal(Paused))

			_, err = drv.PauseOrResume()
			Expect(err).NotTo(HaveOccurred())
			fake.Advance(ms(400))
			Expect(fed).To(Equal([]string{"a", "bc"}))
		})

		It("notifies completion exactly once", func() {
			Expect(drv.Start(ctx)).To(Succeed())
			fake.Advance(time.Minute)
			fake.Advance(time.Minute)
			Expect(finished).To(Equal(1))
		})

		It("replays from the beginning when resumed after the end", func() {
			Expect(drv.Start(ctx)).To(Succeed())
			fake.Advance(5 * time.Second)
			fed = nil

			playing, err := drv.PauseOrResume()
			Expect(err).NotTo(HaveOccurred())
			Expect(playing).To(BeTrue())
			Expect(drv.CurrentTime()).To(BeNumerically("~", 0, 1e-9))

			fake.Advance(5 * time.Second)
			Expect(fed).To(Equal([]string{ResetSequence, "a", "bc", "d", "e"}))
			Expect(finished).To(Equal(2))
		})

		It("finishes immediately on an empty recording", func() {
			ports.Fetcher = fetch.Bytes(`{"version":2,"width":80,"height":24}`)
			drv = New(Options{URL: "empty.cast"}, ports)

			Expect(drv.Start(ctx)).To(Succeed())
			Expect(finished).To(Equal(1))
			Expect(drv.State()).To(Equal(Finished))
			Expect(drv.CurrentTime()).To(BeZero())
		})

		It("starts at the effective start position", func() {
			drv = New(Options{URL: "demo.cast", StartAt: timeline.StartAt{Value: 50, Percent: true}}, ports)

			Expect(drv.Start(ctx)).To(Succeed())
			Expect(fed).To(Equal([]string{"a", "bc"}))
			Expect(drv.CurrentTime()).To(BeNumerically("~", 2, 1e-9))

			fake.Advance(ms(500))
			Expect(fed).To(Equal([]string{"a", "bc", "d"}))
		})

		It("clamps a non-finite start position to the beginning", func() {
			drv = New(Options{URL: "demo.cast", StartAt: timeline.StartAt{Value: math.NaN()}}, ports)

			Expect(drv.Start(ctx)).To(Succeed())
			Expect(fed).To(BeEmpty())
			Expect(drv.CurrentTime()).To(BeZero())

			fake.Advance(ms(500))
			Expect(fed).To(Equal([]string{"a"}))
		})
	})

	Describe("seeking", func() {
		BeforeEach(func() {
			_, err := drv.Init(ctx)
			Expect(err).NotTo(HaveOccurred())
		})

		It("fast-forwards without delay", func() {
			Expect(drv.Seek(At(2))).To(Succeed())
			Expect(fed).To(Equal([]string{"a", "bc"}))
			Expect(drv.Seek(At(3))).To(Succeed())
			Expect(fed).To(Equal([]string{"a", "bc", "d"}))
			Expect(drv.State()).To(Equal(Stopped))
		})

		It("resets and replays exactly the frames up to the target when seeking back", func() {
			Expect(drv.Seek(At(3))).To(Succeed())
			fed = nil

			Expect(drv.Seek(At(1))).To(Succeed())
			Expect(fed).To(Equal([]string{ResetSequence, "a", "bc"}))

			fed = nil
			Expect(drv.Seek(At(0.2))).To(Succeed())
			Expect(fed).To(Equal([]string{ResetSequence}))
		})

		It("does not reset when seeking to the current position", func() {
			Expect(drv.Seek(At(2.5))).To(Succeed())
			fed = nil
			Expect(drv.Seek(At(2.5))).To(Succeed())
			Expect(fed).To(BeEmpty())
		})

		DescribeTable("reports the target as the current time",
			func(target Target, expected float64) {
				Expect(drv.Seek(target)).To(Succeed())
				Expect(drv.CurrentTime()).To(BeNumerically("~", expected, 1e-9))
			},
			Entry("start", At(0), 0.0),
			Entry("between frames", At(1.7), 1.7),
			Entry("on a frame", At(2.5), 2.5),
			Entry("end", At(4), 4.0),
			Entry("past the end", At(99), 4.0),
			Entry("before the start", At(-3), 0.0),
			Entry("percentage", Percent(25), 1.0),
			Entry("nudge forward", Forward, 4.0),
			Entry("far nudge forward", ForwardFar, 0.4),
			Entry("not a number", At(math.NaN()), 0.0),
			Entry("infinite", At(math.Inf(1)), 4.0),
		)

		It("keeps the current position for a NaN target", func() {
			Expect(drv.Seek(At(2.5))).To(Succeed())
			fed = nil

			Expect(drv.Seek(At(math.NaN()))).To(Succeed())
			Expect(fed).To(BeEmpty())
			Expect(drv.CurrentTime()).To(BeNumerically("~", 2.5, 1e-9))

			Expect(drv.Seek(Percent(math.NaN()))).To(Succeed())
			Expect(drv.CurrentTime()).To(BeNumerically("~", 2.5, 1e-9))
		})

		It("resolves nudges against the paused position", func() {
			Expect(drv.Seek(At(3))).To(Succeed())
			Expect(drv.Seek(Back)).To(Succeed())
			Expect(drv.CurrentTime()).To(BeZero())

			Expect(drv.Seek(At(3))).To(Succeed())
			Expect(drv.Seek(BackFar)).To(Succeed())
			Expect(drv.CurrentTime()).To(BeNumerically("~", 2.6, 1e-9))
		})

		It("keeps playing after a seek during playback", func() {
			Expect(drv.Start(ctx)).To(Succeed())
			fake.Advance(ms(3000))
			Expect(fed).To(Equal([]string{"a", "bc", "d"}))
			fed = nil

			Expect(drv.Seek(Back)).To(Succeed())
			Expect(drv.State()).To(Equal(Playing))
			Expect(fed).To(Equal([]string{ResetSequence}))

			fake.Advance(ms(500))
			Expect(fed).To(Equal([]string{ResetSequence, "a"}))
		})

		It("finishes when a running seek reaches the end", func() {
			Expect(drv.Start(ctx)).To(Succeed())
			fake.Advance(ms(1200))
			Expect(drv.Seek(Forward)).To(Succeed())
			Expect(fed).To(Equal([]string{"a", "bc", "d", "e"}))
			Expect(drv.State()).To(Equal(Finished))
			Expect(finished).To(Equal(1))
		})

		It("leaves a finished recording paused at the target", func() {
			Expect(drv.Start(ctx)).To(Succeed())
			fake.Advance(time.Minute)
			Expect(drv.Seek(At(1))).To(Succeed())
			Expect(drv.State()).To(Equal(Paused))

			fed = nil
			_, err := drv.PauseOrResume()
			Expect(err).NotTo(HaveOccurred())
			fake.Advance(ms(1500))
			Expect(fed).To(Equal([]string{"d"}))
		})
	})

	Describe("posters", func() {
		It("collects frames strictly before the time without moving playback", func() {
			_, err := drv.Init(ctx)
			Expect(err).NotTo(HaveOccurred())

			poster, err := drv.Poster(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(poster).To(Equal([]string{"a"}))

			poster, err = drv.Poster(1.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(poster).To(Equal([]string{"a", "bc"}))

			poster, err = drv.Poster(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(poster).To(BeEmpty())
			Expect(fed).To(BeEmpty())
		})
	})

	Describe("stopping", func() {
		It("cancels the pending wake and releases the driver", func() {
			Expect(drv.Start(ctx)).To(Succeed())
			fake.Advance(ms(600))
			drv.Stop()

			Expect(fake.Pending()).To(BeZero())
			fake.Advance(time.Minute)
			Expect(fed).To(Equal([]string{"a"}))
			Expect(drv.State()).To(Equal(Stopped))
			Expect(finished).To(BeZero())

			_, err := drv.PauseOrResume()
			Expect(err).To(MatchError(ErrReleased))
			Expect(drv.Seek(At(0))).To(MatchError(ErrReleased))
			Expect(drv.Start(ctx)).To(MatchError(ErrReleased))
			_, err = drv.Init(ctx)
			Expect(err).To(MatchError(ErrReleased))
			drv.Stop()
		})

		It("drops a queued wake after stop", func() {
			ports.Clock = leakyClock{fake}
			drv = New(Options{URL: "demo.cast"}, ports)

			Expect(drv.Start(ctx)).To(Succeed())
			drv.Stop()
			fake.Advance(time.Minute)
			Expect(fed).To(BeEmpty())
		})
	})
})
