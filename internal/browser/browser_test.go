package browser_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cubebrowser/internal/browser"
	"github.com/san-kum/cubebrowser/internal/cube"
	"github.com/san-kum/cubebrowser/internal/cube/stock"
	"github.com/san-kum/cubebrowser/internal/plot"
	"github.com/san-kum/cubebrowser/internal/render"
	"github.com/san-kum/cubebrowser/internal/widget"
)

// recorder is a drawer that logs every draw and removal.
type recorder struct {
	id     string
	events *[]string
	fail   error
}

type recorded struct {
	r *recorder
}

func (a recorded) Remove() { *a.r.events = append(*a.r.events, "clear "+a.r.id) }

func (r *recorder) Draw(_ *render.Axes, sub *cube.Cube, _ [2]plot.Spec, _ render.Style) (plot.Artifact, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	*r.events = append(*r.events, "draw "+r.id)
	return recorded{r: r}, nil
}

func (r *recorder) String() string { return "Recorder" }

var _ = Describe("Browser", func() {
	var (
		events []string
		axes   *render.Axes
	)

	newPlot := func(id string, c *cube.Cube, opts ...plot.Option) *plot.Plot {
		p, err := plot.New(c, axes, &recorder{id: id, events: &events}, opts...)
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	BeforeEach(func() {
		events = nil
		axes = render.NewAxes("test", 20, 6)
	})

	Describe("cache sharing", func() {
		It("shares one cache between plots of the same cube", func() {
			c := stock.Realistic3D()
			p1, p2 := newPlot("a", c), newPlot("b", c)
			_, err := browser.New([]*plot.Plot{p1, p2})
			Expect(err).NotTo(HaveOccurred())
			Expect(p1.Cache()).To(BeIdenticalTo(p2.Cache()))
		})

		It("keeps separate caches for distinct but equal cubes", func() {
			c1, c2 := stock.Realistic3D(), stock.Realistic3D()
			p1, p2 := newPlot("a", c1), newPlot("b", c2)
			b, err := browser.New([]*plot.Plot{p1, p2})
			Expect(err).NotTo(HaveOccurred())
			Expect(p1.Cache()).NotTo(BeIdenticalTo(p2.Cache()))

			cache, ok := b.CacheFor(c1)
			Expect(ok).To(BeTrue())
			Expect(cache).To(BeIdenticalTo(p1.Cache()))
			cache, ok = b.CacheFor(c2)
			Expect(ok).To(BeTrue())
			Expect(cache).To(BeIdenticalTo(p2.Cache()))
		})

		It("keeps sub-slices apart when one alias indexes different dimensions", func() {
			data := make([]float64, 64)
			for i := range data {
				data[i] = float64(i)
			}
			box, err := cube.New("box", []int{4, 4, 4}, data)
			Expect(err).NotTo(HaveOccurred())

			q1 := newPlot("q1", box)
			Expect(q1.Alias("s", 0)).To(Succeed())
			q2 := newPlot("q2", box, plot.WithCoords(plot.Dim(2), plot.Dim(0)))
			Expect(q2.Alias("s", 1)).To(Succeed())

			b, err := browser.New([]*plot.Plot{q1, q2})
			Expect(err).NotTo(HaveOccurred())
			Expect(q1.Cache()).To(BeIdenticalTo(q2.Cache()))
			_, err = b.Display()
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Notify("s", 2)).To(Succeed())

			want, err := box.Slice([]cube.Selector{cube.Full(), cube.Index(2), cube.Full()})
			Expect(err).NotTo(HaveOccurred())
			Expect(q2.Subcube()).NotTo(BeIdenticalTo(q1.Subcube()))
			Expect(q2.Subcube().Data()).To(Equal(want.Data()))
			Expect(q2.Subcube().Data()[0]).To(Equal(8.0))
			Expect(q1.Subcube().Data()[0]).To(Equal(32.0))
		})
	})

	Describe("mappings", func() {
		It("builds nothing for a plot without slider dimensions", func() {
			sub, err := stock.Realistic3D().Slice([]cube.Selector{cube.Index(0), cube.Full(), cube.Full()})
			Expect(err).NotTo(HaveOccurred())
			p := newPlot("a", sub)
			b, err := browser.New([]*plot.Plot{p})
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Names()).To(BeEmpty())
			Expect(b.NamesFor(p)).To(BeNil())
			Expect(b.Form().Children).To(BeEmpty())
		})

		It("rejects an alias axis without a name", func() {
			c := stock.Realistic3D()
			p := newPlot("a", c)
			Expect(p.Alias("", 0)).To(Succeed())
			_, err := browser.New([]*plot.Plot{p})
			Expect(err).To(MatchError(plot.ErrMissingMetadata))
			Expect(err.Error()).To(ContainSubstring(`cube "air_potential_temperature" has no meta-data for dimension 0`))
		})

		It("names a slider after the dimension coordinate", func() {
			c := stock.Realistic3D()
			p := newPlot("a", c)
			b, err := browser.New([]*plot.Plot{p})
			Expect(err).NotTo(HaveOccurred())

			tc, err := c.Coord("time")
			Expect(err).NotTo(HaveOccurred())
			axis, ok := b.Axis("time")
			Expect(ok).To(BeTrue())
			Expect(plot.Equal(axis, plot.NewDefn(0, "time", 7, tc.Lenient()))).To(BeTrue())
			Expect(b.PlotsFor("time")).To(Equal([]*plot.Plot{p}))
			Expect(b.NamesFor(p)).To(Equal([]string{"time"}))
		})

		It("names a slider after an alias", func() {
			p := newPlot("a", stock.Realistic3D())
			Expect(p.Alias("wibble", 0)).To(Succeed())
			b, err := browser.New([]*plot.Plot{p})
			Expect(err).NotTo(HaveOccurred())

			axis, ok := b.Axis("wibble")
			Expect(ok).To(BeTrue())
			Expect(axis).To(Equal(plot.NewAlias(0, "wibble", 7)))
			Expect(b.Names()).To(Equal([]string{"wibble"}))
		})

		It("merges compatible axes across plots and cubes", func() {
			c3 := stock.Realistic3D()
			c4 := stock.WithLevels(stock.Realistic3D(), 5)
			p1, p2 := newPlot("a", c3), newPlot("b", c4)
			b, err := browser.New([]*plot.Plot{p1, p2})
			Expect(err).NotTo(HaveOccurred())

			Expect(b.Names()).To(Equal([]string{"model_level_number", "time"}))
			Expect(b.PlotsFor("time")).To(Equal([]*plot.Plot{p1, p2}))
			Expect(b.PlotsFor("model_level_number")).To(Equal([]*plot.Plot{p2}))
			Expect(b.NamesFor(p2)).To(Equal([]string{"model_level_number", "time"}))

			axis, _ := b.Axis("time")
			Expect(axis.Dim).To(Equal(0), "the first sighting defines the axis")
		})

		DescribeTable("shares a slider across leniently equal time coordinates",
			func(alter func(tc *cube.Coord)) {
				c1, c2 := stock.Realistic3D(), stock.Realistic3D()
				tc, err := c2.Coord("time")
				Expect(err).NotTo(HaveOccurred())
				alter(tc)

				p1, p2 := newPlot("a", c1), newPlot("b", c2)
				b, err := browser.New([]*plot.Plot{p1, p2})
				Expect(err).NotTo(HaveOccurred())
				Expect(b.Names()).To(Equal([]string{"time"}))
				Expect(b.PlotsFor("time")).To(Equal([]*plot.Plot{p1, p2}))
			},
			Entry("bounds", func(tc *cube.Coord) {
				Expect(tc.GuessBounds()).To(Succeed())
			}),
			Entry("var name", func(tc *cube.Coord) {
				tc.VarName = "t"
			}),
			Entry("attributes", func(tc *cube.Coord) {
				tc.Attributes = map[string]string{"calendar": "360_day"}
			}),
		)

		It("merges alias axes regardless of dimension", func() {
			p1 := newPlot("a", stock.Realistic3D())
			Expect(p1.Alias("step", 0)).To(Succeed())
			p2 := newPlot("b", stock.WithLevels(stock.Realistic3D(), 7))
			Expect(p2.AliasAll(map[string]int{"step": 1, "level": 0})).To(Succeed())

			b, err := browser.New([]*plot.Plot{p1, p2})
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Names()).To(Equal([]string{"level", "step"}))
			Expect(b.PlotsFor("step")).To(Equal([]*plot.Plot{p1, p2}))
			axis, _ := b.Axis("step")
			Expect(axis).To(Equal(plot.NewAlias(0, "step", 7)))
		})

		DescribeTable("rejects incompatible axes",
			func(other func() *plot.Plot) {
				p1 := newPlot("a", stock.Realistic3D())
				_, err := browser.New([]*plot.Plot{p1, other()})
				Expect(err).To(MatchError(browser.ErrIncompatibleAxis))
				Expect(err.Error()).To(ContainSubstring(`has an incompatible axis "time"`))
			},
			Entry("different size", func() *plot.Plot {
				c, err := stock.Realistic3D().Slice([]cube.Selector{cube.Range(1, 7), cube.Full(), cube.Full()})
				Expect(err).NotTo(HaveOccurred())
				return newPlot("b", c)
			}),
			Entry("alias against definition", func() *plot.Plot {
				c := stock.Realistic3D()
				Expect(c.RemoveCoord("time")).To(Succeed())
				p := newPlot("b", c)
				Expect(p.Alias("time", 0)).To(Succeed())
				return p
			}),
			Entry("alias on another extent", func() *plot.Plot {
				c := stock.Realistic3D()
				Expect(c.RemoveCoord("time")).To(Succeed())
				p := newPlot("b", c, plot.WithCoords(plot.Dim(0), plot.Dim(1)))
				Expect(p.Alias("time", 2)).To(Succeed())
				return p
			}),
		)

		It("snapshots aliases at construction", func() {
			p := newPlot("a", stock.Realistic3D())
			b, err := browser.New([]*plot.Plot{p})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Alias("hour", 0)).To(Succeed())
			Expect(b.Names()).To(Equal([]string{"time"}))
		})
	})

	Describe("controls", func() {
		It("builds one slider per name in sorted order", func() {
			c := stock.WithLevels(stock.Realistic3D(), 5)
			b, err := browser.New([]*plot.Plot{newPlot("a", c), newPlot("b", c)})
			Expect(err).NotTo(HaveOccurred())

			children := b.Form().Children
			Expect(children).To(HaveLen(2))
			Expect(children[0].Description).To(Equal("model_level_number"))
			Expect(children[0].Max).To(Equal(4))
			Expect(children[1].Description).To(Equal("time"))
			Expect(children[1].Max).To(Equal(6))
			for _, s := range children {
				Expect(s.Min).To(Equal(0))
				Expect(s.Value()).To(Equal(0))
			}
		})
	})

	Describe("dispatch", func() {
		var (
			c3, c4     *cube.Cube
			p1, p2, p3 *plot.Plot
			b          *browser.Browser
		)

		BeforeEach(func() {
			c3 = stock.Realistic3D()
			c4 = stock.WithLevels(stock.Realistic3D(), 5)
			sub, err := c3.Slice([]cube.Selector{cube.Index(0), cube.Full(), cube.Full()})
			Expect(err).NotTo(HaveOccurred())

			p1 = newPlot("a", c3)
			p2 = newPlot("b", c4)
			p3 = newPlot("still", sub)
			b, err = browser.New([]*plot.Plot{p1, p2, p3})
			Expect(err).NotTo(HaveOccurred())
		})

		It("renders every plot once on display", func() {
			Expect(b.State()).To(Equal(browser.StateBuilt))
			form, err := b.Display()
			Expect(err).NotTo(HaveOccurred())
			Expect(form).To(BeIdenticalTo(b.Form()))
			Expect(events).To(Equal([]string{"draw a", "draw b", "draw still"}))
			Expect(b.State()).To(Equal(browser.StateDisplayed))
			Expect(p3.LastValues()).To(BeEmpty())
			Expect(p2.LastValues()).To(Equal(map[string]int{"model_level_number": 0, "time": 0}))

			_, err = b.Display()
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(3))
		})

		It("clears all affected plots before drawing any", func() {
			_, err := b.Display()
			Expect(err).NotTo(HaveOccurred())
			events = nil

			Expect(b.Notify("time", 3)).To(Succeed())
			Expect(events).To(Equal([]string{"clear a", "clear b", "draw a", "draw b"}))
			Expect(b.State()).To(Equal(browser.StateReactive))
			Expect(p1.LastValues()).To(Equal(map[string]int{"time": 3}))
			Expect(p2.LastValues()).To(Equal(map[string]int{"model_level_number": 0, "time": 3}))
		})

		It("redraws only the plots depending on the slider", func() {
			_, err := b.Display()
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Notify("time", 2)).To(Succeed())
			events = nil

			Expect(b.Notify("model_level_number", 4)).To(Succeed())
			Expect(events).To(Equal([]string{"clear b", "draw b"}))
			Expect(p2.LastValues()).To(Equal(map[string]int{"model_level_number": 4, "time": 2}))

			want, err := c4.Slice([]cube.Selector{cube.Index(4), cube.Index(2), cube.Full(), cube.Full()})
			Expect(err).NotTo(HaveOccurred())
			Expect(p2.Subcube().Equal(want)).To(BeTrue())
		})

		It("ignores a slider set to its current value", func() {
			_, err := b.Display()
			Expect(err).NotTo(HaveOccurred())
			events = nil
			Expect(b.Notify("time", 0)).To(Succeed())
			Expect(events).To(BeEmpty())
		})

		It("notifies handlers after redrawing", func() {
			var got []string
			Expect(b.Register("time", func(name string, value int) error {
				got = append(got, fmt.Sprintf("%s=%d after %d events", name, value, len(events)))
				return nil
			})).To(Succeed())

			Expect(b.Notify("time", 5)).To(Succeed())
			Expect(got).To(Equal([]string{"time=5 after 2 events"}))
		})

		It("rejects unknown sliders", func() {
			Expect(b.Register("nope", nil)).To(MatchError(browser.ErrUnknownSlider))
			Expect(b.Notify("nope", 1)).To(MatchError(browser.ErrUnknownSlider))

			foreign := widget.NewIntSlider(0, 3, "foreign")
			Expect(b.OnChange(&widget.Change{Owner: foreign, New: 1})).To(MatchError(browser.ErrUnknownSlider))
		})

		It("rejects out of range values without redrawing", func() {
			Expect(b.Notify("time", 7)).To(MatchError(widget.ErrOutOfRange))
			Expect(events).To(BeEmpty())
		})

		It("reuses cached sub-slices", func() {
			_, err := b.Display()
			Expect(err).NotTo(HaveOccurred())
			first := p1.Subcube()
			Expect(b.Notify("time", 1)).To(Succeed())
			Expect(b.Notify("time", 0)).To(Succeed())

			hits, misses := p1.Cache().Stats()
			Expect(misses).To(Equal(2))
			Expect(hits).To(Equal(1))
			Expect(p1.Subcube()).To(BeIdenticalTo(first))
		})

		It("profiles a plot along a slider", func() {
			profile, err := b.Profile(p1, "time")
			Expect(err).NotTo(HaveOccurred())
			Expect(profile).To(HaveLen(7))
			for i, v := range profile {
				sub, err := c3.Slice([]cube.Selector{cube.Index(i), cube.Full(), cube.Full()})
				Expect(err).NotTo(HaveOccurred())
				Expect(v).To(BeNumerically("~", sub.Mean(), 1e-9))
			}

			_, err = b.Profile(p3, "time")
			Expect(err).To(MatchError(browser.ErrUnknownSlider))
		})
	})

	It("returns render failures", func() {
		boom := errors.New("boom")
		p, err := plot.New(stock.Realistic3D(), axes, &recorder{id: "x", events: &events, fail: boom})
		Expect(err).NotTo(HaveOccurred())
		b, err := browser.New([]*plot.Plot{p})
		Expect(err).NotTo(HaveOccurred())

		_, err = b.Display()
		Expect(err).To(MatchError(boom))
		Expect(b.State()).To(Equal(browser.StateBuilt))
	})

	It("draws onto shared axes", func() {
		c := stock.Realistic3D()
		shared := render.NewAxes("shared", 20, 6)
		p1, err := plot.NewContourf(c, shared)
		Expect(err).NotTo(HaveOccurred())
		p2, err := plot.NewContour(c, shared)
		Expect(err).NotTo(HaveOccurred())
		b, err := browser.New([]*plot.Plot{p1, p2})
		Expect(err).NotTo(HaveOccurred())

		_, err = b.Display()
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Notify("time", 4)).To(Succeed())
		Expect(shared.Kinds()).To(Equal([]string{"contourf", "contour"}))
	})
})
