package field_test

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/starfield/internal/field"
)

type nopSurface struct{ w, h int }

func (s *nopSurface) Resize(w, h int)                                          { s.w, s.h = w, h }
func (s *nopSurface) SetScale(float64)                                         {}
func (s *nopSurface) Clear()                                                   {}
func (s *nopSurface) FillCircle(x, y, r, alpha float64)                        {}
func (s *nopSurface) StrokeGradient(x0, y0, x1, y1, w float64, _ []field.Stop) {}

var _ = Describe("Field", func() {
	var (
		surf *nopSurface
		f    *field.Field
	)

	BeforeEach(func() {
		surf = &nopSurface{}
		opts := field.DefaultOptions()
		opts.StarCount = 300
		f = field.New(surf, rand.New(rand.NewSource(2024)), opts)
		f.Seed(800, 600)
	})

	Describe("seeding", func() {
		It("fills the configured star count inside the surface", func() {
			Expect(f.StarCount()).To(Equal(300))
			for _, s := range f.Stars() {
				Expect(s.X).To(And(BeNumerically(">=", 0), BeNumerically("<", 800)))
				Expect(s.Y).To(And(BeNumerically(">=", 0), BeNumerically("<", 600)))
			}
		})

		It("rebounds every star after a shrink", func() {
			f.Seed(400, 300)
			Expect(f.StarCount()).To(Equal(300))
			for _, s := range f.Stars() {
				Expect(s.X).To(BeNumerically("<", 400))
				Expect(s.Y).To(BeNumerically("<", 300))
			}
			Expect(surf.w).To(Equal(400))
		})
	})

	Describe("ticking", func() {
		It("keeps star opacity in [0, 1]", func() {
			for i := 0; i < 100; i++ {
				f.Frame(0.03)
			}
			for _, s := range f.Stars() {
				Expect(s.Opacity).To(BeNumerically(">=", 0))
				Expect(s.Opacity).To(BeNumerically("<=", 1))
			}
		})

		It("moves and fades an injected streak", func() {
			f.InjectStreak(field.Streak{X: 50, Y: -100, Length: 100, Speed: 500, BaseOpacity: 0.6, Width: 1})
			f.Tick(1.0)

			st := f.Streaks()[0]
			Expect(st.Y).To(Equal(400.0))
			Expect(st.Fade).To(BeNumerically("~", 0.298, 0.001))
		})

		It("drops a streak once it is past the bottom margin", func() {
			f.InjectStreak(field.Streak{X: 50, Y: 770, Length: 100, Speed: 500, BaseOpacity: 0.6, Width: 1})
			f.Tick(0.04)
			Expect(f.StreakCount()).To(BeZero())
		})
	})

	Describe("animating", func() {
		It("keeps scheduling itself until stopped", func() {
			q := field.NewFrameQueue()
			a := field.NewAnimator(f, q)
			a.Start()

			now := time.Now()
			for i := 0; i < 5; i++ {
				Expect(q.Fire(now.Add(time.Duration(i) * 10 * time.Millisecond))).To(BeTrue())
			}
			a.Stop()
			Expect(q.Pending()).To(BeFalse())
			Expect(a.Frames()).To(BeEquivalentTo(5))
		})
	})
})
