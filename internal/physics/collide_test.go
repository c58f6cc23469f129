package physics

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collisim/internal/dynamo"
)

const tol = 1e-12

func pair(p0, p1, v0, v1 dynamo.Vec) (*dynamo.Set, dynamo.View) {
	s := dynamo.NewSet(2)
	s.Pos[0], s.Pos[1] = p0, p1
	s.Vel[0], s.Vel[1] = v0, v1
	return s, s.View(dynamo.Range{Start: 0, End: 2})
}

var _ = Describe("ResolvePairs", func() {
	var params dynamo.Params

	BeforeEach(func() {
		params = dynamo.DefaultParams()
		params.Radius = 0.02
	})

	Context("when two particles approach head-on and overlap", func() {
		It("reverses their velocities scaled by the restitution coefficient", func() {
			s, v := pair(dynamo.Vec{-0.015, 0}, dynamo.Vec{0.015, 0}, dynamo.Vec{1, 0}, dynamo.Vec{-1, 0})

			c := ResolvePairs(v, params)

			Expect(c.Touching).To(Equal(1))
			Expect(c.Impulses).To(Equal(1))
			Expect(s.Vel[0][0]).To(BeNumerically("~", -0.9, tol))
			Expect(s.Vel[1][0]).To(BeNumerically("~", 0.9, tol))
			Expect(s.Vel[0][1]).To(BeZero())
			Expect(s.Vel[1][1]).To(BeZero())
		})

		It("pushes them apart to exactly two radii", func() {
			s, v := pair(dynamo.Vec{-0.015, 0}, dynamo.Vec{0.015, 0}, dynamo.Vec{1, 0}, dynamo.Vec{-1, 0})

			ResolvePairs(v, params)

			Expect(s.Pos[0][0]).To(BeNumerically("~", -0.02, tol))
			Expect(s.Pos[1][0]).To(BeNumerically("~", 0.02, tol))
		})

		It("conserves momentum", func() {
			s, v := pair(dynamo.Vec{0.1, 0.1}, dynamo.Vec{0.125, 0.11}, dynamo.Vec{2, -0.5}, dynamo.Vec{-0.3, 0.7})
			before := s.Vel[0].Add(s.Vel[1])

			ResolvePairs(v, params)

			after := s.Vel[0].Add(s.Vel[1])
			Expect(after[0]).To(BeNumerically("~", before[0], tol))
			Expect(after[1]).To(BeNumerically("~", before[1], tol))
		})
	})

	Context("when the particles are out of reach", func() {
		It("leaves them untouched", func() {
			s, v := pair(dynamo.Vec{-0.03, 0}, dynamo.Vec{0.03, 0}, dynamo.Vec{1, 0}, dynamo.Vec{-1, 0})

			c := ResolvePairs(v, params)

			Expect(c.Pairs).To(Equal(1))
			Expect(c.Touching).To(BeZero())
			Expect(s.Pos[0]).To(Equal(dynamo.Vec{-0.03, 0}))
			Expect(s.Vel[1]).To(Equal(dynamo.Vec{-1, 0}))
		})

		It("treats exactly two radii as not touching", func() {
			_, v := pair(dynamo.Vec{0, 0}, dynamo.Vec{0.04, 0}, dynamo.Vec{}, dynamo.Vec{})
			v.Pos[1] = v.Pos[0].Add(dynamo.Vec{2 * params.Radius, 0})

			Expect(ResolvePairs(v, params).Touching).To(BeZero())
		})
	})

	Context("when overlapping particles are separating", func() {
		It("keeps velocities but still corrects the overlap", func() {
			s, v := pair(dynamo.Vec{-0.015, 0}, dynamo.Vec{0.015, 0}, dynamo.Vec{-1, 0}, dynamo.Vec{1, 0})

			c := ResolvePairs(v, params)

			Expect(c.Touching).To(Equal(1))
			Expect(c.Impulses).To(BeZero())
			Expect(s.Vel[0]).To(Equal(dynamo.Vec{-1, 0}))
			Expect(s.Vel[1]).To(Equal(dynamo.Vec{1, 0}))
			Expect(s.Pos[0][0]).To(BeNumerically("~", -0.02, tol))
			Expect(s.Pos[1][0]).To(BeNumerically("~", 0.02, tol))
		})

		It("skips the correction when CorrectOnApproach is set", func() {
			params.CorrectOnApproach = true
			s, v := pair(dynamo.Vec{-0.015, 0}, dynamo.Vec{0.015, 0}, dynamo.Vec{-1, 0}, dynamo.Vec{1, 0})

			ResolvePairs(v, params)

			Expect(s.Pos[0]).To(Equal(dynamo.Vec{-0.015, 0}))
			Expect(s.Pos[1]).To(Equal(dynamo.Vec{0.015, 0}))
		})

		It("treats parallel motion like separation", func() {
			s, v := pair(dynamo.Vec{-0.015, 0}, dynamo.Vec{0.015, 0}, dynamo.Vec{0, 1}, dynamo.Vec{0, 1})

			c := ResolvePairs(v, params)

			Expect(c.Impulses).To(BeZero())
			Expect(s.Vel[0]).To(Equal(dynamo.Vec{0, 1}))
			Expect(s.Vel[1]).To(Equal(dynamo.Vec{0, 1}))
		})
	})

	Context("when two particles share a position", func() {
		It("separates them along the fallback normal without NaN", func() {
			s, v := pair(dynamo.Vec{0.3, 0.3}, dynamo.Vec{0.3, 0.3}, dynamo.Vec{}, dynamo.Vec{})

			c := ResolvePairs(v, params)

			Expect(c.Degenerate).To(Equal(1))
			Expect(s.IsValid()).To(BeTrue())
			Expect(s.Pos[0][0]).To(BeNumerically("~", 0.3-params.Radius, tol))
			Expect(s.Pos[1][0]).To(BeNumerically("~", 0.3+params.Radius, tol))
			Expect(s.Pos[0][1]).To(Equal(0.3))
		})

		It("still applies the impulse along the fallback normal", func() {
			s, v := pair(dynamo.Vec{0, 0}, dynamo.Vec{0, 0}, dynamo.Vec{1, 0}, dynamo.Vec{-1, 0})

			ResolvePairs(v, params)

			Expect(s.Vel[0][0]).To(BeNumerically("~", -0.9, tol))
			Expect(s.Vel[1][0]).To(BeNumerically("~", 0.9, tol))
		})
	})

	It("tests every unordered pair of the view", func() {
		s := dynamo.NewSet(10)
		for i := range s.Pos {
			s.Pos[i] = dynamo.Vec{float64(i) * 0.1, 0}
		}

		c := ResolvePairs(s.View(dynamo.Range{Start: 2, End: 7}), params)

		Expect(c.Pairs).To(Equal(10))
	})

	It("does nothing for an empty or single-particle view", func() {
		s := dynamo.NewSet(1)
		Expect(ResolvePairs(s.View(dynamo.Range{}), params).Pairs).To(BeZero())
		Expect(ResolvePairs(s.View(dynamo.Range{Start: 0, End: 1}), params).Pairs).To(BeZero())
	})

	It("never lets a diagonal contact produce a non-unit normal", func() {
		s, v := pair(dynamo.Vec{0, 0}, dynamo.Vec{0.02, 0.02}, dynamo.Vec{1, 1}, dynamo.Vec{0, 0})

		ResolvePairs(v, params)

		d := s.Pos[1].Sub(s.Pos[0])
		Expect(d.Len()).To(BeNumerically("~", 2*params.Radius, 1e-9))
		Expect(math.Abs(d[0] - d[1])).To(BeNumerically("<", 1e-9))
	})
})
