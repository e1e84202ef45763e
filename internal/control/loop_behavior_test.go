package control_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/waypointctl/internal/control"
	"github.com/san-kum/waypointctl/internal/path"
	"github.com/san-kum/waypointctl/internal/vehicle"
)

var _ = Describe("Loop", func() {
	var loop *control.Loop

	BeforeEach(func() {
		var err error
		loop, err = control.New(control.DefaultGains())
		Expect(err).NotTo(HaveOccurred())

		p, err := path.FromRows([][3]float64{{0, 0, 5}, {10, 0, 5}, {20, 0, 5}})
		Expect(err).NotTo(HaveOccurred())
		Expect(loop.SetPath(p)).To(Succeed())
	})

	Context("before any non-zero frame", func() {
		It("holds the neutral command whatever the feedback", func() {
			for _, s := range []vehicle.State{
				{X: 100, Y: -40, Yaw: 3, Speed: 30},
				{X: 0, Y: 0, Speed: 0},
				{X: 5, Y: 5, Yaw: -7, Speed: 1e6},
			} {
				cmd, err := loop.Step(s)
				Expect(err).NotTo(HaveOccurred())
				Expect(cmd).To(Equal(vehicle.Neutral()))
			}
			Expect(loop.Phase()).To(Equal(control.PhaseWarmup))
			Expect(loop.State()).To(BeZero())
		})
	})

	Context("once a non-zero frame has been seen", func() {
		BeforeEach(func() {
			_, err := loop.Step(vehicle.State{Speed: 5, Frame: 1})
			Expect(err).NotTo(HaveOccurred())
		})

		It("stays active when the frame index returns to zero", func() {
			for i := 0; i < 3; i++ {
				_, err := loop.Step(vehicle.State{Speed: 2, Frame: 0})
				Expect(err).NotTo(HaveOccurred())
				Expect(loop.Phase()).To(Equal(control.PhaseActive))
			}
			Expect(loop.State().Integral).To(BeNumerically("~", 9, 1e-12))
		})

		It("records the previous speed and steering angle", func() {
			_, err := loop.Step(vehicle.State{X: 0, Y: 2, Speed: 4, Frame: 2})
			Expect(err).NotTo(HaveOccurred())

			st := loop.State()
			Expect(st.PrevSpeed).To(Equal(4.0))
			Expect(st.PrevSteer).To(BeNumerically("~", math.Atan(-2.5), 1e-12))
		})

		It("never drives throttle and brake together", func() {
			for i, v := range []float64{0, 2, 6, 9, 14, 3, 5} {
				cmd, err := loop.Step(vehicle.State{Speed: v, Frame: i + 2})
				Expect(err).NotTo(HaveOccurred())
				Expect(cmd.Throttle == 0 || cmd.Brake == 0).To(BeTrue())
				Expect(cmd.InBounds()).To(BeTrue())
			}
		})
	})
})
