package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vcsim/timing/latency"
)

var _ = Describe("TimingConfig", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should have the default values", func() {
		config := latency.DefaultTimingConfig()

		Expect(config.L1HitTime).To(Equal(1.0))
		Expect(config.VCHitTime).To(Equal(1.0))
		Expect(config.L2HitTime).To(Equal(8.0))
		Expect(config.L2MissPenalty).To(Equal(100.0))
		Expect(config.Validate()).To(Succeed())
	})

	It("should save and load a config", func() {
		path := filepath.Join(dir, "timing.json")
		config := latency.DefaultTimingConfig()
		config.L2HitTime = 12
		config.L2MissPenalty = 250

		Expect(config.SaveConfig(path)).To(Succeed())

		loaded, err := latency.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(config))
	})

	It("should keep defaults for missing fields", func() {
		path := filepath.Join(dir, "partial.json")
		Expect(os.WriteFile(path, []byte(`{"l2_miss_penalty": 40}`), 0644)).
			To(Succeed())

		loaded, err := latency.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.L2MissPenalty).To(Equal(40.0))
		Expect(loaded.L2HitTime).To(Equal(8.0))
	})

	It("should fail on a missing file", func() {
		_, err := latency.LoadConfig(filepath.Join(dir, "nope.json"))
		Expect(err).To(HaveOccurred())
	})

	It("should fail on invalid JSON", func() {
		path := filepath.Join(dir, "bad.json")
		Expect(os.WriteFile(path, []byte("{"), 0644)).To(Succeed())

		_, err := latency.LoadConfig(path)
		Expect(err).To(MatchError(ContainSubstring("failed to parse")))
	})

	DescribeTable("should reject invalid values",
		func(mutate func(*latency.TimingConfig), field string) {
			config := latency.DefaultTimingConfig()
			mutate(config)

			Expect(config.Validate()).To(MatchError(ContainSubstring(field)))
		},
		Entry("zero L1 hit time",
			func(c *latency.TimingConfig) { c.L1HitTime = 0 }, "l1_hit_time"),
		Entry("negative VC hit time",
			func(c *latency.TimingConfig) { c.VCHitTime = -1 }, "vc_hit_time"),
		Entry("zero L2 hit time",
			func(c *latency.TimingConfig) { c.L2HitTime = 0 }, "l2_hit_time"),
		Entry("negative miss penalty",
			func(c *latency.TimingConfig) { c.L2MissPenalty = -5 }, "l2_miss_penalty"),
	)

	It("should accept a zero miss penalty", func() {
		config := latency.DefaultTimingConfig()
		config.L2MissPenalty = 0

		Expect(config.Validate()).To(Succeed())
	})

	It("should clone independently", func() {
		config := latency.DefaultTimingConfig()
		clone := config.Clone()
		clone.L1HitTime = 3

		Expect(config.L1HitTime).To(Equal(1.0))
	})
})
