package id_test

import (
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tinkerly.io/api/common/id"
)

var _ = Describe("snowflake ids", func() {
	BeforeEach(func() {
		Expect(id.Init(7)).To(Succeed())
	})

	It("generates increasing unique ids", func() {
		a, b := id.New(), id.New()
		Expect(a).To(BeNumerically(">", 0))
		Expect(b).To(BeNumerically(">", a))
	})

	It("round-trips through Parse", func() {
		v := id.New()
		got, err := id.Parse(strconv.FormatInt(v, 10))
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(v))
	})

	DescribeTable("rejects malformed ids",
		func(s string) {
			_, err := id.Parse(s)
			Expect(err).To(HaveOccurred())
		},
		Entry("empty", ""),
		Entry("letters", "abc"),
		Entry("zero", "0"),
		Entry("negative", "-4"),
	)
})
