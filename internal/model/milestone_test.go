package model_test

import (
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tinkerly.io/api/internal/estimate"
	"tinkerly.io/api/internal/model"
)

var _ = Describe("PlanMilestones", func() {
	start := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)

	It("prices and schedules a small project", func() {
		result := estimate.Analyze(estimate.Descriptor{Category: "Landing Page", Requirements: "hero"})
		ms := model.PlanMilestones(result, start)

		Expect(ms).To(HaveLen(2))
		Expect(ms[0].Amount).To(Equal(int64(960)))
		Expect(ms[1].Amount).To(Equal(int64(640)))
		Expect(ms[0].DueDate).To(Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
		Expect(ms[1].DueDate).To(Equal(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)))
		for i, m := range ms {
			Expect(m.Position).To(Equal(i))
			Expect(m.Status).To(Equal(model.MilestoneStatusPending))
		}
	})

	It("splits the enterprise price 20/30/30/20", func() {
		result := estimate.Analyze(estimate.Descriptor{
			Category:     "Enterprise Solution",
			Requirements: strings.Repeat("x", 1200),
		})
		var amounts []int64
		for _, m := range model.PlanMilestones(result, start) {
			amounts = append(amounts, m.Amount)
		}
		Expect(amounts).To(Equal([]int64{14400, 21600, 21600, 14400}))
	})
})

var _ = Describe("MilestoneAmount", func() {
	DescribeTable("rounds half up",
		func(total int64, pct int, amount int64) {
			Expect(model.MilestoneAmount(total, pct)).To(Equal(amount))
		},
		Entry("exact", int64(1600), 60, int64(960)),
		Entry("rounds down", int64(1001), 25, int64(250)),
		Entry("rounds half up", int64(1002), 25, int64(251)),
		Entry("zero", int64(0), 50, int64(0)),
	)
})

var _ = Describe("MilestoneStatus", func() {
	DescribeTable("transitions",
		func(from, to model.MilestoneStatus, allowed bool) {
			Expect(from.CanTransitionTo(to)).To(Equal(allowed))
		},
		Entry("start work", model.MilestoneStatusPending, model.MilestoneStatusInProgress, true),
		Entry("finish", model.MilestoneStatusInProgress, model.MilestoneStatusCompleted, true),
		Entry("pay", model.MilestoneStatusCompleted, model.MilestoneStatusPaid, true),
		Entry("pay before completion", model.MilestoneStatusPending, model.MilestoneStatusPaid, false),
		Entry("reopen paid", model.MilestoneStatusPaid, model.MilestoneStatusInProgress, false),
		Entry("same status", model.MilestoneStatusPending, model.MilestoneStatusPending, false),
	)

	It("knows its values", func() {
		Expect(model.MilestoneStatus("done").IsValid()).To(BeFalse())
		Expect(model.MilestoneStatusPaid.IsValid()).To(BeTrue())
	})
})
