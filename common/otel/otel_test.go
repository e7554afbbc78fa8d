package otel_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"tinkerly.io/api/common/otel"
	"tinkerly.io/api/core/config"
)

var _ = Describe("Setup", func() {
	It("is a no-op without an endpoint", func() {
		telemetry, err := otel.Setup(context.Background(), config.OTelConfig{ServiceName: "tinkerly-api"})
		Expect(err).NotTo(HaveOccurred())
		Expect(telemetry).To(BeNil())
	})
})

var _ = Describe("NewResource", func() {
	It("tags the process with its environment and instance", func() {
		res, err := otel.NewResource(context.Background(), config.OTelConfig{
			ServiceName:    "tinkerly-worker",
			ServiceVersion: "1.2.3",
			Environment:    "production",
			InstanceID:     "worker-7",
		})
		Expect(err).NotTo(HaveOccurred())

		set := res.Set()
		value := func(k attribute.Key) attribute.Value {
			v, _ := set.Value(k)
			return v
		}
		Expect(value(semconv.ServiceNameKey).AsString()).To(Equal("tinkerly-worker"))
		Expect(value(semconv.ServiceVersionKey).AsString()).To(Equal("1.2.3"))
		Expect(value(semconv.DeploymentEnvironmentKey).AsString()).To(Equal("production"))
		Expect(value(semconv.ServiceInstanceIDKey).AsString()).To(Equal("worker-7"))
	})

	It("leaves out unset attributes", func() {
		res, err := otel.NewResource(context.Background(), config.OTelConfig{ServiceName: "tinkerly-server"})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Set().HasValue(semconv.ServiceInstanceIDKey)).To(BeFalse())
		Expect(res.Set().HasValue(semconv.DeploymentEnvironmentKey)).To(BeFalse())
	})
})

var _ = Describe("Sampler", func() {
	DescribeTable("samples root spans by ratio",
		func(ratio float64, root string) {
			Expect(otel.Sampler(ratio).Description()).To(HavePrefix("ParentBased{root:" + root))
		},
		Entry("everything", 1.0, "AlwaysOnSampler"),
		Entry("above one", 3.0, "AlwaysOnSampler"),
		Entry("nothing", 0.0, "AlwaysOffSampler"),
		Entry("negative", -1.0, "AlwaysOffSampler"),
		Entry("a quarter", 0.25, "TraceIDRatioBased{0.25}"),
	)
})

var _ = Describe("ParseHeaders", func() {
	It("splits comma separated pairs", func() {
		Expect(otel.ParseHeaders("authorization=Bearer abc, x-team = core")).To(Equal(map[string]string{
			"authorization": "Bearer abc",
			"x-team":        "core",
		}))
	})

	It("ignores malformed pairs", func() {
		Expect(otel.ParseHeaders("novalue,,a=b")).To(Equal(map[string]string{"a": "b"}))
	})

	It("handles empty input", func() {
		Expect(otel.ParseHeaders("")).To(BeEmpty())
	})
})
