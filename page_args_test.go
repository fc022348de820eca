package listing_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/listing-go"
)

var _ = Describe("PageArgs", func() {
	Describe("NewPageArgs", func() {
		It("leaves size unset for a non-positive size", func() {
			pa := listing.NewPageArgs(3, 0)

			Expect(pa.GetPage()).To(Equal(3))
			Expect(pa.GetSize()).To(BeNil())
		})

		It("sets a positive size", func() {
			pa := listing.NewPageArgs(1, 8)

			Expect(*pa.GetSize()).To(Equal(8))
		})
	})

	Describe("GetPage", func() {
		It("defaults to the first page", func() {
			var pa *listing.PageArgs
			Expect(pa.GetPage()).To(Equal(1))
			Expect((&listing.PageArgs{}).GetPage()).To(Equal(1))
		})

		It("treats pages below one as the first page", func() {
			Expect(listing.NewPageArgs(0, 0).GetPage()).To(Equal(1))
			Expect(listing.NewPageArgs(-4, 0).GetPage()).To(Equal(1))
		})
	})

	Describe("Validate", func() {
		It("accepts sizes up to the default maximum", func() {
			Expect(listing.NewPageArgs(1, 1000).Validate()).To(Succeed())
		})

		It("rejects sizes above the maximum", func() {
			err := listing.NewPageArgs(1, 1001).Validate()

			var sizeErr *listing.PageSizeError
			Expect(err).To(BeAssignableToTypeOf(sizeErr))
			Expect(err.Error()).To(ContainSubstring("1001"))
			Expect(err.Error()).To(ContainSubstring("1000"))
		})

		It("validates against a custom config", func() {
			config := listing.NewPageConfig().WithMaxSize(20)

			Expect(listing.NewPageArgs(1, 20).ValidateWith(config)).To(Succeed())
			Expect(listing.NewPageArgs(1, 21).ValidateWith(config)).To(HaveOccurred())
		})

		It("accepts args without a size", func() {
			Expect(listing.NewPageArgs(2, 0).Validate()).To(Succeed())
		})
	})
})

var _ = Describe("PageConfig", func() {
	Describe("EffectiveSize", func() {
		It("uses the default when no size is requested", func() {
			Expect(listing.NewPageConfig().EffectiveSize(nil)).To(Equal(10))
			Expect(listing.NewPageConfig().WithDefaultSize(8).EffectiveSize(listing.NewPageArgs(1, 0))).To(Equal(8))
		})

		It("caps requests at the maximum", func() {
			config := listing.NewPageConfig().WithMaxSize(25)

			Expect(config.EffectiveSize(listing.NewPageArgs(1, 100))).To(Equal(25))
			Expect(config.EffectiveSize(listing.NewPageArgs(1, 7))).To(Equal(7))
		})

		It("never returns a default larger than the maximum", func() {
			config := &listing.PageConfig{DefaultSize: 50, MaxSize: 20}

			Expect(config.EffectiveSize(nil)).To(Equal(20))
		})

		It("falls back to package defaults on a nil or zero config", func() {
			var config *listing.PageConfig
			Expect(config.EffectiveSize(nil)).To(Equal(listing.DefaultPageSize))
			Expect((&listing.PageConfig{}).EffectiveSize(nil)).To(Equal(listing.DefaultPageSize))
		})

		It("ignores non-positive overrides", func() {
			config := listing.NewPageConfig().WithDefaultSize(0).WithMaxSize(-1)

			Expect(config.DefaultSize).To(Equal(listing.DefaultPageSize))
			Expect(config.MaxSize).To(Equal(listing.DefaultMaxPageSize))
		})
	})

	Describe("ApplyPaginateOptions", func() {
		It("builds a config from options", func() {
			config := listing.ApplyPaginateOptions(
				listing.WithDefaultSize(7),
				listing.WithMaxSize(50),
			)

			Expect(config.DefaultSize).To(Equal(7))
			Expect(config.MaxSize).To(Equal(50))
		})

		It("uses package defaults without options", func() {
			config := listing.ApplyPaginateOptions()

			Expect(config.DefaultSize).To(Equal(listing.DefaultPageSize))
			Expect(config.MaxSize).To(Equal(listing.DefaultMaxPageSize))
		})
	})
})
