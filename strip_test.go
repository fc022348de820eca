package listing_test

import (
	"math"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/listing-go"
)

// strip renders tokens as strings so expectations read like the page control.
func strip(tokens []listing.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.String()
	}
	return out
}

var _ = Describe("PlanStrip", func() {
	DescribeTable("known strips",
		func(total, size, current int, expected []string) {
			Expect(strip(listing.PlanStrip(total, size, current))).To(Equal(expected))
		},
		Entry("empty list", 0, 10, 1, []string{}),
		Entry("single page", 1, 10, 1, []string{"1"}),
		Entry("five pages lists every page", 50, 10, 3, []string{"1", "2", "3", "4", "5"}),
		Entry("partial last page counts", 41, 10, 1, []string{"1", "2", "3", "4", "5"}),
		Entry("six pages near the start", 60, 10, 3, []string{"1", "2", "3", "4", "ellipsis", "6"}),
		Entry("first page of thirteen", 130, 10, 1, []string{"1", "2", "3", "4", "ellipsis", "13"}),
		Entry("middle of thirteen", 130, 10, 7, []string{"1", "ellipsis", "6", "7", "8", "ellipsis", "13"}),
		Entry("page four of thirteen", 130, 10, 4, []string{"1", "ellipsis", "3", "4", "5", "ellipsis", "13"}),
		Entry("near the end of thirteen", 130, 10, 11, []string{"1", "ellipsis", "10", "11", "12", "13"}),
		Entry("last of thirteen", 130, 10, 13, []string{"1", "ellipsis", "10", "11", "12", "13"}),
	)

	It("marks which gap each ellipsis fills", func() {
		tokens := listing.PlanStrip(130, 10, 7)

		Expect(tokens[1].IsEllipsis()).To(BeTrue())
		Expect(tokens[1].Position()).To(Equal(listing.EllipsisStart))
		Expect(tokens[5].IsEllipsis()).To(BeTrue())
		Expect(tokens[5].Position()).To(Equal(listing.EllipsisEnd))
		Expect(tokens[3].Page()).To(Equal(7))
		Expect(tokens[3].Position()).To(Equal(listing.NotEllipsis))
	})

	It("returns no tokens when the page size is not positive", func() {
		Expect(listing.PlanStrip(10, 0, 1)).To(BeEmpty())
	})

	It("holds its invariants for every page of every large list", func() {
		for totalPages := 6; totalPages <= 40; totalPages++ {
			for current := 1; current <= totalPages; current++ {
				tokens := listing.PlanStrip(totalPages*10, 10, current)

				Expect(tokens[0].Page()).To(Equal(1))
				Expect(tokens[len(tokens)-1].Page()).To(Equal(totalPages))
				Expect(len(tokens)).To(BeNumerically("<=", 7))

				last := 0
				sawCurrent := false
				for i, t := range tokens {
					if t.IsEllipsis() {
						Expect(tokens[i-1].IsEllipsis()).To(BeFalse())
						continue
					}
					Expect(t.Page()).To(BeNumerically(">", last))
					if last > 0 && !tokens[i-1].IsEllipsis() {
						Expect(t.Page()).To(Equal(last + 1))
					}
					last = t.Page()
					if t.Page() == current {
						sawCurrent = true
					}
				}
				Expect(sawCurrent).To(BeTrue(), "page %d of %d missing from strip", current, totalPages)
			}
		}
	})
})

var _ = Describe("TotalPages", func() {
	It("rounds up", func() {
		Expect(listing.TotalPages(24, 10)).To(Equal(3))
		Expect(listing.TotalPages(20, 10)).To(Equal(2))
		Expect(listing.TotalPages(0, 10)).To(Equal(0))
		Expect(listing.TotalPages(5, 0)).To(Equal(0))
	})

	It("does not overflow near the largest int", func() {
		Expect(listing.TotalPages(math.MaxInt, 10)).To(Equal(math.MaxInt/10 + 1))
		Expect(listing.TotalPages(math.MaxInt, 1)).To(Equal(math.MaxInt))
		Expect(listing.TotalPages(math.MaxInt-7, 8)).To(Equal(math.MaxInt / 8))

		last := strconv.Itoa(math.MaxInt/10 + 1)
		Expect(strip(listing.PlanStrip(math.MaxInt, 10, 1))).To(Equal([]string{"1", "2", "3", "4", "ellipsis", last}))
	})
})

var _ = Describe("ClampPage", func() {
	DescribeTable("clamps into range",
		func(page, totalPages, expected int) {
			Expect(listing.ClampPage(page, totalPages)).To(Equal(expected))
		},
		Entry("in range", 2, 3, 2),
		Entry("previous from the first page", 0, 3, 1),
		Entry("next from the last page", 4, 3, 3),
		Entry("no pages", 5, 0, 1),
		Entry("negative", -2, 3, 1),
	)
})
