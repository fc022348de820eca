package main

import (
	"bytes"
	"context"

	"github.com/friendsofgo/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/nrfta/listing-go"
	"github.com/nrfta/listing-go/offset"
)

func run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

var _ = Describe("listctl", func() {
	BeforeEach(func() {
		GinkgoT().Setenv("LISTING_APP_METRICS", "false")
		GinkgoT().Setenv("LISTING_PAGING_DEFAULT_SIZE", "10")
	})

	Describe("strip", func() {
		It("renders the strip with the current page marked", func() {
			out, err := run("strip", "130", "7")

			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("1 … 6 [7] 8 … 13\n"))
		})

		It("honours --size", func() {
			out, err := run("strip", "130", "1", "--size", "50")

			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("[1] 2 3\n"))
		})

		It("prints yaml tokens", func() {
			out, err := run("strip", "130", "7", "-o", "yaml")
			Expect(err).ToNot(HaveOccurred())

			var tokens []string
			Expect(yaml.Unmarshal([]byte(out), &tokens)).To(Succeed())
			Expect(tokens).To(Equal([]string{"1", "ellipsis", "6", "7", "8", "ellipsis", "13"}))
		})

		It("rejects a size above the configured maximum", func() {
			GinkgoT().Setenv("LISTING_PAGING_MAX_SIZE", "100")

			_, err := run("strip", "130", "1", "--size", "500")

			var sizeErr *listing.PageSizeError
			Expect(errors.As(err, &sizeErr)).To(BeTrue())
			Expect(sizeErr.Maximum).To(Equal(100))
		})

		It("rejects non-numeric arguments", func() {
			_, err := run("strip", "many", "1")

			Expect(err).To(MatchError(ContainSubstring("total-items")))
		})
	})

	Describe("list", func() {
		It("prints a filtered page", func() {
			out, err := run("list", "order", "-f", "status=Pending")

			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("ord7"))
			Expect(out).ToNot(ContainSubstring("ord1 "))
			Expect(out).To(ContainSubstring("page 1 of 1 (5 records)"))
		})

		It("ORs repeated values of one facet", func() {
			out, err := run("list", "quiz", "-f", "status=Published", "-f", "difficulty=Easy", "-f", "difficulty=Hard", "-o", "yaml")
			Expect(err).ToNot(HaveOccurred())

			var l struct {
				TotalCount int `yaml:"totalCount"`
				Rows       []struct {
					ID string `yaml:"id"`
				} `yaml:"rows"`
			}
			Expect(yaml.Unmarshal([]byte(out), &l)).To(Succeed())
			Expect(l.TotalCount).To(Equal(3))
			Expect(l.Rows[2].ID).To(Equal("quiz4"))
		})

		It("reopens the page holding a row cursor", func() {
			out, err := run("list", "order", "-o", "yaml")
			Expect(err).ToNot(HaveOccurred())

			var first struct {
				HasNextPage bool `yaml:"hasNextPage"`
				Rows        []struct {
					Cursor string `yaml:"cursor"`
				} `yaml:"rows"`
			}
			Expect(yaml.Unmarshal([]byte(out), &first)).To(Succeed())
			Expect(first.HasNextPage).To(BeTrue())
			Expect(offset.DecodeCursor(&first.Rows[9].Cursor)).To(Equal(9))

			out, err = run("list", "order", "--cursor", *offset.EncodeCursor(20))

			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("page 3 of 3 (24 records)"))
		})

		It("rejects malformed facets and unknown lists", func() {
			_, err := run("list", "order", "-f", "status")
			Expect(err).To(MatchError(ContainSubstring("name=value")))

			_, err = run("list", "invoice")
			Expect(err).To(MatchError(ContainSubstring("unknown list")))
		})
	})

	Describe("facets", func() {
		It("lists facets and their values", func() {
			out, err := run("facets", "order")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("status\npaymentMethod\n"))

			out, err = run("facets", "order", "status")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("Complete\nCanceled\nPending\n"))
		})
	})

	Describe("kinds", func() {
		It("prints every list with its page size", func() {
			out, err := run("kinds")

			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(MatchRegexp(`customer\s+8\s+name,email,userId\s+status`))
			Expect(out).To(ContainSubstring("leaderboard"))
		})
	})

	It("marks only the current page", func() {
		Expect(renderStrip(listing.PlanStrip(30, 10, 2), 2)).To(Equal("1 [2] 3"))
		Expect(renderStrip(nil, 1)).To(BeEmpty())
	})
})
