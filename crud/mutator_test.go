package crud_test

import (
	"strconv"
	"time"

	"github.com/friendsofgo/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/internal/metrics"
)

var _ = Describe("Mutator", func() {
	var (
		now    time.Time
		millis string
		repo   *memRepo[note]
		m      *crud.Mutator[note]
		logger *logrus.Logger
		hook   *logtest.Hook
	)

	clock := func() time.Time { return now }

	BeforeEach(func() {
		now = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
		millis = strconv.FormatInt(now.UnixMilli(), 10)
		repo = &memRepo[note]{records: []note{
			{ID: "n-a", Title: "first", Status: "Open"},
			{ID: "n-b", Title: "second", Status: "Closed"},
		}}
		logger, hook = logtest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)

		m = crud.NewMutator[note](
			crud.Spec{Kind: "note", Prefix: "note", Placement: crud.Prepend},
			repo,
			crud.WithClock(clock),
			crud.WithLogger(logger),
			crud.WithoutMetrics(),
		)
	})

	Describe("Create", func() {
		It("prepends a stamped record with a generated id", func() {
			rec, err := m.Create(newNote{Title: "third"})

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.ID).To(Equal("note3" + millis))
			Expect(rec.Created).To(Equal(now))
			Expect(rec.Updated).To(Equal(now))
			Expect(repo.ids()).To(Equal([]string{rec.ID, "n-a", "n-b"}))
		})

		It("appends when configured to", func() {
			m = crud.NewMutator[note](
				crud.Spec{Kind: "note", Prefix: "note", Placement: crud.Append},
				repo, crud.WithClock(clock), crud.WithoutMetrics(),
			)

			rec, err := m.Create(newNote{Title: "third"})

			Expect(err).ToNot(HaveOccurred())
			Expect(repo.ids()[2]).To(Equal(rec.ID))
		})

		It("never reuses an id within the same millisecond", func() {
			a, _ := m.Create(newNote{Title: "one"})
			b, _ := m.Create(newNote{Title: "two"})

			Expect(a.ID).ToNot(Equal(b.ID))
			Expect(repo.Len()).To(Equal(4))
		})

		It("rejects payloads failing validate tags without touching the collection", func() {
			_, err := m.Create(newNote{Title: "ab"})

			var ve *crud.ValidationError
			Expect(errors.As(err, &ve)).To(BeTrue())
			Expect(ve.Kind).To(Equal("note"))
			Expect(ve.Field).To(Equal("Title"))
			Expect(ve.Reason).To(Equal("must be at least 3"))
			Expect(repo.Len()).To(Equal(2))
		})

		It("reports missing required fields", func() {
			_, err := m.Create(newNote{})

			Expect(err).To(MatchError("invalid note: Title is required"))
		})

		It("passes through validation errors from Record", func() {
			_, err := m.Create(newNote{Title: "reject"})

			Expect(crud.IsValidation(err)).To(BeTrue())
			Expect(err).To(MatchError("invalid note: title is reserved"))
			Expect(repo.Len()).To(Equal(2))
		})

		It("wraps other Record failures", func() {
			_, err := m.Create(newNote{Title: "boom"})

			Expect(crud.IsValidation(err)).To(BeFalse())
			Expect(err).To(MatchError(ContainSubstring("build note")))
			Expect(hook.LastEntry().Level).To(Equal(logrus.WarnLevel))
		})

		It("logs rejected payloads at info level", func() {
			_, _ = m.Create(newNote{})

			entry := hook.LastEntry()
			Expect(entry.Level).To(Equal(logrus.InfoLevel))
			Expect(entry.Data["op"]).To(Equal(crud.OpCreate))
			Expect(entry.Data["result"]).To(Equal(metrics.ResultInvalid))
		})
	})

	Describe("Update", func() {
		It("patches the record in place and stamps it", func() {
			rec, err := m.Update("n-b", func(n note) note {
				n.Title = "renamed"
				return n
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.Title).To(Equal("renamed"))
			Expect(rec.Updated).To(Equal(now))
			Expect(rec.Created.IsZero()).To(BeTrue())
			Expect(repo.ids()).To(Equal([]string{"n-a", "n-b"}))
			Expect(repo.records[1].Title).To(Equal("renamed"))
		})

		It("keeps the id even when the patch changes it", func() {
			rec, err := m.Update("n-a", func(n note) note {
				n.ID = "hijacked"
				return n
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.ID).To(Equal("n-a"))
			Expect(repo.Contains("hijacked")).To(BeFalse())
		})

		It("returns ErrNotFound for a missing id", func() {
			_, err := m.Update("missing", func(n note) note { return n })

			Expect(errors.Is(err, crud.ErrNotFound)).To(BeTrue())
			Expect(crud.IgnoreNotFound(err)).To(Succeed())
		})
	})

	Describe("Edit", func() {
		It("validates the form and applies it", func() {
			rec, err := m.Edit("n-a", renameNote{Title: "edited"})

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.Title).To(Equal("edited"))
		})

		It("rejects an invalid form", func() {
			_, err := m.Edit("n-a", renameNote{})

			Expect(crud.IsValidation(err)).To(BeTrue())
			Expect(repo.records[0].Title).To(Equal("first"))
		})
	})

	Describe("Delete", func() {
		It("removes the record", func() {
			Expect(m.Delete("n-a")).To(Succeed())
			Expect(repo.ids()).To(Equal([]string{"n-b"}))
		})

		It("fails the second delete of the same id", func() {
			Expect(m.Delete("n-a")).To(Succeed())

			err := m.Delete("n-a")

			Expect(errors.Is(err, crud.ErrNotFound)).To(BeTrue())
			Expect(err).To(MatchError(ContainSubstring(`note "n-a"`)))
			Expect(repo.Len()).To(Equal(1))
		})

		It("does not hand out a deleted record's id again", func() {
			created, _ := m.Create(newNote{Title: "temp"})
			Expect(m.Delete(created.ID)).To(Succeed())

			next, _ := m.Create(newNote{Title: "temp"})

			Expect(next.ID).ToNot(Equal(created.ID))
		})
	})

	Describe("SetStatus", func() {
		It("changes the status", func() {
			rec, err := m.SetStatus("n-a", "Closed")

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.Status).To(Equal("Closed"))
			Expect(rec.Updated).To(Equal(now))
		})

		It("rejects values outside the enum", func() {
			_, err := m.SetStatus("n-a", "Deleted")

			var ve *crud.ValidationError
			Expect(errors.As(err, &ve)).To(BeTrue())
			Expect(ve.Field).To(Equal("status"))
			Expect(repo.records[0].Status).To(Equal("Open"))
		})

		It("returns ErrNotFound for a missing id", func() {
			_, err := m.SetStatus("missing", "Open")

			Expect(errors.Is(err, crud.ErrNotFound)).To(BeTrue())
		})

		It("rejects entities without a status", func() {
			tags := crud.NewMutator[tag](
				crud.Spec{Kind: "tag", Prefix: "tag"},
				&memRepo[tag]{records: []tag{{ID: "t1"}}},
				crud.WithoutMetrics(),
			)

			_, err := tags.SetStatus("t1", "Open")

			Expect(err).To(MatchError("invalid tag: status is not supported"))
		})
	})

	Describe("metrics", func() {
		It("counts mutations by result", func() {
			counted := crud.NewMutator[note](
				crud.Spec{Kind: "metered_note", Prefix: "mn"},
				repo, crud.WithClock(clock), crud.WithLogger(logger),
			)
			ok := metrics.Mutations.WithLabelValues("metered_note", crud.OpDelete, metrics.ResultOK)
			missing := metrics.Mutations.WithLabelValues("metered_note", crud.OpDelete, metrics.ResultNotFound)
			before, beforeMissing := testutil.ToFloat64(ok), testutil.ToFloat64(missing)

			_ = counted.Delete("n-a")
			_ = counted.Delete("n-a")

			Expect(testutil.ToFloat64(ok) - before).To(Equal(1.0))
			Expect(testutil.ToFloat64(missing) - beforeMissing).To(Equal(1.0))
		})
	})
})

var _ = Describe("IDGenerator", func() {
	It("builds prefix, sequence and timestamp", func() {
		now := time.UnixMilli(1700000000123)
		gen := crud.NewIDGenerator("cpn", 5, func() time.Time { return now })

		Expect(gen.Next(nil)).To(Equal("cpn61700000000123"))
		Expect(gen.Next(nil)).To(Equal("cpn71700000000123"))
		Expect(gen.Prefix()).To(Equal("cpn"))
	})

	It("skips ids that already exist", func() {
		now := time.UnixMilli(42)
		gen := crud.NewIDGenerator("q", 0, func() time.Time { return now })

		id := gen.Next(func(id string) bool { return id == "q142" })

		Expect(id).To(Equal("q242"))
	})
})

var _ = Describe("ValidationError", func() {
	It("formats with and without a field", func() {
		Expect(crud.NewValidationError("quiz", "questions", "must not be empty").Error()).
			To(Equal("invalid quiz: questions must not be empty"))
		Expect(crud.NewValidationError("quiz", "", "is malformed").Error()).
			To(Equal("invalid quiz: is malformed"))
	})

	It("is found through wrapping", func() {
		err := errors.Wrap(crud.NewValidationError("quiz", "title", "is required"), "create")

		Expect(crud.IsValidation(err)).To(BeTrue())
		Expect(crud.IsValidation(crud.ErrNotFound)).To(BeFalse())
	})
})
