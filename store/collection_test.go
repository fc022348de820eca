package store_test

import (
	"sync"

	"github.com/friendsofgo/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/store"
)

var _ = Describe("Collection", func() {
	var coll *store.Collection[order]

	BeforeEach(func() {
		coll = store.NewCollection("order", makeOrders(3), store.WithLogger(quietLogger()))
	})

	It("keeps seed order", func() {
		Expect(coll.Kind()).To(Equal("order"))
		Expect(orderIDs(coll.Snapshot())).To(Equal([]string{"ord1", "ord2", "ord3"}))
		Expect(coll.Len()).To(Equal(3))
		Expect(coll.Version()).To(BeZero())
	})

	It("drops seed records with duplicate ids", func() {
		logger, hook := logtest.NewNullLogger()
		seed := append(makeOrders(2), order{ID: "ord1", Product: "dup"})

		c := store.NewCollection("order", seed, store.WithLogger(logger))

		Expect(c.Len()).To(Equal(2))
		rec, _ := c.Get("ord1")
		Expect(rec.Product).To(Equal("Product 1"))
		Expect(hook.LastEntry().Message).To(ContainSubstring("duplicate id"))
	})

	Describe("Insert", func() {
		It("prepends and appends", func() {
			Expect(coll.Insert(order{ID: "first"}, crud.Prepend)).To(Succeed())
			Expect(coll.Insert(order{ID: "last"}, crud.Append)).To(Succeed())

			Expect(orderIDs(coll.Snapshot())).To(Equal([]string{"first", "ord1", "ord2", "ord3", "last"}))
			Expect(coll.Version()).To(Equal(uint64(2)))
		})

		It("rejects duplicate ids", func() {
			err := coll.Insert(order{ID: "ord2"}, crud.Append)

			Expect(errors.Is(err, crud.ErrDuplicateID)).To(BeTrue())
			Expect(coll.Len()).To(Equal(3))
			Expect(coll.Version()).To(BeZero())
		})

		It("does not change snapshots already taken", func() {
			before := coll.Snapshot()

			Expect(coll.Insert(order{ID: "new"}, crud.Prepend)).To(Succeed())

			Expect(orderIDs(before)).To(Equal([]string{"ord1", "ord2", "ord3"}))
		})
	})

	Describe("Replace", func() {
		It("swaps the record in place", func() {
			rec, err := coll.Replace("ord2", func(o order) (order, error) {
				o.Product = "Lamp"
				return o, nil
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.Product).To(Equal("Lamp"))
			got, ok := coll.Get("ord2")
			Expect(ok).To(BeTrue())
			Expect(got.Product).To(Equal("Lamp"))
			Expect(orderIDs(coll.Snapshot())).To(Equal([]string{"ord1", "ord2", "ord3"}))
		})

		It("changes nothing when the function fails", func() {
			_, err := coll.Replace("ord2", func(o order) (order, error) {
				return o, errors.New("nope")
			})

			Expect(err).To(MatchError("nope"))
			Expect(coll.Version()).To(BeZero())
		})

		It("returns ErrNotFound for a missing id", func() {
			_, err := coll.Replace("missing", func(o order) (order, error) { return o, nil })

			Expect(errors.Is(err, crud.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("removes the record and returns it", func() {
			rec, err := coll.Delete("ord1")

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.ID).To(Equal("ord1"))
			Expect(coll.Contains("ord1")).To(BeFalse())
			Expect(orderIDs(coll.Snapshot())).To(Equal([]string{"ord2", "ord3"}))
		})

		It("returns ErrNotFound the second time", func() {
			_, _ = coll.Delete("ord1")
			_, err := coll.Delete("ord1")

			Expect(errors.Is(err, crud.ErrNotFound)).To(BeTrue())
			Expect(coll.Version()).To(Equal(uint64(1)))
		})
	})

	Describe("Subscribe", func() {
		It("notifies after each applied mutation", func() {
			var changes []store.Change
			sub := coll.Subscribe(func(c store.Change) { changes = append(changes, c) })
			defer sub.Close()

			_ = coll.Insert(order{ID: "ord9"}, crud.Append)
			_, _ = coll.Replace("ord1", func(o order) (order, error) { return o, nil })
			_, _ = coll.Delete("ord2")
			_, _ = coll.Delete("ord2")

			Expect(changes).To(Equal([]store.Change{
				{Type: store.Inserted, ID: "ord9", Version: 1},
				{Type: store.Replaced, ID: "ord1", Version: 2},
				{Type: store.Deleted, ID: "ord2", Version: 3},
			}))
			Expect(changes[2].Type.String()).To(Equal("deleted"))
		})

		It("stops after Close", func() {
			calls := 0
			sub := coll.Subscribe(func(store.Change) { calls++ })
			Expect(sub.ID().String()).ToNot(BeEmpty())

			sub.Close()
			sub.Close()
			_ = coll.Insert(order{ID: "ord9"}, crud.Append)

			Expect(calls).To(BeZero())
		})

		It("lets subscribers read the collection", func() {
			var seen int
			sub := coll.Subscribe(func(store.Change) { seen = coll.Len() })
			defer sub.Close()

			_ = coll.Insert(order{ID: "ord9"}, crud.Append)

			Expect(seen).To(Equal(4))
		})
	})

	It("keeps ids unique under concurrent creates", func() {
		m := newOrderMutator(coll)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				_, err := m.Create(newOrder{Product: "Pen"})
				Expect(err).ToNot(HaveOccurred())
			}()
		}
		wg.Wait()

		ids := orderIDs(coll.Snapshot())
		Expect(ids).To(HaveLen(23))
		seen := map[string]bool{}
		for _, id := range ids {
			Expect(seen[id]).To(BeFalse(), "duplicate id %s", id)
			seen[id] = true
		}
		Expect(coll.Version()).To(Equal(uint64(20)))
	})
})
