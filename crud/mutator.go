package crud

import (
	"time"

	"github.com/friendsofgo/errors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/nrfta/listing-go/internal/metrics"
)

// Operation names used in logs and metrics.
const (
	OpCreate    = "create"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpSetStatus = "set_status"
)

// Spec is the per-entity configuration of a Mutator.
type Spec struct {
	// Kind names the entity in errors, logs and metrics (e.g. "coupon").
	Kind string

	// Prefix starts every generated id (e.g. "cpn").
	Prefix string

	// Placement says where created records go.
	Placement Placement
}

type options struct {
	clock     func() time.Time
	logger    logrus.FieldLogger
	validate  *validator.Validate
	ids       *IDGenerator
	noMetrics bool
}

// Option configures a Mutator.
type Option func(*options)

// WithClock overrides the time source used for ids and stamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithLogger sets the logger. Defaults to logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithValidator sets the payload validator, e.g. one with custom tags registered.
func WithValidator(v *validator.Validate) Option {
	return func(o *options) {
		o.validate = v
	}
}

// WithIDGenerator replaces the default generator seeded from the repository length.
func WithIDGenerator(ids *IDGenerator) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// WithoutMetrics disables Prometheus recording.
func WithoutMetrics() Option {
	return func(o *options) {
		o.noMetrics = true
	}
}

// Mutator applies create, update, delete and status changes for one entity
// type to a shared Repository. Every operation either fully applies or leaves
// the repository untouched.
type Mutator[T Entity[T]] struct {
	spec     Spec
	repo     Repository[T]
	ids      *IDGenerator
	clock    func() time.Time
	validate *validator.Validate
	log      logrus.FieldLogger
	metrics  bool
}

// NewMutator creates a Mutator for spec writing to repo.
func NewMutator[T Entity[T]](spec Spec, repo Repository[T], opts ...Option) *Mutator[T] {
	o := &options{
		clock:  time.Now,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.validate == nil {
		o.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	if o.ids == nil {
		o.ids = NewIDGenerator(spec.Prefix, repo.Len(), o.clock)
	}

	return &Mutator[T]{
		spec:     spec,
		repo:     repo,
		ids:      o.ids,
		clock:    o.clock,
		validate: o.validate,
		log:      o.logger.WithField("kind", spec.Kind),
		metrics:  !o.noMetrics,
	}
}

// Spec returns the mutator's configuration.
func (m *Mutator[T]) Spec() Spec {
	return m.spec
}

// Create validates payload, builds the record, assigns a fresh id, stamps it
// and inserts it at the configured end of the collection.
func (m *Mutator[T]) Create(payload Payload[T]) (T, error) {
	var zero T

	if err := m.validate.Struct(payload); err != nil {
		err = fromValidator(m.spec.Kind, err)
		m.done(OpCreate, "", err)
		return zero, err
	}

	rec, err := payload.Record()
	if err != nil {
		if !IsValidation(err) {
			err = errors.Wrapf(err, "build %s", m.spec.Kind)
		}
		m.done(OpCreate, "", err)
		return zero, err
	}

	id := m.ids.Next(m.repo.Contains)
	rec = rec.WithID(id).Stamp(Created, m.clock())

	if err := m.repo.Insert(rec, m.spec.Placement); err != nil {
		err = errors.Wrapf(err, "insert %s %q", m.spec.Kind, id)
		m.done(OpCreate, id, err)
		return zero, err
	}

	m.done(OpCreate, id, nil)
	return rec, nil
}

// Update applies patch to the record with id and stamps it. The id survives
// any change patch makes to it. Missing ids return ErrNotFound.
func (m *Mutator[T]) Update(id string, patch func(T) T) (T, error) {
	rec, err := m.repo.Replace(id, func(cur T) (T, error) {
		return patch(cur).WithID(id).Stamp(Updated, m.clock()), nil
	})
	if err != nil {
		err = m.wrap(err, id)
		m.done(OpUpdate, id, err)
		return rec, err
	}

	m.done(OpUpdate, id, nil)
	return rec, nil
}

// Edit validates form and applies it to the record with id as an Update.
func (m *Mutator[T]) Edit(id string, form Patch[T]) (T, error) {
	if err := m.validate.Struct(form); err != nil {
		var zero T
		err = fromValidator(m.spec.Kind, err)
		m.done(OpUpdate, id, err)
		return zero, err
	}
	return m.Update(id, form.Apply)
}

// Delete removes the record with id. Deleting a missing id, including a
// second delete of the same id, returns ErrNotFound and changes nothing.
func (m *Mutator[T]) Delete(id string) error {
	_, err := m.repo.Delete(id)
	if err != nil {
		err = m.wrap(err, id)
	}
	m.done(OpDelete, id, err)
	return err
}

// SetStatus sets the status of the record with id. The value must belong to
// the entity's status enum; entities without one reject every value.
func (m *Mutator[T]) SetStatus(id, status string) (T, error) {
	rec, err := m.repo.Replace(id, func(cur T) (T, error) {
		s, ok := any(cur).(Statused[T])
		if !ok {
			var zero T
			return zero, NewValidationError(m.spec.Kind, "status", "is not supported")
		}
		next, err := s.WithStatus(status)
		if err != nil {
			var zero T
			if IsValidation(err) {
				return zero, err
			}
			return zero, NewValidationError(m.spec.Kind, "status", err.Error())
		}
		return next.Stamp(StatusChanged, m.clock()), nil
	})
	if err != nil {
		err = m.wrap(err, id)
		m.done(OpSetStatus, id, err)
		return rec, err
	}

	m.done(OpSetStatus, id, nil)
	return rec, nil
}

func (m *Mutator[T]) wrap(err error, id string) error {
	if IsValidation(err) {
		return err
	}
	return errors.Wrapf(err, "%s %q", m.spec.Kind, id)
}

func (m *Mutator[T]) done(op, id string, err error) {
	result := metrics.ResultOK
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		result = metrics.ResultNotFound
	case IsValidation(err):
		result = metrics.ResultInvalid
	default:
		result = metrics.ResultError
	}
	if m.metrics {
		metrics.RecordMutation(m.spec.Kind, op, result)
	}

	entry := m.log.WithFields(logrus.Fields{"op": op, "id": id, "result": result})
	switch result {
	case metrics.ResultOK, metrics.ResultNotFound:
		entry.Debug("mutation")
	case metrics.ResultInvalid:
		entry.WithError(err).Info("mutation rejected")
	default:
		entry.WithError(err).Warn("mutation failed")
	}
}
