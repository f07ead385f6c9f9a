package decorator

import (
	"fmt"
	"io"
	"time"

	"filecabinet/metrics"
	"filecabinet/record"
	"filecabinet/storage"
)

// Timed wraps a Store and records how long every call takes.
// Durations go to the metrics histograms and, when a report writer is set,
// are also printed after each call.
type Timed struct {
	next   storage.Store
	report io.Writer
	now    func() time.Time
}

// TimedOption configures a Timed store
type TimedOption func(*Timed)

// WithReport prints "<Method> method execution duration is <d>." to w
func WithReport(w io.Writer) TimedOption {
	return func(t *Timed) { t.report = w }
}

// NewTimed wraps next
func NewTimed(next storage.Store, opts ...TimedOption) *Timed {
	t := &Timed{next: next, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// observe returns a func that records the call when given its error
func (t *Timed) observe(method string) func(err error) {
	start := t.now()
	return func(err error) {
		elapsed := t.now().Sub(start)
		metrics.StoreOperationDuration.WithLabelValues(method).Observe(elapsed.Seconds())
		metrics.StoreOperations.WithLabelValues(method, metrics.Outcome(err)).Inc()
		if t.report != nil {
			fmt.Fprintf(t.report, "%s method execution duration is %s.\n", method, elapsed)
		}
	}
}

// Create times Create
func (t *Timed) Create(fields record.Fields) (int32, error) {
	done := t.observe("Create")
	id, err := t.next.Create(fields)
	done(err)
	return id, err
}

// Insert times Insert
func (t *Timed) Insert(r record.Record) (bool, error) {
	done := t.observe("Insert")
	ok, err := t.next.Insert(r)
	done(err)
	return ok, err
}

// Edit times Edit
func (t *Timed) Edit(id int32, fields record.Fields) error {
	done := t.observe("Edit")
	err := t.next.Edit(id, fields)
	done(err)
	return err
}

// Remove times Remove
func (t *Timed) Remove(id int32) (bool, error) {
	done := t.observe("Remove")
	ok, err := t.next.Remove(id)
	done(err)
	return ok, err
}

// FindByFirstName times FindByFirstName
func (t *Timed) FindByFirstName(name string) storage.Records {
	return t.find("FindByFirstName", func() storage.Records { return t.next.FindByFirstName(name) })
}

// FindByLastName times FindByLastName
func (t *Timed) FindByLastName(name string) storage.Records {
	return t.find("FindByLastName", func() storage.Records { return t.next.FindByLastName(name) })
}

// FindByDateOfBirth times FindByDateOfBirth
func (t *Timed) FindByDateOfBirth(date time.Time) storage.Records {
	return t.find("FindByDateOfBirth", func() storage.Records { return t.next.FindByDateOfBirth(date) })
}

// find times the lookup together with the iteration of its results
func (t *Timed) find(method string, open func() storage.Records) storage.Records {
	return func(yield func(record.Record, error) bool) {
		done := t.observe(method)
		var err error
		defer func() { done(err) }()

		for r, e := range open() {
			if e != nil {
				err = e
			}
			if !yield(r, e) {
				return
			}
		}
	}
}

// GetAll times GetAll
func (t *Timed) GetAll() ([]record.Record, error) {
	done := t.observe("GetAll")
	all, err := t.next.GetAll()
	done(err)
	return all, err
}

// Stat times Stat and publishes the live record count
func (t *Timed) Stat() (storage.Stat, error) {
	done := t.observe("Stat")
	stat, err := t.next.Stat()
	done(err)
	if err == nil {
		metrics.LiveRecords.Set(float64(stat.Live()))
	}
	return stat, err
}

// Snapshot times Snapshot
func (t *Timed) Snapshot() (*storage.Snapshot, error) {
	done := t.observe("Snapshot")
	snap, err := t.next.Snapshot()
	done(err)
	return snap, err
}

// Restore times Restore
func (t *Timed) Restore(snap *storage.Snapshot) (storage.RestoreResult, error) {
	done := t.observe("Restore")
	result, err := t.next.Restore(snap)
	done(err)
	return result, err
}

// Purge times Purge
func (t *Timed) Purge() (storage.PurgeResult, error) {
	done := t.observe("Purge")
	result, err := t.next.Purge()
	done(err)
	return result, err
}
