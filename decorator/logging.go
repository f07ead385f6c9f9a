package decorator

import (
	"time"

	"go.uber.org/zap"

	"filecabinet/record"
	"filecabinet/storage"
)

// Logged wraps a Store and logs every call with its arguments and outcome
type Logged struct {
	next   storage.Store
	logger *zap.Logger
}

// NewLogged wraps next, logging to logger
func NewLogged(next storage.Store, logger *zap.Logger) *Logged {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logged{next: next, logger: logger.Named("store")}
}

func fieldsOf(f record.Fields) []zap.Field {
	return []zap.Field{
		zap.String("firstName", f.FirstName),
		zap.String("lastName", f.LastName),
		zap.String("dateOfBirth", f.DateOfBirth.Format(record.DateLayout)),
		zap.String("sex", string(f.Sex)),
		zap.String("weight", f.Weight.String()),
		zap.Int16("height", f.Height),
	}
}

func (l *Logged) done(method string, err error, fields ...zap.Field) {
	if err != nil {
		l.logger.Warn(method+" failed", append(fields, zap.Error(err))...)
		return
	}
	l.logger.Info(method+" returned", fields...)
}

// Create logs and forwards Create
func (l *Logged) Create(fields record.Fields) (int32, error) {
	l.logger.Info("calling Create", fieldsOf(fields)...)
	id, err := l.next.Create(fields)
	l.done("Create", err, zap.Int32("id", id))
	return id, err
}

// Insert logs and forwards Insert
func (l *Logged) Insert(r record.Record) (bool, error) {
	l.logger.Info("calling Insert", append(fieldsOf(r.Fields), zap.Int32("id", r.ID))...)
	ok, err := l.next.Insert(r)
	l.done("Insert", err, zap.Bool("inserted", ok))
	return ok, err
}

// Edit logs and forwards Edit
func (l *Logged) Edit(id int32, fields record.Fields) error {
	l.logger.Info("calling Edit", append(fieldsOf(fields), zap.Int32("id", id))...)
	err := l.next.Edit(id, fields)
	l.done("Edit", err)
	return err
}

// Remove logs and forwards Remove
func (l *Logged) Remove(id int32) (bool, error) {
	l.logger.Info("calling Remove", zap.Int32("id", id))
	ok, err := l.next.Remove(id)
	l.done("Remove", err, zap.Bool("removed", ok))
	return ok, err
}

// FindByFirstName logs and forwards FindByFirstName
func (l *Logged) FindByFirstName(name string) storage.Records {
	return l.find("FindByFirstName", zap.String("firstName", name), l.next.FindByFirstName(name))
}

// FindByLastName logs and forwards FindByLastName
func (l *Logged) FindByLastName(name string) storage.Records {
	return l.find("FindByLastName", zap.String("lastName", name), l.next.FindByLastName(name))
}

// FindByDateOfBirth logs and forwards FindByDateOfBirth
func (l *Logged) FindByDateOfBirth(date time.Time) storage.Records {
	arg := zap.String("dateOfBirth", date.Format(record.DateLayout))
	return l.find("FindByDateOfBirth", arg, l.next.FindByDateOfBirth(date))
}

// find logs once the wrapped sequence has been drained or abandoned
func (l *Logged) find(method string, arg zap.Field, seq storage.Records) storage.Records {
	return func(yield func(record.Record, error) bool) {
		l.logger.Info("calling "+method, arg)
		var (
			n   int
			err error
		)
		defer func() { l.done(method, err, zap.Int("records", n)) }()

		for r, e := range seq {
			if e != nil {
				err = e
			} else {
				n++
			}
			if !yield(r, e) {
				return
			}
		}
	}
}

// GetAll logs and forwards GetAll
func (l *Logged) GetAll() ([]record.Record, error) {
	l.logger.Info("calling GetAll")
	all, err := l.next.GetAll()
	l.done("GetAll", err, zap.Int("records", len(all)))
	return all, err
}

// Stat logs and forwards Stat
func (l *Logged) Stat() (storage.Stat, error) {
	l.logger.Info("calling Stat")
	stat, err := l.next.Stat()
	l.done("Stat", err, zap.Int("total", stat.Total), zap.Int("removed", stat.Removed))
	return stat, err
}

// Snapshot logs and forwards Snapshot
func (l *Logged) Snapshot() (*storage.Snapshot, error) {
	l.logger.Info("calling Snapshot")
	snap, err := l.next.Snapshot()
	n := 0
	if snap != nil {
		n = snap.Len()
	}
	l.done("Snapshot", err, zap.Int("records", n))
	return snap, err
}

// Restore logs and forwards Restore
func (l *Logged) Restore(snap *storage.Snapshot) (storage.RestoreResult, error) {
	l.logger.Info("calling Restore", zap.Int("records", snap.Len()))
	result, err := l.next.Restore(snap)
	l.done("Restore", err, zap.Int("applied", result.Applied), zap.Int("failed", len(result.Failures)))
	return result, err
}

// Purge logs and forwards Purge
func (l *Logged) Purge() (storage.PurgeResult, error) {
	l.logger.Info("calling Purge")
	result, err := l.next.Purge()
	l.done("Purge", err, zap.Int("total", result.Total), zap.Int("purged", result.Purged))
	return result, err
}
