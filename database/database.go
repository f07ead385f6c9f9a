package database

import (
	"sync"

	"go.uber.org/zap"

	"filecabinet/metrics"
	"filecabinet/query"
	"filecabinet/record"
	"filecabinet/storage"
)

// Database is the command/query layer over a record store
type Database struct {
	mu     sync.Mutex
	store  storage.Store
	memo   *query.Memo
	logger *zap.Logger
}

// Option configures a Database
type Option func(*Database)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(db *Database) {
		if logger != nil {
			db.logger = logger
		}
	}
}

// New creates a database over store. The database serializes all access to
// the store; callers must not use the store directly afterwards.
func New(store storage.Store, opts ...Option) *Database {
	db := &Database{
		store:  store,
		memo:   query.NewMemo(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// invalidate drops cached filter results after a mutation
func (db *Database) invalidate() {
	if n := db.memo.Len(); n > 0 {
		hits, misses := db.memo.Stats()
		db.logger.Debug("clearing filter cache",
			zap.Int("entries", n),
			zap.Uint64("hits", hits),
			zap.Uint64("misses", misses),
		)
	}
	db.memo.Clear()
}

// evaluate runs p against the live records, consulting the memo first
func (db *Database) evaluate(p *query.Predicate) ([]record.Record, error) {
	if p.IsEmpty() {
		return db.store.GetAll()
	}

	key := p.Key()
	if cached, ok := db.memo.Get(key); ok {
		metrics.MemoLookups.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.MemoLookups.WithLabelValues("miss").Inc()

	all, err := db.store.GetAll()
	if err != nil {
		return nil, err
	}
	matched, err := p.Evaluate(all)
	if err != nil {
		return nil, err
	}
	db.memo.Put(key, matched)
	return matched, nil
}
