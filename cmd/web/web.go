package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"filecabinet/database"
	"filecabinet/query"
	"filecabinet/record"
	"filecabinet/storage"
	"filecabinet/validation"
)

// RecordApp is a REST API over the record database
type RecordApp struct {
	db     *database.Database
	logger *zap.Logger
}

func New(db *database.Database, logger *zap.Logger) *RecordApp {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordApp{db: db, logger: logger.Named("web")}
}

// recordJSON is the wire form of a record
type recordJSON struct {
	ID          int32           `json:"id,omitempty"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	DateOfBirth string          `json:"dateOfBirth"`
	Sex         string          `json:"sex"`
	Weight      decimal.Decimal `json:"weight"`
	Height      int16           `json:"height"`
}

func toJSON(r record.Record) recordJSON {
	return recordJSON{
		ID:          r.ID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth.Format(record.DateLayout),
		Sex:         string(r.Sex),
		Weight:      r.Weight,
		Height:      r.Height,
	}
}

func (j recordJSON) fields() (record.Fields, error) {
	dob, err := record.ParseDate(j.DateOfBirth)
	if err != nil {
		return record.Fields{}, err
	}
	sex, err := record.ParseSex(j.Sex)
	if err != nil {
		return record.Fields{}, err
	}
	return record.Fields{
		FirstName:   j.FirstName,
		LastName:    j.LastName,
		DateOfBirth: dob,
		Sex:         sex,
		Weight:      j.Weight,
		Height:      j.Height,
	}, nil
}

// badRequest marks client input that could not be decoded or converted
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

// statusFor maps a database error to an HTTP status code
func statusFor(err error) int {
	var (
		bad     badRequest
		invalid *validation.Error
		syntax  *query.SyntaxError
		unknown *query.UnknownFieldError
		literal *query.LiteralError
	)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateID):
		return http.StatusConflict
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	case errors.As(err, &bad),
		errors.As(err, &syntax),
		errors.As(err, &unknown),
		errors.As(err, &literal),
		errors.Is(err, query.ErrUnsupportedSyntax),
		errors.Is(err, query.ErrAmbiguousAnd):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (app *RecordApp) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		app.logger.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Handle routes /records by method
func (app *RecordApp) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		app.handleGetRecords(w, r)
	case http.MethodPost:
		app.handleCreateRecord(w, r)
	case http.MethodPut:
		app.handleUpdateRecord(w, r)
	case http.MethodDelete:
		app.handleDeleteRecords(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (app *RecordApp) handleGetRecords(w http.ResponseWriter, r *http.Request) {
	if idStr := r.URL.Query().Get("id"); idStr != "" {
		id, err := record.ParseID(idStr)
		if err != nil {
			app.writeError(w, r, badRequest{err})
			return
		}
		rec, err := app.db.Get(id)
		if err != nil {
			app.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toJSON(rec))
		return
	}

	rows, err := app.db.Select(r.URL.Query().Get("filter"))
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	out := make([]recordJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, toJSON(row))
	}
	writeJSON(w, http.StatusOK, out)
}

func (app *RecordApp) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var body recordJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		app.writeError(w, r, badRequest{fmt.Errorf("invalid JSON: %w", err)})
		return
	}
	fields, err := body.fields()
	if err != nil {
		app.writeError(w, r, badRequest{err})
		return
	}

	// a body id inserts under that id, otherwise the store picks one
	id := body.ID
	if id != 0 {
		_, err = app.db.Insert(record.Record{ID: id, Fields: fields})
	} else {
		id, err = app.db.Create(fields)
	}
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Record created", "id": id})
}

func (app *RecordApp) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		http.Error(w, "Missing 'id' parameter", http.StatusBadRequest)
		return
	}
	id, err := record.ParseID(idStr)
	if err != nil {
		app.writeError(w, r, badRequest{err})
		return
	}

	// body holds only the fields to change: {"lastName": "Moss", "height": 170}
	var changes map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		app.writeError(w, r, badRequest{fmt.Errorf("invalid JSON: %w", err)})
		return
	}
	assignments, err := toAssignments(changes)
	if err != nil {
		app.writeError(w, r, badRequest{err})
		return
	}

	// literals that do not convert are the client's fault
	if err := record.Apply(&record.Fields{}, assignments); err != nil {
		app.writeError(w, r, badRequest{err})
		return
	}

	updated, err := app.db.Patch(id, assignments)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Record updated", "record": toJSON(updated)})
}

func toAssignments(changes map[string]json.RawMessage) ([]record.Assignment, error) {
	assignments := make([]record.Assignment, 0, len(changes))
	for key, raw := range changes {
		field, ok := record.LookupField(key)
		if !ok {
			return nil, fmt.Errorf("unknown field '%s'", key)
		}
		if field == record.FieldID {
			return nil, fmt.Errorf("id cannot be changed")
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			// numbers arrive unquoted
			value = strings.TrimSpace(string(raw))
		}
		assignments = append(assignments, record.Assignment{Field: field, Value: value})
	}
	return assignments, nil
}

func (app *RecordApp) handleDeleteRecords(w http.ResponseWriter, r *http.Request) {
	clause := r.URL.Query().Get("filter")
	if idStr := r.URL.Query().Get("id"); idStr != "" {
		id, err := record.ParseID(idStr)
		if err != nil {
			app.writeError(w, r, badRequest{err})
			return
		}
		clause = fmt.Sprintf("id = '%d'", id)
	}
	if clause == "" {
		http.Error(w, "Missing 'id' or 'filter' parameter", http.StatusBadRequest)
		return
	}

	ids, err := app.db.Delete(clause)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	if len(ids) == 0 {
		app.writeError(w, r, storage.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Records deleted", "ids": ids})
}

// RunServer serves the record API and /metrics on addr until ctx is done
func RunServer(ctx context.Context, db *database.Database, addr string, logger *zap.Logger) error {
	app := New(db, logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	app.logger.Info("record API server running", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("error starting server: %w", err)
	}
}
