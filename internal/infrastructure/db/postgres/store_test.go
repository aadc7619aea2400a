package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
)

func newMockStore(t *testing.T) (*Store, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	return &Store{pool: mock}, mock
}

func expectationsMet(t *testing.T, mock pgxmockv3.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStore_InitSchema(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_store").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))

	if err := s.initSchema(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	expectationsMet(t, mock)
}

func TestStore_Get(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectSQL)).
		WithArgs("users").
		WillReturnRows(pgxmockv3.NewRows([]string{"value"}).AddRow(`[{"id":"1"}]`))

	v, found, err := s.Get(context.Background(), "users")
	if err != nil || !found {
		t.Fatalf("unexpected result found=%v err=%v", found, err)
	}
	if v != `[{"id":"1"}]` {
		t.Fatalf("unexpected value %q", v)
	}
	expectationsMet(t, mock)
}

func TestStore_GetMissing(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectSQL)).
		WithArgs("token").
		WillReturnError(pgx.ErrNoRows)

	_, found, err := s.Get(context.Background(), "token")
	if err != nil {
		t.Fatalf("missing key must not be an error: %v", err)
	}
	if found {
		t.Fatal("expected found=false")
	}
	expectationsMet(t, mock)
}

func TestStore_GetError(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(selectSQL)).WithArgs("users").WillReturnError(boom)

	if _, _, err := s.Get(context.Background(), "users"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestStore_Set(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
		WithArgs("customers", "[]").
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))

	if err := s.Set(context.Background(), "customers", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	expectationsMet(t, mock)
}

func TestStore_Remove(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(deleteSQL)).
		WithArgs("token").
		WillReturnResult(pgxmockv3.NewResult("DELETE", 0))

	if err := s.Remove(context.Background(), "token"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	expectationsMet(t, mock)
}
