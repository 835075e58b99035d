package sql

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/orm"
	"github.com/syssam/orm/dialect"
)

func TestOpenDB(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
	}{
		{"Postgres", dialect.Postgres},
		{"MySQL", dialect.MySQL},
		{"SQLite", dialect.SQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			drv := OpenDB(tt.dialect, db)
			assert.NotNil(t, drv)
			assert.Equal(t, tt.dialect, drv.Dialect())
		})
	}
}

func TestOpenMySQLDSN(t *testing.T) {
	_, err := Open(dialect.MySQL, "not a dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse mysql dsn")
}

// TestDriverQuery tests query operations.
func TestDriverQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)

	t.Run("simple_query", func(t *testing.T) {
		mock.ExpectQuery("SELECT t0.id AS c0 FROM users t0").
			WillReturnRows(sqlmock.NewRows([]string{"c0"}).
				AddRow(1).
				AddRow(2))

		rows := &Rows{}
		err := drv.Query(context.Background(), "SELECT t0.id AS c0 FROM users t0", []any{}, rows)
		require.NoError(t, err)
		require.NoError(t, rows.Close())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query_with_args", func(t *testing.T) {
		mock.ExpectQuery("SELECT t0.name AS c0 FROM users t0 WHERE t0.id = \\$1").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"c0"}).AddRow("Alice"))

		rows := &Rows{}
		err := drv.Query(context.Background(), "SELECT t0.name AS c0 FROM users t0 WHERE t0.id = $1", []any{1}, rows)
		require.NoError(t, err)
		require.NoError(t, rows.Close())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query_error", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mock.ExpectQuery("SELECT").WillReturnError(expectedErr)

		rows := &Rows{}
		err := drv.Query(context.Background(), "SELECT", []any{}, rows)
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.False(t, orm.IsTypeMismatch(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("data_exception", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WillReturnError(&pq.Error{Code: "22P02", Message: `invalid input syntax for type integer: "abc"`})

		rows := &Rows{}
		err := drv.Query(context.Background(), "SELECT", []any{}, rows)
		require.Error(t, err)
		assert.True(t, orm.IsTypeMismatch(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid_args", func(t *testing.T) {
		err := drv.Query(context.Background(), "SELECT", nil, &Rows{})
		require.Error(t, err)
		err = drv.Query(context.Background(), "SELECT", []any{}, nil)
		require.Error(t, err)
	})
}

// TestDriverExec tests execute operations.
func TestDriverExec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)

	t.Run("simple_exec", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := drv.Exec(context.Background(), "INSERT INTO users (name) VALUES ('test')", []any{}, nil)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec_with_result", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET name = \\$1 WHERE id = \\$2").
			WithArgs("Alice", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		var res Result
		err := drv.Exec(context.Background(), "UPDATE users SET name = $1 WHERE id = $2", []any{"Alice", 1}, &res)
		require.NoError(t, err)
		n, err := res.RowsAffected()
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec_error", func(t *testing.T) {
		mock.ExpectExec("INSERT").WillReturnError(&mysql.MySQLError{Number: 1366, Message: "Incorrect integer value"})

		err := drv.Exec(context.Background(), "INSERT INTO users (age) VALUES ('x')", []any{}, nil)
		require.Error(t, err)
		assert.True(t, orm.IsTypeMismatch(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestDriverTransaction tests transaction operations.
func TestDriverTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.SQLite, db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "INSERT INTO users DEFAULT VALUES", []any{}, nil))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverLogging(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	drv := OpenDB(dialect.Postgres, db, WithLogger(logger), WithSlowThreshold(time.Hour))

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"c0"}).AddRow(1))
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT 1", []any{}, rows))
	require.NoError(t, rows.Close())
	assert.Contains(t, buf.String(), "query executed")
	assert.Contains(t, buf.String(), "SELECT 1")
	assert.NotContains(t, buf.String(), "slow query")
}

func TestScanRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"c0", "c1"}).
			AddRow("Alice", nil).
			AddRow(nil, []byte("bob@example.com")))

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT t0.name AS c0, t0.email AS c1 FROM users t0", []any{}, rows))
	all, err := ScanRows(rows)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"c0", "c1"}, all[0].Columns())

	v, err := all[0].Value("c0")
	require.NoError(t, err)
	assert.Equal(t, "Alice", v)
	v, err = all[0].Value("c1")
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = all[1].Value("c1")
	require.NoError(t, err)
	assert.Equal(t, []byte("bob@example.com"), v)

	_, err = all[1].Value("c9")
	require.Error(t, err)
	assert.True(t, orm.IsMissingAlias(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScanRowsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"c0"}).
			AddRow(1).
			RowError(0, &pq.Error{Code: "22003", Message: "integer out of range"}))

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT", []any{}, rows))
	_, err = ScanRows(rows)
	require.Error(t, err)
	assert.True(t, orm.IsTypeMismatch(err))
}

func TestIsTypeMismatchError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pq_data_exception", &pq.Error{Code: "22007"}, true},
		{"pq_unique", &pq.Error{Code: "23505"}, false},
		{"mysql_out_of_range", &mysql.MySQLError{Number: 1264}, true},
		{"mysql_duplicate", &mysql.MySQLError{Number: 1062}, false},
		{"scan_conversion", errors.New(`sql: Scan error on column index 0, name "c0": converting driver.Value type string ("x") to a int64: invalid syntax`), true},
		{"sqlite", errors.New("datatype mismatch"), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTypeMismatchError(tt.err))
		})
	}
}

// TestEscapeStringValue tests string value escaping.
func TestEscapeStringValue(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "simple"},
		{"it's", "it''s"},
		{`back\slash`, `back\\slash`},
		{`it's a \test`, `it''s a \\test`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeStringValue(tt.input))
		})
	}
}

// BenchmarkDriver benchmarks driver operations.
func BenchmarkDriver(b *testing.B) {
	db, mock, err := sqlmock.New()
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db, WithLogger(slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))))
	b.Run("Query", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"c0"}).AddRow(1))
			rows := &Rows{}
			_ = drv.Query(context.Background(), "SELECT 1", []any{}, rows)
			_ = rows.Close()
		}
	})
}
