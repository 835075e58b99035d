package criteria

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/orm"
	"github.com/syssam/orm/dialect"
	sqldialect "github.com/syssam/orm/dialect/sql"
)

func TestContextAlias(t *testing.T) {
	ctx := NewContext(nil)
	a, b := Lit(1), Lit(1)

	assert.Equal(t, "c0", ctx.Alias(a))
	assert.Equal(t, "c0", ctx.Alias(a), "alias is stable within a pass")
	assert.Equal(t, "c1", ctx.Alias(b), "equal values are distinct nodes")

	got, ok := ctx.Aliased(b)
	assert.True(t, ok)
	assert.Equal(t, "c1", got)
	_, ok = ctx.Aliased(Lit(2))
	assert.False(t, ok)

	// A new pass starts the counter over.
	assert.Equal(t, "c0", NewContext(nil).Alias(b))
}

func TestContextAliasUnique(t *testing.T) {
	ctx := NewContext(nil)
	seen := make(map[string]Expr)
	for i := range 100 {
		e := Func[int]("f", Lit(i))
		a := ctx.Alias(e)
		require.NotContains(t, seen, a)
		seen[a] = e
	}
}

func TestCoalesceSQL(t *testing.T) {
	ctx := NewContext(nil)
	c := Coalesce[string](Lit("a"), Lit("b"))

	assert.Equal(t, "coalesce('a', 'b')", c.QL(ctx))
	_, ok := ctx.Aliased(c)
	assert.False(t, ok, "query-language rendering has no side effects")

	assert.Equal(t, []string{"COALESCE('a', 'b')"}, c.SQL(ctx))
	alias, ok := ctx.Aliased(c)
	require.True(t, ok)
	assert.Equal(t, "c0", alias)
	assert.Equal(t, []string{"COALESCE('a', 'b')"}, c.SQL(ctx))
	assert.Equal(t, []string{"COALESCE('a', 'b') AS c0"}, c.Select(ctx, true))
	assert.Equal(t, []string{"c0"}, ctx.columns)
	assert.Empty(t, ctx.Err())
}

func TestCoalesceOrder(t *testing.T) {
	for n := 2; n <= 6; n++ {
		args := make([]string, n)
		c := Coalesce[string](Lit("v0"), Lit("v1"))
		args[0], args[1] = "'v0'", "'v1'"
		for i := 2; i < n; i++ {
			c.Const(fmt.Sprintf("v%d", i))
			args[i] = fmt.Sprintf("'v%d'", i)
		}
		frags := c.SQL(NewContext(nil))
		require.Len(t, frags, 1)
		assert.Contains(t, frags[0], "COALESCE("+strings.Join(args, ", ")+")")
		assert.Len(t, c.Args(), n)
	}
}

func TestCoalesceNullLiteral(t *testing.T) {
	ctx := NewContext(nil)
	fallback := "x"
	c := Coalesce[*string](Lit[*string](nil), Lit(&fallback))
	assert.Equal(t, "coalesce(null, 'x')", c.QL(ctx))
	assert.Equal(t, []string{"COALESCE(NULL, 'x')"}, c.SQL(ctx))
	c.Const(nil)
	assert.Equal(t, []string{"COALESCE(NULL, 'x', NULL)"}, c.SQL(ctx))
	assert.Empty(t, ctx.Err())
}

func TestFuncAlias(t *testing.T) {
	ctx := NewContext(nil)
	inner := Lower(Lit("X"))
	outer := Coalesce[string](inner, Lit("y"))

	assert.Equal(t, []string{"COALESCE(LOWER('X'), 'y')"}, outer.SQL(ctx))
	a, _ := ctx.Aliased(outer)
	b, _ := ctx.Aliased(inner)
	assert.Equal(t, "c0", a, "outer node allocates before its children")
	assert.Equal(t, "c1", b)
}

func TestSelectPredicate(t *testing.T) {
	ctx := NewContext(nil)
	p := EQ(Lit(1), Lit(1))
	assert.Equal(t, []string{"1 = 1"}, p.Select(ctx, false))
	assert.Empty(t, ctx.Err())
	p.Select(ctx, true)
	require.Len(t, ctx.Err(), 1)
	assert.Contains(t, ctx.Err()[0].Error(), "cannot be selected")
}

func TestJunction(t *testing.T) {
	ctx := NewContext(nil)
	tests := []struct {
		p       Predicate
		ql, sql string
	}{
		{And(), "1 = 1", "1 = 1"},
		{Or(), "1 = 0", "1 = 0"},
		{And(EQ(Lit(1), Lit(2))), "1 = 2", "1 = 2"},
		{
			Or(EQ(Lit("a"), Lit("b")), And(LT(Lit(1), Lit(2)), GTE(Lit(3), Lit(4)))),
			"'a' = 'b' or (1 < 2 and 3 >= 4)",
			"'a' = 'b' OR (1 < 2 AND 3 >= 4)",
		},
		{Not(IsNull(Lit[any](nil))), "not (null is null)", "NOT (NULL IS NULL)"},
		{IsNotNull(Lit(true)), "true is not null", "TRUE IS NOT NULL"},
		{Like(Lit("abc"), "a%"), "'abc' like 'a%'", "'abc' LIKE 'a%'"},
		{NEQ(Lit(1.5), Lit(2)), "1.5 <> 2", "1.5 <> 2"},
		{LTE(Lit(int8(1)), Lit(uint64(2))), "1 <= 2", "1 <= 2"},
		{GT(Lit(1), Lit(0)), "1 > 0", "1 > 0"},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.ql, tt.p.QL(ctx))
			assert.Equal(t, []string{tt.sql}, tt.p.SQL(ctx))
		})
	}
	assert.Empty(t, ctx.Err())
}

func TestLiterals(t *testing.T) {
	pg, err := sqldialect.NewAdaptor(dialect.Postgres)
	require.NoError(t, err)
	my, err := sqldialect.NewAdaptor(dialect.MySQL)
	require.NoError(t, err)

	id := uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")
	nick, n := "neo", 7
	pn := &n
	tests := []struct {
		name   string
		v      any
		ql     string
		pg, my string
	}{
		{"nil", nil, "null", "NULL", "NULL"},
		{"string", "it's", "'it''s'", "'it''s'", "'it''s'"},
		{"backslash", `a\b`, `'a\b'`, `E'a\\b'`, `'a\\b'`},
		{"bool", false, "false", "FALSE", "FALSE"},
		{"int", 42, "42", "42", "42"},
		{"uint", uint16(7), "7", "7", "7"},
		{"float", 0.25, "0.25", "0.25", "0.25"},
		{"bytes", []byte{0xde, 0xad}, "X'dead'", `'\xdead'`, "X'dead'"},
		{"uuid", id, "'7d444840-9dc0-11d1-b245-5ffdce74fad2'", "'7d444840-9dc0-11d1-b245-5ffdce74fad2'", "'7d444840-9dc0-11d1-b245-5ffdce74fad2'"},
		{"decimal", apd.New(12345, -2), "123.45", "123.45", "123.45"},
		{"time", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), "'2024-05-01T10:30:00Z'", "'2024-05-01 10:30:00'", "'2024-05-01 10:30:00'"},
		{"time_zone", time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60)), "'2024-01-01T10:00:00Z'", "'2024-01-01 10:00:00'", "'2024-01-01 10:00:00'"},
		{"nil_pointer", (*string)(nil), "null", "NULL", "NULL"},
		{"nil_decimal", (*apd.Decimal)(nil), "null", "NULL", "NULL"},
		{"string_pointer", &nick, "'neo'", "'neo'", "'neo'"},
		{"pointer_pointer", &pn, "7", "7", "7"},
		{"null_valuer", sql.Null[string]{}, "null", "NULL", "NULL"},
		{"valid_valuer", sql.Null[int64]{V: 3, Valid: true}, "3", "3", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ql, qlLiteral(tt.v))
			assert.Equal(t, tt.pg, sqlLiteral(NewContext(pg), tt.v))
			assert.Equal(t, tt.my, sqlLiteral(NewContext(my), tt.v))
		})
	}
}

func TestConvert(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		s, err := convert[string]("c0", nil)
		require.NoError(t, err)
		assert.Empty(t, s)
		d, err := convert[*apd.Decimal]("c0", nil)
		require.NoError(t, err)
		assert.Nil(t, d)
	})
	t.Run("identity", func(t *testing.T) {
		n, err := convert[int64]("c0", int64(5))
		require.NoError(t, err)
		assert.Equal(t, int64(5), n)
		v, err := convert[any]("c0", "x")
		require.NoError(t, err)
		assert.Equal(t, "x", v)
	})
	t.Run("text", func(t *testing.T) {
		s, err := convert[string]("c0", []byte("anon"))
		require.NoError(t, err)
		assert.Equal(t, "anon", s)
		n, err := convert[int32]("c0", []byte("12"))
		require.NoError(t, err)
		assert.Equal(t, int32(12), n)
		f, err := convert[float64]("c0", "1.5")
		require.NoError(t, err)
		assert.Equal(t, 1.5, f)
		ts, err := convert[time.Time]("c0", "2024-05-01 10:30:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), ts)
		day, err := convert[time.Time]("c0", []byte("2024-05-01"))
		require.NoError(t, err)
		assert.Equal(t, 1, day.Day())
		id, err := convert[uuid.UUID]("c0", "7d444840-9dc0-11d1-b245-5ffdce74fad2")
		require.NoError(t, err)
		assert.Equal(t, "7d444840-9dc0-11d1-b245-5ffdce74fad2", id.String())
		d, err := convert[*apd.Decimal]("c0", "12.50")
		require.NoError(t, err)
		assert.Equal(t, "12.50", d.String())
	})
	t.Run("numeric", func(t *testing.T) {
		b, err := convert[bool]("c0", int64(1))
		require.NoError(t, err)
		assert.True(t, b)
		u, err := convert[uint8]("c0", int64(255))
		require.NoError(t, err)
		assert.Equal(t, uint8(255), u)
		n, err := convert[int]("c0", float64(3))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		d, err := convert[*apd.Decimal]("c0", int64(7))
		require.NoError(t, err)
		assert.Equal(t, "7", d.String())
		s, err := convert[string]("c0", int64(7))
		require.NoError(t, err)
		assert.Equal(t, "7", s)
	})
	t.Run("nullable", func(t *testing.T) {
		p, err := convert[*string]("c0", nil)
		require.NoError(t, err)
		assert.Nil(t, p)
		p, err = convert[*string]("c0", []byte("neo"))
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "neo", *p)
		n, err := convert[*int32]("c0", int64(7))
		require.NoError(t, err)
		require.NotNil(t, n)
		assert.Equal(t, int32(7), *n)

		ns, err := convert[sql.Null[string]]("c0", nil)
		require.NoError(t, err)
		assert.False(t, ns.Valid)
		ns, err = convert[sql.Null[string]]("c0", "neo")
		require.NoError(t, err)
		assert.Equal(t, sql.Null[string]{V: "neo", Valid: true}, ns)
		ni, err := convert[sql.NullInt64]("c0", int64(3))
		require.NoError(t, err)
		assert.Equal(t, sql.NullInt64{Int64: 3, Valid: true}, ni)

		_, err = convert[*int64]("c0", "abc")
		require.Error(t, err)
		assert.True(t, orm.IsTypeMismatch(err))
		assert.Contains(t, err.Error(), "cannot convert string to *int64")
		_, err = convert[*uuid.UUID]("c0", int64(1))
		assert.True(t, orm.IsTypeMismatch(err))
	})
	t.Run("json", func(t *testing.T) {
		raw, err := convert[json.RawMessage]("c0", []byte(`{"a":1}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(raw))
		raw, err = convert[json.RawMessage]("c0", "[1, 2]")
		require.NoError(t, err)
		assert.JSONEq(t, "[1, 2]", string(raw))
	})
	t.Run("mismatch", func(t *testing.T) {
		tests := []struct {
			name string
			conv func() error
			msg  string
		}{
			{"overflow", func() error { _, err := convert[int8]("c0", int64(300)); return err }, "cannot convert int64 to int8: value 300 out of range"},
			{"negative", func() error { _, err := convert[uint]("c1", int64(-1)); return err }, `column "c1": cannot convert int64 to uint`},
			{"syntax", func() error { _, err := convert[int64]("c0", "abc"); return err }, "cannot convert string to int64: strconv.ParseInt"},
			{"fraction", func() error { _, err := convert[int64]("c0", 1.5); return err }, "value 1.5 is not an integer"},
			{"bool", func() error { _, err := convert[bool]("c0", int64(2)); return err }, "cannot convert int64 to bool"},
			{"time", func() error { _, err := convert[time.Time]("c0", "yesterday"); return err }, `unrecognized time format "yesterday"`},
			{"uuid", func() error { _, err := convert[uuid.UUID]("c0", int64(1)); return err }, `orm: column "c0": cannot convert int64 to uuid.UUID`},
			{"unsupported", func() error { _, err := convert[[]int]("c0", "x"); return err }, `orm: column "c0": cannot convert string to []int`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.conv()
				require.Error(t, err)
				assert.True(t, orm.IsTypeMismatch(err))
				assert.Contains(t, err.Error(), tt.msg)
			})
		}
	})
}
