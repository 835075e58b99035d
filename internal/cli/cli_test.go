package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/orm"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

var shop = filepath.Join("testdata", "shop.yaml")

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ormctl", cmd.Use)

	for _, name := range []string{"columns", "generators", "query"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "columns", shop, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestColumns(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, _, err := execute(t, "columns", shop)
		require.NoError(t, err)
		assert.Contains(t, out, "ENTITY")
		assert.Contains(t, out, "customers.id")
		assert.Contains(t, out, "sequence(customer_seq)")
		assert.Contains(t, out, "table(invoice_gen)")
		assert.Contains(t, out, "null,size=64")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "columns", shop, "--format", "json", "--entity", "Customer")
		require.NoError(t, err)
		var infos []ColumnInfo
		require.NoError(t, json.Unmarshal([]byte(out), &infos))
		require.Len(t, infos, 4)

		id := infos[0]
		assert.Equal(t, "customers", id.Table)
		assert.Equal(t, "id", id.Column)
		assert.Equal(t, "bigint", id.Type)
		assert.Equal(t, "BIGINT", id.Code)
		assert.Equal(t, "sequence", id.Identity)
		assert.Equal(t, []string{"pk"}, id.Flags)

		assert.Equal(t, "nickname", infos[1].Attribute)
		assert.Equal(t, []string{"null", "size=64"}, infos[1].Flags)
		assert.Empty(t, infos[1].Identity)

		assert.Equal(t, "revision", infos[3].Attribute)
		assert.Equal(t, "integer", infos[3].Type)
		assert.Equal(t, []string{"version"}, infos[3].Flags)
	})

	t.Run("dialect_override", func(t *testing.T) {
		_, _, err := execute(t, "columns", shop, "--dialect", "mysql")
		require.Error(t, err)
		assert.Equal(t, ExitFailure, ExitCode(err))
		assert.True(t, orm.IsUnsupportedIdentityStrategy(err))
	})

	t.Run("verbose", func(t *testing.T) {
		_, logs, err := execute(t, "columns", shop, "-v")
		require.NoError(t, err)
		assert.Contains(t, logs, "entity registered")
		assert.Contains(t, logs, "generator registered")
	})
}

func TestColumnsErrors(t *testing.T) {
	_, _, err := execute(t, "columns", filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))

	_, _, err = execute(t, "columns", filepath.Join("testdata", "invalid.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.True(t, orm.IsValidationError(err))
	assert.Contains(t, err.Error(), "no identifier attribute")

	_, _, err = execute(t, "columns", shop, "--dialect", "oracle")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
}

func TestGenerators(t *testing.T) {
	out, _, err := execute(t, "generators", shop, "--format", "json")
	require.NoError(t, err)
	var infos []GeneratorInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	assert.Equal(t, []GeneratorInfo{
		{Kind: "sequence", Name: "customer_seq", Target: "customers_id_seq", InitialValue: 1, AllocationSize: 20},
		{Kind: "table", Name: "invoice_gen", Target: "id_generators[gen_name=invoice_gen].gen_value", InitialValue: 1, AllocationSize: 50},
	}, infos)

	out, _, err = execute(t, "generators", shop)
	require.NoError(t, err)
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "customers_id_seq")
}

func TestQuery(t *testing.T) {
	t.Run("coalesce", func(t *testing.T) {
		out, _, err := execute(t, "query", shop, "-e", "Customer", "-s", "nickname", "--default", "anon", "--format", "json")
		require.NoError(t, err)
		var info QueryInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, QueryInfo{
			QL:      "select coalesce(c.nickname, 'anon') from Customer c",
			SQL:     "SELECT COALESCE(t0.nickname, 'anon') AS c0 FROM customers t0",
			Columns: []string{"c0"},
		}, info)
	})

	t.Run("entity", func(t *testing.T) {
		out, _, err := execute(t, "query", shop, "-e", "Customer", "--null", "nickname", "--order", "id:desc")
		require.NoError(t, err)
		assert.Contains(t, out, "SQL:     SELECT t0.id AS c0_0, t0.nickname AS c0_1, t0.email AS c0_2, t0.revision AS c0_3 FROM customers t0 WHERE t0.nickname IS NULL ORDER BY t0.id DESC\n")
		assert.Contains(t, out, "QL:      select c from Customer c where c.nickname is null order by c.id desc\n")
	})

	t.Run("errors", func(t *testing.T) {
		_, _, err := execute(t, "query", shop, "-e", "Nobody")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown entity "Nobody"`)

		_, _, err = execute(t, "query", shop, "-e", "Customer", "-s", "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown attribute "missing" of Customer`)

		_, _, err = execute(t, "query", shop, "-e", "Customer", "--order", "id:sideways")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, ExitCode(err))

		_, _, err = execute(t, "query", shop)
		require.Error(t, err)
	})
}
