package orm_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/orm"
)

func TestUnsupportedAttributeTypeError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := orm.NewUnsupportedAttributeTypeError("born", "string", "date", "postgres")
		assert.Equal(t, `orm: attribute "born": type string/date is not supported by postgres`, err.Error())

		err = orm.NewUnsupportedAttributeTypeError("blob", "other", "", "")
		assert.Equal(t, `orm: attribute "blob": type other is not supported`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := orm.NewUnsupportedAttributeTypeError("born", "string", "date", "postgres")
		assert.True(t, errors.Is(err, orm.ErrUnsupportedAttributeType))
		assert.True(t, orm.IsUnsupportedAttributeType(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, orm.IsUnsupportedAttributeType(errors.New("other error")))
		assert.False(t, orm.IsUnsupportedAttributeType(nil))
	})
}

func TestUnsupportedIdentityStrategyError(t *testing.T) {
	err := orm.NewUnsupportedIdentityStrategyError("id", "sequence", "mysql")
	assert.Equal(t, `orm: attribute "id": identity strategy sequence is not supported by mysql`, err.Error())
	assert.True(t, orm.IsUnsupportedIdentityStrategy(err))
	assert.True(t, orm.IsUnsupportedIdentityStrategy(fmt.Errorf("wrapper: %w", err)))
	assert.False(t, orm.IsUnsupportedIdentityStrategy(orm.ErrTypeMismatch))
}

func TestConflictingGeneratorError(t *testing.T) {
	err := orm.NewConflictingGeneratorError("user_seq", 1, 2)
	assert.Equal(t, `orm: generator "user_seq" already declared as 1, got 2`, err.Error())
	assert.True(t, errors.Is(err, orm.ErrConflictingGeneratorDeclaration))
	assert.True(t, orm.IsConflictingGenerator(err))
	assert.False(t, orm.IsConflictingGenerator(nil))
}

func TestTypeMismatchError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := orm.NewTypeMismatchError("c0", "int64", "abc", nil)
		assert.Equal(t, `orm: column "c0": cannot convert string to int64`, err.Error())

		err = orm.NewTypeMismatchError("c1", "bool", nil, errors.New("invalid syntax"))
		assert.Equal(t, `orm: column "c1": cannot convert to bool: invalid syntax`, err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		underlying := errors.New("driver error")
		err := orm.NewTypeMismatchError("c0", "int64", nil, underlying)
		assert.True(t, errors.Is(err, underlying))
		assert.True(t, errors.Is(err, orm.ErrTypeMismatch))
	})

	t.Run("IsTypeMismatch", func(t *testing.T) {
		err := orm.NewTypeMismatchError("c0", "int64", "abc", nil)
		assert.True(t, orm.IsTypeMismatch(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, orm.IsTypeMismatch(errors.New("other error")))
		assert.False(t, orm.IsTypeMismatch(nil))
	})
}

func TestMissingAliasError(t *testing.T) {
	err := orm.NewMissingAliasError("coalesce(u.nickname, 'anon')")
	assert.Equal(t, "orm: no alias assigned to coalesce(u.nickname, 'anon')", err.Error())
	assert.True(t, orm.IsMissingAlias(err))
	assert.True(t, errors.Is(fmt.Errorf("wrapper: %w", err), orm.ErrMissingAlias))
	assert.False(t, orm.IsMissingAlias(orm.ErrTypeMismatch))
}

func TestValidationError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := orm.NewValidationError("nickname", errors.New("blank column name"))
		assert.Equal(t, `orm: invalid declaration "nickname": blank column name`, err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		underlying := errors.New("too short")
		err := orm.NewValidationError("name", underlying)
		assert.True(t, errors.Is(err, underlying))
	})

	t.Run("IsValidationError", func(t *testing.T) {
		err := orm.NewValidationError("age", errors.New("must be positive"))
		assert.True(t, orm.IsValidationError(err))
		assert.True(t, orm.IsValidationError(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, orm.IsValidationError(errors.New("other error")))
		assert.False(t, orm.IsValidationError(nil))
	})
}

func TestAggregateError(t *testing.T) {
	t.Run("NoErrors", func(t *testing.T) {
		assert.Nil(t, orm.NewAggregateError())
		assert.Nil(t, orm.NewAggregateError(nil, nil, nil))
	})

	t.Run("SingleError", func(t *testing.T) {
		single := errors.New("single error")
		assert.Equal(t, single, orm.NewAggregateError(nil, single, nil))
	})

	t.Run("MultipleErrors", func(t *testing.T) {
		err := orm.NewAggregateError(
			errors.New("error 1"),
			orm.NewValidationError("id", errors.New("blank column name")),
		)
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "multiple errors")
		assert.Contains(t, err.Error(), "error 1")
		// Members stay visible to errors.As.
		assert.True(t, orm.IsValidationError(err))
	})
}

func BenchmarkErrors(b *testing.B) {
	b.Run("NewTypeMismatchError", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = orm.NewTypeMismatchError("c0", "int64", "abc", nil)
		}
	})

	b.Run("IsTypeMismatch", func(b *testing.B) {
		err := fmt.Errorf("wrapper: %w", orm.NewTypeMismatchError("c0", "int64", "abc", nil))
		for i := 0; i < b.N; i++ {
			_ = orm.IsTypeMismatch(err)
		}
	})
}
