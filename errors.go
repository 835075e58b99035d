package orm

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the mapping and compilation failures of this layer.
// None of them is transient: they are reported to the caller and never retried.
var (
	// ErrUnsupportedAttributeType is returned when no SQL type is known for
	// the declared value type of an attribute.
	ErrUnsupportedAttributeType = errors.New("orm: unsupported attribute type")

	// ErrUnsupportedIdentityStrategy is returned when the adaptor cannot
	// fulfill the declared identity generation strategy.
	ErrUnsupportedIdentityStrategy = errors.New("orm: unsupported identity strategy")

	// ErrConflictingGeneratorDeclaration is returned when a generator name is
	// declared twice with different parameters.
	ErrConflictingGeneratorDeclaration = errors.New("orm: conflicting generator declaration")

	// ErrTypeMismatch is returned when a row value cannot be converted to the
	// declared type of an expression.
	ErrTypeMismatch = errors.New("orm: type mismatch")

	// ErrMissingAlias is returned when a value is extracted for an expression
	// that received no alias from the compiler.
	ErrMissingAlias = errors.New("orm: missing alias")
)

// UnsupportedAttributeTypeError reports an attribute whose value type (and
// temporal qualifier) has no SQL type mapping in the adaptor.
type UnsupportedAttributeTypeError struct {
	Attribute string // Logical attribute name
	Type      string // Declared value type
	Temporal  string // Temporal qualifier, empty if none
	Dialect   string // Adaptor dialect
}

// Error returns the error string.
func (e *UnsupportedAttributeTypeError) Error() string {
	typ := e.Type
	if e.Temporal != "" {
		typ += "/" + e.Temporal
	}
	if e.Dialect != "" {
		return fmt.Sprintf("orm: attribute %q: type %s is not supported by %s", e.Attribute, typ, e.Dialect)
	}
	return fmt.Sprintf("orm: attribute %q: type %s is not supported", e.Attribute, typ)
}

// Is reports whether the target error matches ErrUnsupportedAttributeType.
func (e *UnsupportedAttributeTypeError) Is(err error) bool {
	return err == ErrUnsupportedAttributeType
}

// NewUnsupportedAttributeTypeError returns a new UnsupportedAttributeTypeError.
func NewUnsupportedAttributeTypeError(attr, typ, temporal, dialect string) *UnsupportedAttributeTypeError {
	return &UnsupportedAttributeTypeError{Attribute: attr, Type: typ, Temporal: temporal, Dialect: dialect}
}

// IsUnsupportedAttributeType returns true if the error is an UnsupportedAttributeTypeError.
func IsUnsupportedAttributeType(err error) bool {
	return err != nil && errors.Is(err, ErrUnsupportedAttributeType)
}

// UnsupportedIdentityStrategyError reports a generation strategy that the
// adaptor resolves to no identity kind.
type UnsupportedIdentityStrategyError struct {
	Attribute string
	Strategy  string
	Dialect   string
}

// Error returns the error string.
func (e *UnsupportedIdentityStrategyError) Error() string {
	return fmt.Sprintf("orm: attribute %q: identity strategy %s is not supported by %s", e.Attribute, e.Strategy, e.Dialect)
}

// Is reports whether the target error matches ErrUnsupportedIdentityStrategy.
func (e *UnsupportedIdentityStrategyError) Is(err error) bool {
	return err == ErrUnsupportedIdentityStrategy
}

// NewUnsupportedIdentityStrategyError returns a new UnsupportedIdentityStrategyError.
func NewUnsupportedIdentityStrategyError(attr, strategy, dialect string) *UnsupportedIdentityStrategyError {
	return &UnsupportedIdentityStrategyError{Attribute: attr, Strategy: strategy, Dialect: dialect}
}

// IsUnsupportedIdentityStrategy returns true if the error is an UnsupportedIdentityStrategyError.
func IsUnsupportedIdentityStrategy(err error) bool {
	return err != nil && errors.Is(err, ErrUnsupportedIdentityStrategy)
}

// ConflictingGeneratorError reports a generator name that was registered
// before with different parameters.
type ConflictingGeneratorError struct {
	Name     string
	Existing any // Registered declaration
	Declared any // Rejected declaration
}

// Error returns the error string.
func (e *ConflictingGeneratorError) Error() string {
	return fmt.Sprintf("orm: generator %q already declared as %+v, got %+v", e.Name, e.Existing, e.Declared)
}

// Is reports whether the target error matches ErrConflictingGeneratorDeclaration.
func (e *ConflictingGeneratorError) Is(err error) bool {
	return err == ErrConflictingGeneratorDeclaration
}

// NewConflictingGeneratorError returns a new ConflictingGeneratorError.
func NewConflictingGeneratorError(name string, existing, declared any) *ConflictingGeneratorError {
	return &ConflictingGeneratorError{Name: name, Existing: existing, Declared: declared}
}

// IsConflictingGenerator returns true if the error is a ConflictingGeneratorError.
func IsConflictingGenerator(err error) bool {
	return err != nil && errors.Is(err, ErrConflictingGeneratorDeclaration)
}

// TypeMismatchError reports a row value that cannot be converted to the
// declared type of the expression reading it.
type TypeMismatchError struct {
	Alias  string // Result column alias
	Target string // Declared Go type
	Value  any    // Raw value, nil if the failure came from the driver
	Err    error  // Underlying driver or conversion error, optional
}

// Error returns the error string.
func (e *TypeMismatchError) Error() string {
	if e.Alias == "" && e.Target == "" {
		return fmt.Sprintf("orm: type mismatch: %v", e.Err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "orm: column %q: cannot convert", e.Alias)
	if e.Value != nil {
		fmt.Fprintf(&b, " %T", e.Value)
	}
	fmt.Fprintf(&b, " to %s", e.Target)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Is reports whether the target error matches ErrTypeMismatch.
func (e *TypeMismatchError) Is(err error) bool {
	return err == ErrTypeMismatch
}

// Unwrap returns the underlying error.
func (e *TypeMismatchError) Unwrap() error {
	return e.Err
}

// NewTypeMismatchError returns a new TypeMismatchError.
func NewTypeMismatchError(alias, target string, value any, err error) *TypeMismatchError {
	return &TypeMismatchError{Alias: alias, Target: target, Value: value, Err: err}
}

// IsTypeMismatch returns true if the error is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	return err != nil && errors.Is(err, ErrTypeMismatch)
}

// MissingAliasError reports a value extraction for an expression that was
// not assigned an alias by a compile pass.
type MissingAliasError struct {
	Expr string // Description of the expression
}

// Error returns the error string.
func (e *MissingAliasError) Error() string {
	return fmt.Sprintf("orm: no alias assigned to %s", e.Expr)
}

// Is reports whether the target error matches ErrMissingAlias.
func (e *MissingAliasError) Is(err error) bool {
	return err == ErrMissingAlias
}

// NewMissingAliasError returns a new MissingAliasError.
func NewMissingAliasError(expr string) *MissingAliasError {
	return &MissingAliasError{Expr: expr}
}

// IsMissingAlias returns true if the error is a MissingAliasError.
func IsMissingAlias(err error) bool {
	return err != nil && errors.Is(err, ErrMissingAlias)
}

// ValidationError represents invalid declared metadata.
type ValidationError struct {
	Name string // Entity or attribute name
	Err  error  // Underlying validation error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("orm: invalid declaration %q: %s", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a new ValidationError for the given name.
func NewValidationError(name string, err error) *ValidationError {
	return &ValidationError{Name: name, Err: err}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "orm: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("orm: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors, so errors.Is and errors.As
// see every one of them.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
