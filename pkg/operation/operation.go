// Package operation is the sample domain carried by the tagged-union codec:
// an arithmetic operation with one variant per operator.
package operation

// Discriminator values of the built-in variants.
const (
	TagSum        = "suma"
	TagDifference = "resta"
)

// Discriminator field names used by the sample documents.
const (
	FieldTipo = "Tipo"
	FieldType = "$type"
)

// Operation computes an integer from its own operands. Results use Go's
// native int arithmetic, so overflow wraps around in two's complement.
type Operation interface {
	Execute() int
}

// Sum adds its operands.
type Sum struct {
	A int `json:"A" union:"required"`
	B int `json:"B" union:"required"`
}

// Execute returns A + B.
func (s Sum) Execute() int { return s.A + s.B }

// DiscriminatorValue returns TagSum.
func (Sum) DiscriminatorValue() string { return TagSum }

// Difference subtracts B from A.
type Difference struct {
	A int `json:"A" union:"required"`
	B int `json:"B" union:"required"`
}

// Execute returns A - B.
func (d Difference) Execute() int { return d.A - d.B }

// DiscriminatorValue returns TagDifference.
func (Difference) DiscriminatorValue() string { return TagDifference }

// Executor runs operations. It is stateless; the zero value is ready to use.
type Executor struct{}

// Execute runs op and returns its result.
func (Executor) Execute(op Operation) int {
	return op.Execute()
}
