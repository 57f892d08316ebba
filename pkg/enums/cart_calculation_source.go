package enums

// CalculationSource labels which surface requested a cart calculation.
type CalculationSource string

const (
	CalculationSourceSession   CalculationSource = "session"
	CalculationSourceStateless CalculationSource = "stateless"
)

// String implements fmt.Stringer.
func (s CalculationSource) String() string {
	return string(s)
}
