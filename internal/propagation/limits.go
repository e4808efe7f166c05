package propagation

// Limits bounds the work a single request may ask for. Zero disables a limit.
type Limits struct {
	MaxFormulaLen int
	MaxParams     int
}

// Check validates formula and params against l.
func (l Limits) Check(formula string, params []string) error {
	if l.MaxFormulaLen > 0 && len(formula) > l.MaxFormulaLen {
		return &LimitError{What: "formula", Limit: l.MaxFormulaLen, Got: len(formula)}
	}
	if l.MaxParams > 0 && len(params) > l.MaxParams {
		return &LimitError{What: "params", Limit: l.MaxParams, Got: len(params)}
	}
	return nil
}
