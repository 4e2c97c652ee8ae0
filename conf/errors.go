package conf

import "fmt"

// ContextError reports a layer directive declared inside a structural
// block that binds configuration to a filesystem path rather than a
// request-routing scope. It is fatal at configuration load; no request is
// ever served with an illegally placed directive.
type ContextError struct {
	Directive string // offending directive name
	Ancestor  string // forbidden enclosing block name
	Line      int    // line of the directive occurrence
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("line %d: %s not allowed within <%s ...>", e.Line, e.Directive, e.Ancestor)
}

// ValueError reports a directive given an argument outside its accepted
// literals. Fatal at configuration load.
type ValueError struct {
	Directive string
	Value     string
	Line      int
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("line %d: %s must be On or Off, got %q", e.Line, e.Directive, e.Value)
}
