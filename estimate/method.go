package estimate

import (
	"fmt"
	"strings"
)

// Method selects the distance model used for an estimate.
type Method string

const (
	MethodEmpirical   Method = "empirical"
	MethodTheoretical Method = "theoretical"
)

// Methods lists the supported distance models.
var Methods = []Method{MethodEmpirical, MethodTheoretical}

// ParseMethod converts user input such as " Empirical " into a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if err := m.validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m Method) validate() error {
	switch m {
	case MethodEmpirical, MethodTheoretical:
		return nil
	}
	return fmt.Errorf("%w: %q, use %q or %q", ErrUnknownMethod, string(m), MethodEmpirical, MethodTheoretical)
}

func (m Method) String() string { return string(m) }
