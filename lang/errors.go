package lang

import "fmt"

// Errorf constructs an Error value carrying the formatted message.
func Errorf(format string, args ...interface{}) *Value {
	return &Value{Type: TypeError, payload: fmt.Sprintf(format, args...)}
}

// IsError reports whether v is an Error value.
func IsError(v *Value) bool {
	return v != nil && v.Type == TypeError
}
