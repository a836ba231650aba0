package lang

// Guards validate a builtin's argument list. A nil result means the check
// passed and args is untouched. A non-nil result is an Error value and args
// has been destroyed: the builtin must return the error immediately and not
// touch args again.
//
//	if err := lang.CheckArity("head", args, 1); err != nil {
//		return err
//	}

// Assert destroys args and returns an error built from format when cond
// does not hold.
func Assert(args *Value, cond bool, format string, a ...interface{}) *Value {
	if cond {
		return nil
	}
	err := Errorf(format, a...)
	args.Del()
	return err
}

// CheckType verifies that argument index of args has type expect.
func CheckType(fn string, args *Value, index int, expect ValueType) *Value {
	got := args.Cells[index].Type
	if got == expect {
		return nil
	}
	return Assert(args, false,
		"Function '%s' passed incorrect type for argument %d. Got %s, expected %s.",
		fn, index, TypeName(got), TypeName(expect))
}

// CheckArity verifies that args holds exactly n arguments.
func CheckArity(fn string, args *Value, n int) *Value {
	return Assert(args, args.Count() == n,
		"Function '%s' passed incorrect number of arguments. Got %d, expected %d.",
		fn, args.Count(), n)
}

// CheckNotEmpty verifies that the list at argument index has at least one
// element.
func CheckNotEmpty(fn string, args *Value, index int) *Value {
	return Assert(args, args.Cells[index].Count() != 0,
		"Function '%s' passed empty list for argument %d.",
		fn, index)
}
