// Package errors provides structured, actionable errors for the toaster
// CLI and configuration layer.
//
// Every error carries a registered code (e.g. "E102") that maps to a
// category, a short message, a longer explanation and a documentation
// link. Errors can point at the offending line of a config file, which
// Format renders with surrounding context:
//
//	err := errors.New("E102").
//	    WithLocation("toaster.json", 2, 12).
//	    WithSuggestion("Set \"limit\" to 1 or more")
//
//	fmt.Println(err.Format())
//	// ERROR E102: Invalid toast limit
//	//
//	//   toaster.json:2:12
//	//
//	//       1 │ {
//	//   →   2 │   "limit": 0,
//	//         │            ^
//	//       3 │   "removeDelay": "5s"
//	//
//	//   Hint: Set "limit" to 1 or more
//
// The toast runtime itself never returns errors: reducer, store and
// scheduler are total over their inputs.
package errors
