// Package executor runs parsed shell statements against a database.
//
// The executor takes ParsedStatement values from the parser, calls the
// matching database operation and renders the result the way the shell
// prints it. create and edit are interactive: they read one answer per field
// from the executor's input and ask again for any field that fails conversion
// or validation.
//
// Usage Example:
//
//	exec := executor.New(db, executor.WithFileStore())
//
//	stmt, err := parser.New().Parse("select id, lastname where sex = 'F'")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := exec.Execute(stmt)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result)
//
// Run wraps the same steps in a read-eval-print loop that ends on exit or at
// the end of input.
package executor
