// ple is a thin driver around the persistent logic engine: it manages
// the rule tables, loads or builds operator trees, and evaluates them
// against text.
//
// Usage:
//
//	# Create the rule tables
//	ple init
//
//	# Run the built-in demonstration rules against a sample docket entry
//	ple demo
//
//	# Evaluate a stored rule against a file (or stdin)
//	ple eval --rule "markman orders" docket.txt
//
//	# Drop the rule tables
//	ple drop
package main

func main() {
	Execute()
}
