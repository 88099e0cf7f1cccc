package model

// Variable is a named, parameterized text generator that can be appended to a page.
type Variable struct {
	ID        int
	Source    int // id of the built-in evaluator this variable runs
	Deletable bool
	Name      string
	Params    string
	Help      string
}
