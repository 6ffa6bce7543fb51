package domain

// Status is a shared lookup value for epic and ticket workflow state.
type Status struct {
	ID   int64
	Name string
}
