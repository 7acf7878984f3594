package tui

type state int

const (
	watchState state = iota
	searchState
	errorState
)
