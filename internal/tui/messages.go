package tui

type statesLoadedMsg struct {
	rows []collectionRow
	err  error
}

type pullDoneMsg struct {
	err error
}

// eventMsg is one applied mutation reported by the sync engine.
type eventMsg struct {
	line string
}

type refreshMsg struct{}

type copiedMsg struct {
	what string
	err  error
}

type clearStatusMsg struct{}
