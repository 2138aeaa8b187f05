package wizard

// Event is anything that can move the wizard: user input, timer callbacks
// and API results.
type Event interface{ event() }

// StatusSnapshot is the server's view of the assessment.
type StatusSnapshot struct {
	Status            string
	Ratings           map[string]int
	CategorySummaries map[string]string
	OverallSummary    string
	CurrentCategory   int
}

type (
	StatusLoaded struct{ Snapshot StatusSnapshot }
	StatusFailed struct{ Err error }

	StartPressed   struct{}
	SliderMoved    struct{ Value int }
	SpinFinished   struct{ Category int }
	ConfirmPressed struct{}
	ResetRequested struct{}

	RatingSaved struct {
		Category     int
		Rating       int
		Summary      string
		NextCategory int
		Complete     bool
	}
	SummaryGenerated struct{ OverallSummary string }
	ResetDone        struct{}

	// RequestFailed reports a failed API call; Action is the command that failed.
	RequestFailed struct {
		Action Command
		Err    error
	}
)

func (StatusLoaded) event()     {}
func (StatusFailed) event()     {}
func (StartPressed) event()     {}
func (SliderMoved) event()      {}
func (SpinFinished) event()     {}
func (ConfirmPressed) event()   {}
func (ResetRequested) event()   {}
func (RatingSaved) event()      {}
func (SummaryGenerated) event() {}
func (ResetDone) event()        {}
func (RequestFailed) event()    {}

// Command is a side effect requested by Reduce.
type Command interface{ command() }

type (
	FetchStatus     struct{}
	SaveRating      struct{ Category, Rating int }
	GenerateSummary struct{}
	Reset           struct{}
	StartSpin       struct{ Category, Count int }
	ShowAlert       struct{ Message string }
)

func (FetchStatus) command()     {}
func (SaveRating) command()      {}
func (GenerateSummary) command() {}
func (Reset) command()           {}
func (StartSpin) command()       {}
func (ShowAlert) command()       {}
