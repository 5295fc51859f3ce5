package crawler

// Phase is where the driver currently is in its page loop.
type Phase int

const (
	// PhaseAwaitingPage is the initial state before the first fetch.
	PhaseAwaitingPage Phase = iota
	// PhaseFetchingListing means a listing page request is in flight.
	PhaseFetchingListing
	// PhaseExtractingRefs means the listing page is being parsed.
	PhaseExtractingRefs
	// PhaseFetchingDocuments means document pages are being fetched.
	PhaseFetchingDocuments
	// PhaseAdvancing means the next listing URL is being prepared.
	PhaseAdvancing
	// PhaseDone means the crawl finished and the snapshot is persisted.
	PhaseDone
)

var phaseNames = map[Phase]string{
	PhaseAwaitingPage:      "awaiting_page",
	PhaseFetchingListing:   "fetching_listing",
	PhaseExtractingRefs:    "extracting_refs",
	PhaseFetchingDocuments: "fetching_documents",
	PhaseAdvancing:         "advancing",
	PhaseDone:              "done",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}
