package entities

// ThirdPartyNotice is the aggregated third-party license text and its gap reports
type ThirdPartyNotice struct {
	Document string
	Sections []NoticeSection
	Missing  []string
	Unused   []string
	Usage    map[string]int // components per enumerated license id
}

// NoticeSection is one numbered license section of the notice
type NoticeSection struct {
	Number      int
	ID          string // identifier as observed in the SBOM
	BaseID      string // policy entry the identifier resolved to
	DisplayName string
	Placeholder bool // no text configured, placeholder sentence rendered
}
