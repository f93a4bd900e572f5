package workflow

// Status is the active stage of a single document-to-token journey. Exactly
// one status is active at a time; listing does not get its own status, it is
// tracked as a busy flag on top of StatusMinted.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusAnalyzing Status = "analyzing"
	StatusUploading Status = "uploading"
	StatusReady     Status = "ready"
	StatusMinting   Status = "minting"
	StatusMinted    Status = "minted"
	StatusListed    Status = "listed"
)

func (s Status) String() string {
	return string(s)
}

// busy reports whether an async operation for this journey is outstanding.
// No transition may be triggered while busy.
func (s Status) busy() bool {
	switch s {
	case StatusAnalyzing, StatusUploading, StatusMinting:
		return true
	}
	return false
}

// ErrorZone partitions the user-visible error surface. At most one message
// is active per zone; a new attempt in a zone clears that zone first.
type ErrorZone string

const (
	ZoneAnalysis ErrorZone = "analysis"
	ZoneMinting  ErrorZone = "minting"
	ZoneListing  ErrorZone = "listing"
)
