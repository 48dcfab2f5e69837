package reconciler

// StatusKind is the variant of a Status.
type StatusKind int

const (
	// StatusUnset is the zero value; a status that was never assigned.
	StatusUnset StatusKind = iota
	// StatusOk means the source reported the canonical version.
	StatusOk
	// StatusMissing means the source never reported the plugin.
	StatusMissing
	// StatusUpdate means the source reported an older or superseded version.
	StatusUpdate
)

// String returns the status text used in report columns.
func (k StatusKind) String() string {
	switch k {
	case StatusOk:
		return "Ok"
	case StatusMissing:
		return "Missing"
	case StatusUpdate:
		return "Update"
	default:
		return ""
	}
}

// Status is one source's standing for one record. Only StatusUpdate carries
// the versions the source actually held.
type Status struct {
	Kind               StatusKind
	OriginalVersion    string
	OriginalSDKVersion string
}

// Ok returns an Ok status.
func Ok() Status {
	return Status{Kind: StatusOk}
}

// Missing returns a Missing status.
func Missing() Status {
	return Status{Kind: StatusMissing}
}

// Update returns an Update status preserving what the source held.
func Update(version, sdkVersion string) Status {
	return Status{Kind: StatusUpdate, OriginalVersion: version, OriginalSDKVersion: sdkVersion}
}

// String returns the status text used in report columns.
func (s Status) String() string {
	return s.Kind.String()
}

// IsOk reports whether the status is Ok.
func (s Status) IsOk() bool { return s.Kind == StatusOk }

// IsMissing reports whether the status is Missing.
func (s Status) IsMissing() bool { return s.Kind == StatusMissing }

// IsUpdate reports whether the status is Update.
func (s Status) IsUpdate() bool { return s.Kind == StatusUpdate }
