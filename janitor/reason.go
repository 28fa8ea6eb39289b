package janitor

// Reason identifies why a torrent qualified for removal.
type Reason string

// Removal reasons, reported exactly one per torrent per cycle.
const (
	ReasonErrorState   Reason = "error_state"
	ReasonMetaTimeout  Reason = "metadata_timeout"
	ReasonQueueTimeout Reason = "queue_timeout"
	ReasonStalled      Reason = "stalled"
	ReasonNoActivity   Reason = "no_activity"
	ReasonSizeLimit    Reason = "size_limit"
	ReasonLowRatio     Reason = "low_ratio"
	ReasonAutoCategory Reason = "auto_category"
)

// Description returns a human-readable explanation for logs and reports.
func (r Reason) Description() string {
	switch r {
	case ReasonErrorState:
		return "Error state or missing files"
	case ReasonMetaTimeout:
		return "Metadata download timeout"
	case ReasonQueueTimeout:
		return "Queue timeout exceeded"
	case ReasonStalled:
		return "Stalled torrent"
	case ReasonNoActivity:
		return "No download activity"
	case ReasonSizeLimit:
		return "Size limit exceeded"
	case ReasonLowRatio:
		return "Low share ratio"
	case ReasonAutoCategory:
		return "Auto-remove category"
	}
	return string(r)
}

// Protection identifies which safety check shielded a torrent.
type Protection string

// Protection reasons, first match wins.
const (
	ProtectionCategory       Protection = "protected_category"
	ProtectionPrivateTracker Protection = "private_tracker"
	ProtectionSeeding        Protection = "seeding"
	ProtectionProgress       Protection = "download_progress"
	ProtectionFilter         Protection = "protect_filter"
	ProtectionArrManaged     Protection = "arr_managed"
)
