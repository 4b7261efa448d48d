package enums

// NoticeLevel mirrors the severity of a transient user notification.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// String implements fmt.Stringer.
func (l NoticeLevel) String() string {
	return string(l)
}

// SubmitState is the lifecycle state of a dashboard mutation.
type SubmitState string

const (
	SubmitIdle       SubmitState = "idle"
	SubmitSubmitting SubmitState = "submitting"
)

// String implements fmt.Stringer.
func (s SubmitState) String() string {
	return string(s)
}
