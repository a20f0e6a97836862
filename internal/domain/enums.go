package domain

type RecordKind string

const (
	RecordSession    RecordKind = "session"
	RecordManual     RecordKind = "manual"
	RecordAdjustment RecordKind = "adjustment"
)

// ValidRecordKinds is the set of kinds a stored record may carry.
var ValidRecordKinds = map[RecordKind]bool{
	RecordSession: true, RecordManual: true, RecordAdjustment: true,
}

type DayState string

const (
	DayOpen   DayState = "OPEN"
	DayClosed DayState = "CLOSED"
)

type GroupCategory string

const (
	GroupStandard    GroupCategory = "standard"
	GroupJewelry     GroupCategory = "jewelry"
	GroupRecoverable GroupCategory = "recoverable"
)

// GroupCategories lists the categories in display order.
var GroupCategories = []GroupCategory{GroupStandard, GroupJewelry, GroupRecoverable}

// GroupMergeMode selects how a group write combines with stored counts.
type GroupMergeMode string

const (
	// MergeReplace sets each provided field, leaving the others untouched.
	MergeReplace GroupMergeMode = "set"
	// MergeAdd adds the provided values to the stored ones.
	MergeAdd GroupMergeMode = "add"
)
