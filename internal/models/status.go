package models

// SystemStatus is the shared status enum for applications and abuse reports.
// Applications move through NEW/VIEWED/IN_PROGRESS/ACCEPTED/REJECTED/NO_MORE_INTERESTS,
// reports use NEW/IN_PROGRESS/RESOLVED/REJECTED.
type SystemStatus string

const (
	StatusNew             SystemStatus = "NEW"
	StatusViewed          SystemStatus = "VIEWED"
	StatusInProgress      SystemStatus = "IN_PROGRESS"
	StatusAccepted        SystemStatus = "ACCEPTED"
	StatusRejected        SystemStatus = "REJECTED"
	StatusNoMoreInterests SystemStatus = "NO_MORE_INTERESTS"
	StatusResolved        SystemStatus = "RESOLVED"
)

// VacancyStatus is the lifecycle status of a vacancy.
type VacancyStatus string

const (
	VacancyDisabled     VacancyStatus = "DISABLED"
	VacancyEnabled      VacancyStatus = "ENABLED"
	VacancyTempDisabled VacancyStatus = "TEMP_DISABLED"
	VacancyTimeExpired  VacancyStatus = "TIME_EXPIRED"
	VacancyArchived     VacancyStatus = "ARCHIVED"
)

// ReportReason classifies an abuse report against a vacancy.
type ReportReason string

const (
	ReasonFraud          ReportReason = "FRAUD"
	ReasonDuplicate      ReportReason = "DUPLICATE"
	ReasonInappropriate  ReportReason = "INAPPROPRIATE"
	ReasonMisleadingInfo ReportReason = "MISLEADING_INFO"
	ReasonSpam           ReportReason = "SPAM"
	ReasonDiscrimination ReportReason = "DISCRIMINATION"
	ReasonOther          ReportReason = "OTHER"
)

// ValidReportReason reports whether the given value is a known report reason.
func ValidReportReason(r ReportReason) bool {
	switch r {
	case ReasonFraud, ReasonDuplicate, ReasonInappropriate, ReasonMisleadingInfo,
		ReasonSpam, ReasonDiscrimination, ReasonOther:
		return true
	default:
		return false
	}
}

// ContractType is the employment contract offered by a vacancy.
type ContractType string

const (
	ContractEmployment   ContractType = "EMPLOYMENT_CONTRACT"
	ContractMandate      ContractType = "MANDATE_CONTRACT"
	ContractSpecificTask ContractType = "SPECIFIC_TASK_CONTRACT"
	ContractB2B          ContractType = "B2B"
	ContractInternship   ContractType = "INTERNSHIP"
	ContractTemporary    ContractType = "TEMPORARY"
)

// WorkMode is where the work happens.
type WorkMode string

const (
	WorkModeOnsite WorkMode = "ONSITE"
	WorkModeRemote WorkMode = "REMOTE"
	WorkModeHybrid WorkMode = "HYBRID"
)

// PositionLevel is the seniority of the advertised position.
type PositionLevel string

const (
	LevelIntern    PositionLevel = "INTERN"
	LevelAssistant PositionLevel = "ASSISTANT"
	LevelJunior    PositionLevel = "JUNIOR"
	LevelMid       PositionLevel = "MID"
	LevelSenior    PositionLevel = "SENIOR"
	LevelManager   PositionLevel = "MANAGER"
	LevelDirector  PositionLevel = "DIRECTOR"
	LevelWorker    PositionLevel = "WORKER"
)

// Workload is the time commitment of the position.
type Workload string

const (
	WorkloadFullTime  Workload = "FULL_TIME"
	WorkloadPartTime  Workload = "PART_TIME"
	WorkloadTemporary Workload = "TEMPORARY"
)
