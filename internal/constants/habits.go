package constants

const (
	// Day types. Each names a schedule table and a day-status rule.
	DayTypeCollege = "College Day"
	DayTypeHoliday = "Holiday"

	// Core habits
	HabitFocusedWork   = "Focused Work"
	HabitLearn         = "Learn Something"
	HabitMoveBody      = "Move Body"
	HabitSleepOnTime   = "Sleep On Time"
	CoreHabitCount     = 4
	GatingHabit        = HabitFocusedWork
	FallbackActivity   = "Sleep"
	RewardActivityName = "Gaming"

	// Miss reasons
	MissReasonNone        = ""
	MissReasonTime        = "Time"
	MissReasonEnergy      = "Energy"
	MissReasonDistraction = "Distraction"

	// Day statuses
	DayStatusFailed     = "FAILED"
	DayStatusSuccess    = "SUCCESS"
	DayStatusIncomplete = "INCOMPLETE"

	// Gaming gate
	GamingAllowed = "ALLOWED"
	GamingLocked  = "LOCKED"
)
