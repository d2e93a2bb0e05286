package scheduler

import "github.com/julianstephens/dayrail/internal/models"

// collegeDay is the weekday timetable. 22:30-24:00 is left uncovered and
// resolves to the fallback activity.
var collegeDay = []models.ScheduleEntry{
	{Start: "00:00", End: "06:00", Activity: "Sleep"},
	{Start: "06:00", End: "06:30", Activity: "Wake Up & Freshen Up"},
	{Start: "06:30", End: "07:15", Activity: "Workout", Habit: models.HabitMoveBody},
	{Start: "07:15", End: "08:00", Activity: "Breakfast & Commute"},
	{Start: "08:00", End: "14:00", Activity: "College"},
	{Start: "14:00", End: "15:00", Activity: "Lunch & Rest"},
	{Start: "15:00", End: "16:00", Activity: "Free Time"},
	{Start: "16:00", End: "17:00", Activity: "Learn Something", Habit: models.HabitLearn},
	{Start: "17:00", End: "18:00", Activity: "Snacks & Break"},
	{Start: "18:00", End: "19:00", Activity: "Focused Work", Habit: models.HabitFocusedWork},
	{Start: "19:00", End: "20:00", Activity: "Dinner"},
	{Start: "20:00", End: "21:00", Activity: "Gaming"},
	{Start: "21:00", End: "22:00", Activity: "Revision"},
	{Start: "22:00", End: "22:30", Activity: "Wind Down", Habit: models.HabitSleepOnTime},
}

// holiday is the relaxed timetable. 23:00-24:00 is uncovered.
var holiday = []models.ScheduleEntry{
	{Start: "00:00", End: "08:00", Activity: "Sleep"},
	{Start: "08:00", End: "09:00", Activity: "Morning Routine"},
	{Start: "09:00", End: "10:00", Activity: "Move Body", Habit: models.HabitMoveBody},
	{Start: "10:00", End: "12:00", Activity: "Focused Work", Habit: models.HabitFocusedWork},
	{Start: "12:00", End: "13:00", Activity: "Lunch"},
	{Start: "13:00", End: "15:00", Activity: "Free Time"},
	{Start: "15:00", End: "16:00", Activity: "Learn Something", Habit: models.HabitLearn},
	{Start: "16:00", End: "18:00", Activity: "Gaming"},
	{Start: "18:00", End: "19:00", Activity: "Outdoors / Friends"},
	{Start: "19:00", End: "20:00", Activity: "Dinner"},
	{Start: "20:00", End: "22:00", Activity: "Free Time"},
	{Start: "22:00", End: "23:00", Activity: "Wind Down", Habit: models.HabitSleepOnTime},
}
