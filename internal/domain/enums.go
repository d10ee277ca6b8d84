package domain

type PlanTrigger string

const (
	TriggerAuto     PlanTrigger = "AUTO"
	TriggerManual   PlanTrigger = "MANUAL"
	TriggerRecreate PlanTrigger = "RECREATE"
)

// PlanState classifies the user's current plan situation.
type PlanState string

const (
	PlanStateActive     PlanState = "active"
	PlanStateExpired    PlanState = "expired"
	PlanStateFutureOnly PlanState = "future_only"
	PlanStateNone       PlanState = "no_plan"
)

// PlanAction is the suggested next step derived from PlanState.
type PlanAction string

const (
	ActionContinue      PlanAction = "continue"
	ActionCreateNew     PlanAction = "create_new"
	ActionSuggestCreate PlanAction = "suggest_create"
)

// WeekdayNames maps ISO weekday numbers (1=Monday .. 7=Sunday) to names.
var WeekdayNames = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}
