package observer

import "superspreader-analytics/models/entities"

type EventType int

const (
	RankingEvent     EventType = 1
	BaselineEvent    EventType = 2
	DismantlingEvent EventType = 3
)

type Event struct {
	E      EventType
	RunDay string
	Top    []entities.FibScore
}

func NewRankingEvent(runDay string, top []entities.FibScore) Event {
	return Event{E: RankingEvent, RunDay: runDay, Top: top}
}

type Observer interface {
	OnNotify(Event)
}

type Notifier interface {
	Register(Observer)
	Notify(Event)
}
