package season

import "strings"

// Change flags which views a command modified so a presentation layer
// knows what to re-render.
type Change uint8

const (
	ChangeScores Change = 1 << iota
	ChangeGoalLog
	ChangeStandings
	ChangeLedgers
	ChangeHistory
	ChangeTeams

	ChangeNone Change = 0
)

var changeNames = []struct {
	flag Change
	name string
}{
	{ChangeScores, "scores"},
	{ChangeGoalLog, "goal_log"},
	{ChangeStandings, "standings"},
	{ChangeLedgers, "ledgers"},
	{ChangeHistory, "history"},
	{ChangeTeams, "teams"},
}

// Has reports whether every flag of other is set in c.
func (c Change) Has(other Change) bool {
	return other != ChangeNone && c&other == other
}

// Names lists the set flags in a fixed order.
func (c Change) Names() []string {
	names := []string{}
	for _, cn := range changeNames {
		if c&cn.flag != 0 {
			names = append(names, cn.name)
		}
	}
	return names
}

func (c Change) String() string {
	return strings.Join(c.Names(), "|")
}

// =============================================================================
// NOTIFIERS
// =============================================================================

// Notifier receives a Change after every command that modified state.
// Notify runs on the command loop and must not block.
type Notifier interface {
	Notify(change Change)
}

// MultiNotifier fans a change out to several notifiers in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(change Change) {
	for _, n := range m {
		if n != nil {
			n.Notify(change)
		}
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(Change) {}
