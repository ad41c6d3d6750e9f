/*
aggregate.go - Hours aggregation and FTE conversion

PURPOSE:
  Turns per-task applied daily volumes into hours, groups hours by job
  station, and converts station hours to full-time equivalents.

FORMULAS:
  task_hours        = applied_daily x unit_minutes x (100/productivity) / 60
  net_hours_per_day = max(0.1, hours_per_day_base - idle_minutes/60)
  station_fte       = station_hours / net_hours_per_day
  total_fte_rounded = sum of per-station rounded FTEs

ROUNDING:
  FTE rounds half-up at the integer (2.5 -> 3, 0.625 -> 1). The total
  rounded FTE is ALWAYS the sum of the per-station rounded values, never
  the round of the float total; headcount deltas have to add up across
  the centre's stations.

SHIFT MULTIPLIER:
  Applied post-hoc to a task's hours, only when the owning station's
  role qualifies (handling, operational agents and supervisors,
  controllers). It stacks multiplicatively with every other multiplier.

SEE ALSO:
  - engine.go: drives this from the evaluating_tasks stage
  - params.go: productivity, hours/day, idle, shift
*/
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/tawazoon/staffing-engine/reference"
)

// shiftRoleKeywords qualify a job-station template for the shift
// multiplier, matched against the normalised template name.
var shiftRoleKeywords = []string{
	"manutention",
	"agent op",
	"responsable op",
	"controleur",
}

// NetHoursPerDay computes the productive hours per day, floored at 0.1
// so FTE stays finite even when idle time swallows the whole day.
func NetHoursPerDay(p Parameters) decimal.Decimal {
	net := p.HoursPerDay.Sub(p.IdleMinutes.Div(sixty))
	if net.LessThan(minNetHrs) {
		return minNetHrs
	}
	return net
}

// RoundFTE rounds an FTE half-up at the integer.
func RoundFTE(fte decimal.Decimal) decimal.Decimal {
	return fte.Round(0)
}

// taskHours converts an applied daily volume to hours:
// applied x minutes, scaled by productivity, divided by 60.
func taskHours(appliedDaily, unitMinutes, productivity decimal.Decimal) decimal.Decimal {
	if productivity.IsZero() {
		return decimal.Zero
	}
	return appliedDaily.Mul(unitMinutes).Mul(hundred).Div(productivity).Div(sixty)
}

// shiftQualifies reports whether a station's role takes the shift
// multiplier.
func shiftQualifies(station CentreJobStation) bool {
	name := reference.Normalize(station.Template.Name)
	for _, kw := range shiftRoleKeywords {
		if reference.Contains(name, kw) {
			return true
		}
	}
	return false
}

// aggregate groups task hours by station and produces the final result.
// Station order follows the repository order; task order follows the
// evaluation order.
func aggregate(centreID CentreID, strategyName string, stations []CentreJobStation, tasks []TaskResult, p Parameters, warn *Warnings) *SimulationResult {
	net := NetHoursPerDay(p)

	hoursByStation := make(map[StationID]decimal.Decimal, len(stations))
	for _, t := range tasks {
		hoursByStation[t.StationID] = hoursByStation[t.StationID].Add(t.Hours)
	}

	res := &SimulationResult{
		CentreID:       centreID,
		StrategyName:   strategyName,
		NetHoursPerDay: net,
		TotalHours:     decimal.Zero,
		FTERounded:     decimal.Zero,
		Tasks:          tasks,
		Warnings:       warn.List(),
	}

	classHours := map[LabourClass]decimal.Decimal{}
	classFTE := map[LabourClass]decimal.Decimal{}

	for _, st := range stations {
		hours := hoursByStation[st.ID]
		fte := hours.Div(net)
		rounded := RoundFTE(fte)

		res.Stations = append(res.Stations, StationResult{
			ID:         st.ID,
			Label:      st.Template.Name,
			Class:      st.Template.Class,
			Headcount:  st.Headcount,
			Hours:      hours,
			FTEExact:   fte,
			FTERounded: rounded,
			Delta:      rounded.Sub(decimal.NewFromInt(int64(st.Headcount))),
		})

		res.TotalHours = res.TotalHours.Add(hours)
		res.FTERounded = res.FTERounded.Add(rounded)
		classHours[st.Template.Class] = classHours[st.Template.Class].Add(hours)
		classFTE[st.Template.Class] = classFTE[st.Template.Class].Add(rounded)
	}

	res.FTEExact = res.TotalHours.Div(net)

	for _, class := range []LabourClass{LabourDirect, LabourIndirect, LabourAdministrative} {
		res.ByClass = append(res.ByClass, ClassTotal{
			Class:      class,
			Hours:      classHours[class],
			FTERounded: classFTE[class],
		})
	}

	return res
}
