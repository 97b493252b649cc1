package schedule

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SourceDemo labels data that comes from the bundled fixture rather than
// the store.
const SourceDemo = "demo-fixture"

// Shift is one cell of the grid.
type Shift string

const (
	ShiftB   Shift = "B"
	ShiftBT  Shift = "BT"
	ShiftA   Shift = "A"
	ShiftOff Shift = "-"
)

func (s Shift) Valid() bool {
	switch s {
	case ShiftB, ShiftBT, ShiftA, ShiftOff:
		return true
	}
	return false
}

type EmployeeSchedule struct {
	EmployeeName string  `yaml:"employeeName" json:"employeeName"`
	Shifts       []Shift `yaml:"shifts" json:"shifts"`
}

type WeeklyCapacity struct {
	TotalHours float64 `yaml:"totalHours" json:"totalHours"`
	Capacity   float64 `yaml:"capacity" json:"capacity"`
	Budget     float64 `yaml:"budget" json:"budget"`
}

// ProjectSchedule is the shift grid of one project over a run of days.
type ProjectSchedule struct {
	Source        string             `yaml:"-" json:"source"`
	ProjectID     string             `yaml:"projectId" json:"projectId"`
	ClientName    string             `yaml:"clientName" json:"clientName"`
	ProjectName   string             `yaml:"projectName" json:"projectName"`
	RegularHours  float64            `yaml:"regularHours" json:"regularHours"`
	OvertimeHours float64            `yaml:"overtimeHours" json:"overtimeHours"`
	RatePerHour   float64            `yaml:"ratePerHour" json:"ratePerHour"`
	Location      string             `yaml:"location" json:"location"`
	Supervisor    string             `yaml:"supervisor" json:"supervisor"`
	Budget        float64            `yaml:"budget" json:"budget"`
	Days          []string           `yaml:"days" json:"days"`
	Employees     []EmployeeSchedule `yaml:"employees" json:"employees"`
	WeeklySummary []WeeklyCapacity   `yaml:"weeklySummary" json:"weeklySummary"`
}

//go:embed demo.yaml
var demoYAML []byte

// Demo decodes the bundled sample grid. Each call returns a fresh copy.
func Demo() (*ProjectSchedule, error) {
	return Parse(demoYAML)
}

// Parse decodes a grid and checks that every row covers every day with a
// known shift code.
func Parse(data []byte) (*ProjectSchedule, error) {
	var ps ProjectSchedule
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}

	for _, e := range ps.Employees {
		if len(e.Shifts) != len(ps.Days) {
			return nil, fmt.Errorf("schedule: %s has %d shifts for %d days", e.EmployeeName, len(e.Shifts), len(ps.Days))
		}
		for i, s := range e.Shifts {
			if !s.Valid() {
				return nil, fmt.Errorf("schedule: %s day %s: unknown shift %q", e.EmployeeName, ps.Days[i], s)
			}
		}
	}

	ps.Source = SourceDemo
	return &ps, nil
}
