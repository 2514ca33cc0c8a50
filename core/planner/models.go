package planner

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

type SemesterPlan struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Courses   []string `json:"courses"`
}

type ProjectMilestone struct {
	ID            string `json:"id"`
	ProjectName   string `json:"projectName"`
	MilestoneName string `json:"milestoneName"`
	DueDate       string `json:"dueDate"`
}

type StudySchedule struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type NewSemesterPlan struct {
	Name      string   `json:"name" validate:"required"`
	StartDate string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"endDate" validate:"required,datetime=2006-01-02"`
	Courses   []string `json:"courses" validate:"required,min=1,dive,required"`
}

func (np *NewSemesterPlan) Validate(validate *validator.Validate) error {
	np.Name = core.CleanString(np.Name)
	for i, c := range np.Courses {
		np.Courses[i] = core.CleanString(c)
	}
	return validate.Struct(np)
}

type NewProjectMilestone struct {
	ProjectName   string `json:"projectName" validate:"required"`
	MilestoneName string `json:"milestoneName" validate:"required"`
	DueDate       string `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

func (nm *NewProjectMilestone) Validate(validate *validator.Validate) error {
	nm.ProjectName = core.CleanString(nm.ProjectName)
	nm.MilestoneName = core.CleanString(nm.MilestoneName)
	return validate.Struct(nm)
}

type NewStudySchedule struct {
	Subject   string `json:"subject" validate:"required"`
	DayOfWeek string `json:"dayOfWeek" validate:"required,weekday"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
}

func (ns *NewStudySchedule) Validate(validate *validator.Validate) error {
	ns.Subject = core.CleanString(ns.Subject)
	return validate.Struct(ns)
}

func PlanSchema() docsync.Schema[SemesterPlan] {
	return docsync.Schema[SemesterPlan]{
		Collection: "semesterPlans",
		Label:      "semester plan",
		OwnerField: "userId",
		ID:         func(p SemesterPlan) string { return p.ID },
		WithID:     func(p SemesterPlan, id string) SemesterPlan { p.ID = id; return p },
	}
}

func MilestoneSchema() docsync.Schema[ProjectMilestone] {
	return docsync.Schema[ProjectMilestone]{
		Collection: "projectMilestones",
		Label:      "project milestone",
		OwnerField: "userId",
		ID:         func(m ProjectMilestone) string { return m.ID },
		WithID:     func(m ProjectMilestone, id string) ProjectMilestone { m.ID = id; return m },
	}
}

func ScheduleSchema() docsync.Schema[StudySchedule] {
	return docsync.Schema[StudySchedule]{
		Collection: "studySchedules",
		Label:      "study schedule",
		OwnerField: "userId",
		ID:         func(s StudySchedule) string { return s.ID },
		WithID:     func(s StudySchedule, id string) StudySchedule { s.ID = id; return s },
	}
}
