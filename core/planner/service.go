package planner

import (
	"context"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

// Service bundles the three future-planning collections: semester plans,
// project milestones and study schedules. All three are list + add only;
// editing and deleting are not part of the planner view.
type Service struct {
	plans      *docsync.Registry[SemesterPlan]
	milestones *docsync.Registry[ProjectMilestone]
	schedules  *docsync.Registry[StudySchedule]
}

func NewService(store core.DocumentStore) *Service {
	return &Service{
		plans:      docsync.NewRegistry(PlanSchema(), store),
		milestones: docsync.NewRegistry(MilestoneSchema(), store),
		schedules:  docsync.NewRegistry(ScheduleSchema(), store),
	}
}

func (svc *Service) Plans(ctx context.Context, userID string) *docsync.Synchronizer[SemesterPlan] {
	return svc.plans.ForUser(ctx, userID)
}

func (svc *Service) Milestones(ctx context.Context, userID string) *docsync.Synchronizer[ProjectMilestone] {
	return svc.milestones.ForUser(ctx, userID)
}

func (svc *Service) Schedules(ctx context.Context, userID string) *docsync.Synchronizer[StudySchedule] {
	return svc.schedules.ForUser(ctx, userID)
}

func (svc *Service) AddPlan(ctx context.Context, userID string, np NewSemesterPlan) (SemesterPlan, error) {
	return svc.Plans(ctx, userID).Create(ctx, SemesterPlan{
		Name:      np.Name,
		StartDate: np.StartDate,
		EndDate:   np.EndDate,
		Courses:   np.Courses,
	})
}

func (svc *Service) AddMilestone(ctx context.Context, userID string, nm NewProjectMilestone) (ProjectMilestone, error) {
	return svc.Milestones(ctx, userID).Create(ctx, ProjectMilestone{
		ProjectName:   nm.ProjectName,
		MilestoneName: nm.MilestoneName,
		DueDate:       nm.DueDate,
	})
}

func (svc *Service) AddSchedule(ctx context.Context, userID string, ns NewStudySchedule) (StudySchedule, error) {
	return svc.Schedules(ctx, userID).Create(ctx, StudySchedule{
		Subject:   ns.Subject,
		DayOfWeek: ns.DayOfWeek,
		StartTime: ns.StartTime,
		EndTime:   ns.EndTime,
	})
}
