package state

import (
	"context"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

const (
	KindFetchProjects = "fetch_projects"
	KindFetchProject  = "fetch_project"
	KindCreateProject = "create_project"
	KindUpdateProject = "update_project"
	KindDeleteProject = "delete_project"
)

// Projects is the projects slice state.
type Projects struct {
	Projects resource.Collection[domain.Project] `json:"projects"`
	Current  *domain.Project                     `json:"current_project"`
}

type ProjectStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

func (p Projects) Stats() ProjectStats {
	return ProjectStats{
		Total:     p.Projects.Len(),
		Active:    p.Projects.Count(func(pr domain.Project) bool { return pr.Status == domain.ProjectActive }),
		Completed: p.Projects.Count(func(pr domain.Project) bool { return pr.Status == domain.ProjectCompleted }),
	}
}

func projectsLens(st *Projects) *resource.Collection[domain.Project] { return &st.Projects }

type FetchProjects struct{ Query url.Values }

func (a FetchProjects) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Projects, resource.ListOp(KindFetchProjects, projectsLens,
		func(ctx context.Context) (apiclient.Page[domain.Project], error) {
			return s.src.Projects().List(ctx, a.Query)
		}))
}

// FetchProject loads one project into Current. Only the latest request can
// set Current, whichever project it names.
type FetchProject struct{ ID domain.ID }

func (a FetchProject) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Projects, resource.Op[Projects, domain.Project]{
		Kind:   KindFetchProject,
		Target: a.ID.String(),
		Lane:   KindFetchProject,
		Run: func(ctx context.Context) (domain.Project, error) {
			return s.src.Projects().Get(ctx, a.ID)
		},
		Reduce: func(st *Projects, p domain.Project) { st.Current = &p },
	})
}

type CreateProject struct{ Input domain.ProjectInput }

func (a CreateProject) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Projects, resource.CreateOp(KindCreateProject, projectsLens,
		func(ctx context.Context) (domain.Project, error) {
			return s.src.Projects().Create(ctx, a.Input)
		}, "Project created successfully"))
}

// UpdateProject also refreshes Current when it is the same project.
type UpdateProject struct {
	ID    domain.ID
	Input domain.ProjectInput
}

func (a UpdateProject) dispatch(ctx context.Context, s *Store) *resource.Task {
	op := resource.UpdateOp(KindUpdateProject, a.ID.String(), projectsLens,
		func(ctx context.Context) (domain.Project, error) {
			return s.src.Projects().Update(ctx, a.ID, a.Input)
		}, "Project updated successfully").
		AndThen(func(st *Projects, p domain.Project) {
			if st.Current != nil && st.Current.ID == p.ID {
				st.Current = &p
			}
		})
	return resource.Dispatch(ctx, s.Projects, op)
}

type DeleteProject struct{ ID domain.ID }

func (a DeleteProject) dispatch(ctx context.Context, s *Store) *resource.Task {
	op := resource.DeleteOp(KindDeleteProject, a.ID.String(), projectsLens,
		func(ctx context.Context) error {
			return s.src.Projects().Delete(ctx, a.ID)
		}, "Project deleted successfully").
		AndThen(func(st *Projects, _ resource.Empty) {
			if st.Current != nil && st.Current.ID == a.ID {
				st.Current = nil
			}
		})
	return resource.Dispatch(ctx, s.Projects, op)
}

// ClearCurrentProject drops Current.
func (s *Store) ClearCurrentProject() {
	s.Projects.Update(func(st *Projects) { st.Current = nil })
}
