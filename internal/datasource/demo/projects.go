package demo

import (
	"cmp"
	"context"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type projectSource struct{ s *Source }

func (p projectSource) List(ctx context.Context, query url.Values) (apiclient.Page[domain.Project], error) {
	_, done, err := p.s.enter(ctx)
	if err != nil {
		return apiclient.Page[domain.Project]{}, err
	}
	defer done()

	status := domain.ProjectStatus(query.Get("status"))
	return page(p.s.projects, func(pr domain.Project) bool {
		return status == "" || pr.Status == status
	}), nil
}

func (p projectSource) Get(ctx context.Context, id domain.ID) (domain.Project, error) {
	_, done, err := p.s.enter(ctx)
	if err != nil {
		return domain.Project{}, err
	}
	defer done()

	i := indexOf(p.s.projects, id.String())
	if i < 0 {
		return domain.Project{}, notFound()
	}
	return p.s.projects[i], nil
}

func (p projectSource) Create(ctx context.Context, in domain.ProjectInput) (domain.Project, error) {
	_, done, err := p.s.enter(ctx)
	if err != nil {
		return domain.Project{}, err
	}
	defer done()

	if strings.TrimSpace(in.Title) == "" {
		return domain.Project{}, invalid("title", msgRequired)
	}

	now := p.s.now().UTC()
	pr := domain.Project{ID: p.s.newID(), Status: domain.ProjectDraft, CreatedAt: now}
	if err := p.s.applyProject(&pr, in); err != nil {
		return domain.Project{}, err
	}
	p.s.projects = prepend(p.s.projects, pr)
	return pr, nil
}

func (p projectSource) Update(ctx context.Context, id domain.ID, in domain.ProjectInput) (domain.Project, error) {
	_, done, err := p.s.enter(ctx)
	if err != nil {
		return domain.Project{}, err
	}
	defer done()

	i := indexOf(p.s.projects, id.String())
	if i < 0 {
		return domain.Project{}, notFound()
	}
	pr := p.s.projects[i]
	if err := p.s.applyProject(&pr, in); err != nil {
		return domain.Project{}, err
	}
	p.s.projects[i] = pr
	return pr, nil
}

func (p projectSource) Delete(ctx context.Context, id domain.ID) error {
	_, done, err := p.s.enter(ctx)
	if err != nil {
		return err
	}
	defer done()

	i := indexOf(p.s.projects, id.String())
	if i < 0 {
		return notFound()
	}
	p.s.projects = removeAt(p.s.projects, i)
	return nil
}

// applyProject merges the non-empty fields of in. Must be called with mu held.
func (s *Source) applyProject(pr *domain.Project, in domain.ProjectInput) error {
	if in.Client != nil {
		ci := indexOf(s.clients, in.Client.String())
		if ci < 0 {
			return invalid("client", `Invalid pk "`+in.Client.String()+`" - object does not exist.`)
		}
		pr.Client, pr.ClientName = in.Client, s.clients[ci].CompanyName
	}
	pr.Title = cmp.Or(strings.TrimSpace(in.Title), pr.Title)
	pr.Description = cmp.Or(in.Description, pr.Description)
	pr.ProjectType = cmp.Or(in.ProjectType, pr.ProjectType)
	pr.Status = cmp.Or(in.Status, pr.Status)
	pr.Priority = cmp.Or(in.Priority, pr.Priority)
	pr.StartDate = cmp.Or(in.StartDate, pr.StartDate)
	pr.EndDate = cmp.Or(in.EndDate, pr.EndDate)
	pr.Deadline = cmp.Or(in.Deadline, pr.Deadline)
	pr.Budget = cmp.Or(in.Budget, pr.Budget)
	if in.ProjectManager != nil {
		pr.ProjectManager = in.ProjectManager
	}
	pr.UpdatedAt = s.now().UTC()
	return nil
}
