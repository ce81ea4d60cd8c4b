package demo

import (
	"time"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
)

// Demo sign in credentials.
const (
	AdminEmail    = "admin@ideateam.com"
	AdminPassword = "admin123"
)

type seedUser struct {
	user     domain.User
	password string
}

func (s *Source) seed() error {
	now := s.now().UTC()
	at := func(days int) time.Time { return now.AddDate(0, 0, -days) }
	day := func(days int) string { return now.AddDate(0, 0, days).Format(time.DateOnly) }
	ptr := func(t time.Time) *time.Time { return &t }
	id := func(n domain.ID) *domain.ID { return &n }

	users := []seedUser{
		{domain.User{ID: 1, Email: AdminEmail, FirstName: "Admin", LastName: "User", Role: domain.RoleAdmin, IsActive: true, DateJoined: ptr(at(400))}, AdminPassword},
		{domain.User{ID: 2, Email: "sara@ideateam.com", FirstName: "Sara", LastName: "Mahmoud", Role: domain.RoleManager, IsActive: true, DateJoined: ptr(at(300))}, "manager123"},
		{domain.User{ID: 3, Email: "omar@ideateam.com", FirstName: "Omar", LastName: "Khaled", Role: domain.RoleEmployee, IsActive: true, DateJoined: ptr(at(120))}, "employee123"},
		{domain.User{ID: 4, Email: "nour@nile-trading.com", FirstName: "Nour", LastName: "Farid", Role: domain.RoleClient, IsActive: false, DateJoined: ptr(at(60))}, ""},
	}
	for _, su := range users {
		su.user.FullName = su.user.FirstName + " " + su.user.LastName
		acc := account{user: su.user}
		if su.password != "" {
			hash, err := s.hasher.Hash(su.password)
			if err != nil {
				return err
			}
			acc.hash = hash
		}
		s.users = append(s.users, acc)
	}

	s.clients = []domain.Client{
		{ID: 1, FirstName: "Ahmed", LastName: "Hassan", Email: "ahmed@nile-trading.com", CompanyName: "Nile Trading", Industry: "Retail", City: "Cairo", Country: "Egypt", Status: domain.ClientActive, ClientSince: day(-380), CreatedAt: at(380), UpdatedAt: at(10)},
		{ID: 2, FirstName: "Mona", LastName: "Adel", Email: "mona@deltafoods.com", CompanyName: "Delta Foods", Industry: "Food", City: "Alexandria", Country: "Egypt", Status: domain.ClientActive, ClientSince: day(-200), CreatedAt: at(200), UpdatedAt: at(30)},
		{ID: 3, FirstName: "Tarek", LastName: "Saeed", Email: "tarek@sahara-logistics.com", CompanyName: "Sahara Logistics", Industry: "Logistics", City: "Giza", Country: "Egypt", Status: domain.ClientInactive, ClientSince: day(-500), CreatedAt: at(500), UpdatedAt: at(90)},
	}

	s.leads = []domain.Lead{
		{ID: 10, FirstName: "Karim", LastName: "Nabil", Email: "karim@cairotech.io", CompanyName: "Cairo Tech", Status: domain.LeadNew, Source: "website", CreatedAt: at(3), UpdatedAt: at(3)},
		{ID: 11, FirstName: "Laila", LastName: "Samir", Email: "laila@blueseahotels.com", CompanyName: "Blue Sea Hotels", Status: domain.LeadQualified, Source: "referral", BudgetRange: "50k-100k", CreatedAt: at(14), UpdatedAt: at(5)},
		{ID: 12, FirstName: "Youssef", LastName: "Ali", Email: "youssef@greenfarms.com", CompanyName: "Green Farms", Status: domain.LeadContacted, Source: "social_media", CreatedAt: at(21), UpdatedAt: at(8)},
	}

	s.projects = []domain.Project{
		{ID: 1, Title: "Corporate website redesign", ProjectType: "web", Status: domain.ProjectActive, Priority: "high", Client: id(1), ClientName: "Nile Trading", ProjectManager: id(2), StartDate: day(-60), Deadline: day(30), Budget: "45000.00", Cost: "18000.00", CreatedAt: at(60), UpdatedAt: at(2)},
		{ID: 2, Title: "Mobile ordering app", ProjectType: "mobile", Status: domain.ProjectCompleted, Priority: "medium", Client: id(2), ClientName: "Delta Foods", ProjectManager: id(2), StartDate: day(-180), EndDate: day(-20), Budget: "80000.00", Cost: "76500.00", CreatedAt: at(180), UpdatedAt: at(20)},
		{ID: 3, Title: "Fleet tracking integration", ProjectType: "integration", Status: domain.ProjectOnHold, Priority: "low", Client: id(3), ClientName: "Sahara Logistics", StartDate: day(-90), Budget: "30000.00", CreatedAt: at(90), UpdatedAt: at(45)},
		{ID: 4, Title: "Q3 marketing campaign", ProjectType: "marketing", Status: domain.ProjectActive, Priority: "medium", Client: id(1), ClientName: "Nile Trading", StartDate: day(-15), Deadline: day(75), Budget: "12000.00", CreatedAt: at(15), UpdatedAt: at(1)},
	}

	s.invoices = []domain.Invoice{
		{ID: 1, InvoiceNumber: "INV-2024-001", Client: 1, ClientName: "Nile Trading", Project: id(1), IssueDate: day(-45), DueDate: day(-15), TotalAmount: "15000.00", Status: domain.InvoicePaid, SentAt: ptr(at(45)), PaidAt: ptr(at(20)), CreatedAt: at(45), UpdatedAt: at(20)},
		{ID: 2, InvoiceNumber: "INV-2024-002", Client: 2, ClientName: "Delta Foods", Project: id(2), IssueDate: day(-10), DueDate: day(20), TotalAmount: "8200.00", Status: domain.InvoiceSent, SentAt: ptr(at(10)), CreatedAt: at(10), UpdatedAt: at(10)},
		{ID: 3, InvoiceNumber: "INV-2024-003", Client: 1, ClientName: "Nile Trading", Project: id(4), IssueDate: day(-40), DueDate: day(-10), TotalAmount: "4300.00", Status: domain.InvoiceOverdue, SentAt: ptr(at(40)), CreatedAt: at(40), UpdatedAt: at(10)},
		{ID: 4, InvoiceNumber: "INV-2024-004", Client: 3, ClientName: "Sahara Logistics", IssueDate: day(0), DueDate: day(30), TotalAmount: "1200.00", Status: domain.InvoiceDraft, CreatedAt: at(0), UpdatedAt: at(0)},
	}

	s.categories = []domain.Category{
		{ID: 1, Name: "News", Slug: "news", ContentsCount: 1},
		{ID: 2, Name: "Guides", Slug: "guides", ContentsCount: 1},
	}
	s.tags = []domain.Tag{
		{ID: 1, Name: "Design", Slug: "design", ContentsCount: 2},
		{ID: 2, Name: "Company", Slug: "company", ContentsCount: 1},
	}
	s.contents = []domain.Content{
		{ID: 1, Title: "Welcome to Idea", Slug: "welcome-to-idea", ContentType: "article", Excerpt: "Who we are and what we build.", Status: domain.ContentPublished, Author: id(1), AuthorName: "Admin User", Category: id(1), CategoryName: "News", Tags: []domain.Tag{s.tags[1]}, ViewsCount: 412, PublishedAt: ptr(at(30)), CreatedAt: at(31), UpdatedAt: at(30)},
		{ID: 2, Title: "Pricing", Slug: "pricing", ContentType: "page", Excerpt: "Plans for every stage.", Status: domain.ContentDraft, Author: id(2), AuthorName: "Sara Mahmoud", CreatedAt: at(4), UpdatedAt: at(1)},
		{ID: 3, Title: "Designing for right to left", Slug: "designing-for-rtl", ContentType: "blog", Excerpt: "Layout lessons from bilingual products.", Status: domain.ContentArchived, Author: id(3), AuthorName: "Omar Khaled", Category: id(2), CategoryName: "Guides", Tags: []domain.Tag{s.tags[0]}, ViewsCount: 96, PublishedAt: ptr(at(200)), CreatedAt: at(210), UpdatedAt: at(50)},
	}

	s.accounts = []domain.SocialAccount{
		{ID: 1, Platform: "facebook", AccountName: "Idea Team", IsActive: true, PostsCount: 2, CreatedAt: at(365)},
		{ID: 2, Platform: "linkedin", AccountName: "Idea Team Company", IsActive: true, PostsCount: 1, CreatedAt: at(300)},
		{ID: 3, Platform: "twitter", AccountName: "ideateam", IsActive: false, CreatedAt: at(250)},
	}
	s.posts = []domain.Post{
		{ID: 1, Account: 1, AccountName: "Idea Team", Platform: "facebook", Content: "Our new website is live.", Status: domain.PostPublished, PublishedAt: ptr(at(7)), CreatedAt: at(8)},
		{ID: 2, Account: 2, AccountName: "Idea Team Company", Platform: "linkedin", Content: "We are hiring Go engineers.", Status: domain.PostScheduled, ScheduledAt: ptr(now.Add(48 * time.Hour)), CreatedAt: at(1)},
		{ID: 3, Account: 1, AccountName: "Idea Team", Platform: "facebook", Content: "Behind the scenes of the Q3 campaign.", Status: domain.PostDraft, CreatedAt: at(0)},
	}
	s.campaigns = []domain.Campaign{
		{ID: 1, Name: "Launch week", Status: "active", StartDate: day(-7), EndDate: day(7), Budget: "2500.00", PostsCount: 2, CreatedAt: at(10)},
	}

	s.reports = []domain.Report{
		{ID: 1, Title: "Sales report - " + day(-30), ReportType: domain.ReportSales, CreatedBy: 1, CreatedByName: "Admin User", StartDate: day(-210), EndDate: day(-30), SalesMetrics: []domain.SalesMetric{
			{ID: 1, TotalRevenue: "110000.00", TotalProjects: 2, CompletedProjects: 1, AverageProjectValue: "55000.00", PeriodStart: day(-210), PeriodEnd: day(-30), RecordedAt: at(30)},
		}, CreatedAt: at(30), UpdatedAt: at(30)},
		{ID: 2, Title: "Client report - " + day(-12), ReportType: domain.ReportClient, CreatedBy: 2, CreatedByName: "Sara Mahmoud", ClientMetrics: []domain.ClientMetric{
			{ID: 1, Client: 2, ClientName: "Delta Foods", TotalProjects: 1, CompletedProjects: 1, TotalSpent: "80000.00", SatisfactionScore: "9.0", LastProjectDate: day(-180), RecordedAt: at(12)},
		}, CreatedAt: at(12), UpdatedAt: at(12)},
	}
	return nil
}
