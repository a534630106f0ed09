package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"taskdeck/internal/model"
)

// SeedUsers is the demo roster.
func SeedUsers() []model.User {
	return []model.User{
		{ID: "user-1", Name: "Alice Johnson", Avatar: "https://i.pravatar.cc/150?img=1", Color: "#3B82F6"},
		{ID: "user-2", Name: "Bob Smith", Avatar: "https://i.pravatar.cc/150?img=2", Color: "#10B981"},
		{ID: "user-3", Name: "Carol Williams", Avatar: "https://i.pravatar.cc/150?img=3", Color: "#F59E0B"},
		{ID: "user-4", Name: "David Brown", Avatar: "https://i.pravatar.cc/150?img=4", Color: "#EF4444"},
		{ID: "user-5", Name: "Emma Davis", Avatar: "https://i.pravatar.cc/150?img=5", Color: "#8B5CF6"},
	}
}

// SeedTasks builds the demo board with due dates relative to now, so the
// data always shows a mix of overdue, due-today and upcoming tasks.
func SeedTasks(now time.Time) []model.Task {
	now = now.UTC()
	iso := func(t time.Time) string { return t.Format(time.RFC3339) }
	today := iso(now)
	tomorrow := iso(now.AddDate(0, 0, 1))
	yesterday := iso(now.AddDate(0, 0, -1))
	nextWeek := iso(now.AddDate(0, 0, 7))
	lastWeek := now.AddDate(0, 0, -7)

	type row struct {
		id, title, desc string
		status          model.TaskStatus
		priority        model.TaskPriority
		assignee        string
		tags            []string
		due             string
		updated         time.Time
	}
	rows := []row{
		{"task-1", "Design new landing page", "Create wireframes and mockups for the new product landing page",
			model.StatusInProgress, model.PriorityHigh, "user-1", []string{"design", "ui/ux", "frontend"}, tomorrow, now},
		{"task-2", "Implement authentication system", "Set up JWT-based authentication with refresh tokens",
			model.StatusTodo, model.PriorityHigh, "user-2", []string{"backend", "security", "api"}, nextWeek, lastWeek},
		{"task-3", "Write unit tests for API endpoints", "Achieve 80% code coverage for all REST API endpoints",
			model.StatusTodo, model.PriorityMedium, "user-2", []string{"testing", "backend", "quality"}, nextWeek, lastWeek},
		{"task-4", "Fix mobile responsive issues", "Address layout problems on iOS and Android devices",
			model.StatusInProgress, model.PriorityHigh, "user-3", []string{"frontend", "mobile", "bugfix"}, yesterday, now.AddDate(0, 0, -1)},
		{"task-5", "Database migration to PostgreSQL", "Migrate existing MongoDB data to PostgreSQL database",
			model.StatusTodo, model.PriorityMedium, "user-4", []string{"backend", "database", "migration"}, nextWeek, lastWeek},
		{"task-6", "Update documentation", "Update API documentation with new endpoints and examples",
			model.StatusDone, model.PriorityLow, "user-5", []string{"documentation", "api"}, yesterday, now.AddDate(0, 0, -1)},
		{"task-7", "Performance optimization", "Optimize database queries and reduce API response times",
			model.StatusInProgress, model.PriorityMedium, "user-2", []string{"backend", "performance", "optimization"}, nextWeek, now},
		{"task-8", "Set up CI/CD pipeline", "Configure automated testing and deployment workflows",
			model.StatusDone, model.PriorityHigh, "user-4", []string{"devops", "automation", "testing"}, yesterday, now.AddDate(0, 0, -1)},
		{"task-9", "Create admin dashboard", "Build analytics dashboard with charts and metrics",
			model.StatusTodo, model.PriorityMedium, "user-1", []string{"frontend", "dashboard", "analytics"}, nextWeek, lastWeek},
		{"task-10", "Security audit", "Conduct comprehensive security review and penetration testing",
			model.StatusTodo, model.PriorityHigh, "user-4", []string{"security", "audit", "testing"}, today, lastWeek},
		{"task-11", "Implement dark mode", "Add dark mode theme toggle with user preference persistence",
			model.StatusDone, model.PriorityLow, "user-3", []string{"frontend", "ui/ux", "feature"}, yesterday, now.AddDate(0, 0, -1)},
		{"task-12", "Email notification system", "Set up automated email notifications for important events",
			model.StatusInProgress, model.PriorityMedium, "user-5", []string{"backend", "notifications", "email"}, nextWeek, now},
	}

	tasks := make([]model.Task, 0, len(rows))
	for i, r := range rows {
		tasks = append(tasks, model.Task{
			ID:          r.id,
			Title:       r.title,
			Description: r.desc,
			Status:      r.status,
			Priority:    r.priority,
			AssigneeID:  r.assignee,
			Tags:        r.tags,
			DueDate:     r.due,
			// Stagger creation times within the seed week so natural order
			// is deterministic.
			CreatedAt: lastWeek.Add(time.Duration(i) * time.Minute),
			UpdatedAt: r.updated,
		})
	}
	return tasks
}

// Seed replaces tasks, users and all app states with the demo data set.
// Running it again produces the same board, fresh dates aside.
func (s *Service) Seed(ctx context.Context) (tasksInserted, usersInserted int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return 0, 0, err
	}

	db.Tasks = SeedTasks(time.Now())
	db.Users = SeedUsers()
	db.AppStates = nil

	if err := s.save(ctx, db); err != nil {
		return 0, 0, err
	}
	s.log.WithFields(logrus.Fields{
		"tasks": len(db.Tasks),
		"users": len(db.Users),
	}).Info("database seeded")
	return len(db.Tasks), len(db.Users), nil
}
