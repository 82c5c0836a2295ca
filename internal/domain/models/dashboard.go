package models

import "slices"

// DashboardAssignment — ближайшее задание на главной странице.
type DashboardAssignment struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	DueDate string `json:"dueDate"`
}

// Announcement — объявление курса.
type Announcement struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CourseStats — счётчики на главной странице.
type CourseStats struct {
	ActiveCourses       int `json:"activeCourses"`
	UpcomingAssignments int `json:"upcomingAssignments"`
	NewMessages         int `json:"newMessages"`
}

// Dashboard определяет ответ GET /dashboard
type Dashboard struct {
	UpcomingAssignments []DashboardAssignment `json:"upcomingAssignments"`
	RecentAnnouncements []Announcement        `json:"recentAnnouncements"`
	CourseStats         CourseStats           `json:"courseStats"`
}

func (d Dashboard) Clone() Dashboard {
	d.UpcomingAssignments = slices.Clone(d.UpcomingAssignments)
	d.RecentAnnouncements = slices.Clone(d.RecentAnnouncements)
	return d
}
