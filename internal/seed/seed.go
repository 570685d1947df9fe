package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/db"
	"github.com/yigit/studentportal/internal/pkg/auth"
)

// Demo account created with the default data
const (
	DemoUsername        = "demo"
	DemoPassword        = "demo1234"
	DemoAdmissionNumber = "ADM-2024-0001"
)

// Catalog rows offered on the application form
var (
	Universities = []string{"Global Tech University", "Riverside State University"}
	Courses      = []string{"Computer Science", "Business Administration", "Mechanical Engineering"}
	Sessions     = []string{"2025-2026", "2026-2027"}
)

// Hostels offered on the services page
var Hostels = []models.Hostel{
	{Name: "Maple House", Location: "North Campus", Capacity: 120, CurrentOccupancy: 84, MonthlyRent: 450, Facilities: "Wi-Fi, Laundry, Study Rooms", Status: models.HostelStatusActive},
	{Name: "Cedar Hall", Location: "South Campus", Capacity: 80, CurrentOccupancy: 80, MonthlyRent: 520, Facilities: "Wi-Fi, Gym, Shared Kitchen", Status: models.HostelStatusActive},
}

var sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// CreateDefaultData inserts the catalogs, hostels and the demo student if they don't exist.
// Each block runs in its own transaction; failures are collected and returned together.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (catalogs, hostels, demo student)...")
	var finalErr error

	if err := database.WithTransaction(ctx, createCatalogs); err != nil {
		lgr.Error().Err(err).Msg("Error creating catalogs")
		finalErr = errors.Join(finalErr, err)
	}

	if err := database.WithTransaction(ctx, createHostels); err != nil {
		lgr.Error().Err(err).Msg("Error creating hostels")
		finalErr = errors.Join(finalErr, err)
	}

	if err := database.WithTransaction(ctx, createDemoStudent); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo student")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data is in place")
	}
	return finalErr
}

func insertIgnoringConflicts(ctx context.Context, tx pgx.Tx, insert squirrel.InsertBuilder) error {
	sql, args, err := insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build seed query: %w", err)
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}

func createCatalogs(ctx context.Context, tx pgx.Tx) error {
	universities := sb.Insert("universities").Columns("name")
	for _, name := range Universities {
		universities = universities.Values(name)
	}
	if err := insertIgnoringConflicts(ctx, tx, universities); err != nil {
		return fmt.Errorf("universities: %w", err)
	}

	courses := sb.Insert("courses").Columns("name")
	for _, name := range Courses {
		courses = courses.Values(name)
	}
	if err := insertIgnoringConflicts(ctx, tx, courses); err != nil {
		return fmt.Errorf("courses: %w", err)
	}

	sessions := sb.Insert("academic_sessions").Columns("session_name", "is_active")
	for _, name := range Sessions {
		sessions = sessions.Values(name, true)
	}
	if err := insertIgnoringConflicts(ctx, tx, sessions); err != nil {
		return fmt.Errorf("academic sessions: %w", err)
	}
	return nil
}

func createHostels(ctx context.Context, tx pgx.Tx) error {
	insert := sb.Insert("hostels").
		Columns("name", "location", "capacity", "current_occupancy", "monthly_rent", "facilities", "status")
	for _, h := range Hostels {
		insert = insert.Values(h.Name, h.Location, h.Capacity, h.CurrentOccupancy, h.MonthlyRent, h.Facilities, h.Status)
	}
	return insertIgnoringConflicts(ctx, tx, insert)
}

func createDemoStudent(ctx context.Context, tx pgx.Tx) error {
	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	var studentID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO students (first_name, last_name, email, status, admission_number)
		VALUES ('Demo', 'Student', 'demo.student@example.edu', 'Active', $1)
		ON CONFLICT (admission_number) DO UPDATE SET updated_at = students.updated_at
		RETURNING id`, DemoAdmissionNumber).Scan(&studentID)
	if err != nil {
		return fmt.Errorf("students: %w", err)
	}

	insert := sb.Insert("student_credentials").
		Columns("student_id", "username", "password_hash").
		Values(studentID, DemoUsername, hash)
	if err := insertIgnoringConflicts(ctx, tx, insert); err != nil {
		return fmt.Errorf("credentials: %w", err)
	}
	return nil
}
