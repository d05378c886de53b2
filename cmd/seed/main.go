package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"tutordesk/internal/auth"
	"tutordesk/internal/config"
	"tutordesk/internal/db"
	apperrors "tutordesk/internal/errors"
	"tutordesk/internal/logger"
	"tutordesk/internal/model"
	"tutordesk/internal/repository"
	"tutordesk/internal/service"
)

const demoPassword = "password123"

func main() {
	reset := flag.Bool("reset", false, "drop and recreate every table before seeding")
	truncate := flag.Bool("truncate", false, "delete every row, keeping the schema, before seeding")
	teacherEmail := flag.String("teacher-email", "teacher@test.com", "demo teacher email")
	teacherName := flag.String("teacher-name", "Demo Teacher", "demo teacher name")
	teacherPassword := flag.String("teacher-password", demoPassword, "demo teacher password")
	withAdmin := flag.Bool("admin", false, "also create admin@test.com")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, os.Stdout)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if *reset {
		log.Warn().Msg("dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal().Err(err).Msg("reset database")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	if *truncate {
		log.Warn().Msg("deleting all rows")
		if err := db.Truncate(gormDB); err != nil {
			log.Fatal().Err(err).Msg("truncate database")
		}
	}

	userRepo := repository.NewUserRepository(gormDB)
	studentRepo := repository.NewStudentRepository(gormDB)
	s := &seeder{
		log:      log,
		userRepo: userRepo,
		users:    service.NewUserService(userRepo, nil),
		students: service.NewStudentService(studentRepo, userRepo, nil),
		sessions: service.NewSessionService(repository.NewSessionRepository(gormDB), studentRepo),
	}

	ctx := context.Background()
	if err := s.run(ctx, service.NewUserInput{
		Name:     *teacherName,
		Email:    *teacherEmail,
		Password: *teacherPassword,
		Role:     model.RoleTeacher,
	}, *withAdmin); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("seed completed")
}

type seeder struct {
	log      zerolog.Logger
	userRepo repository.UserRepository
	users    service.UserService
	students service.StudentService
	sessions service.SessionService
}

// run creates the demo accounts, a linked student and one session.
// Accounts that already exist are reused.
func (s *seeder) run(ctx context.Context, teacherIn service.NewUserInput, withAdmin bool) error {
	teacher, err := s.ensureUser(ctx, teacherIn)
	if err != nil {
		return err
	}
	parent, err := s.ensureUser(ctx, service.NewUserInput{
		Name:     "Demo Parent",
		Email:    "parent@test.com",
		Password: demoPassword,
		Role:     model.RoleParent,
	})
	if err != nil {
		return err
	}
	if withAdmin {
		if _, err := s.ensureUser(ctx, service.NewUserInput{
			Name:     "Admin",
			Email:    "admin@test.com",
			Password: demoPassword,
			Role:     model.RoleAdmin,
		}); err != nil {
			return err
		}
	}

	caller := auth.Principal{ID: teacher.ID, Email: teacher.Email, Role: model.RoleTeacher}
	existing, err := s.students.ListStudents(ctx, caller, model.RoleParent, parent.ID)
	if err != nil {
		return fmt.Errorf("list students: %w", err)
	}
	if len(existing) > 0 {
		s.log.Info().Int("students", len(existing)).Msg("demo students already present")
		return nil
	}

	student, err := s.students.CreateStudent(ctx, caller, service.CreateStudentInput{
		Name:     "Aruhi",
		Grade:    "5",
		School:   "Springfield Elementary",
		Subjects: []string{"Math", "Science"},
		ParentID: &parent.ID,
	})
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	s.log.Info().Str("id", student.ID).Str("name", student.Name).Msg("student created")

	session, err := s.sessions.CreateSession(ctx, caller, service.CreateSessionInput{
		StudentID:    student.ID,
		SessionNotes: "Worked through fractions and decimals.",
		ParentNotes:  "Great focus today.",
		Homework:     "Workbook page 12",
		Date:         "2025-01-15",
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	s.log.Info().Str("id", session.ID).Msg("session created")
	return nil
}

func (s *seeder) ensureUser(ctx context.Context, in service.NewUserInput) (*model.User, error) {
	user, err := s.users.CreateUser(ctx, in)
	if err == nil {
		s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user created")
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrEmailTaken) {
		return nil, fmt.Errorf("create %s: %w", in.Email, err)
	}

	user, err = s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s vanished: %w", in.Email, err)
		}
		return nil, fmt.Errorf("find %s: %w", in.Email, err)
	}
	if user.Role != in.Role {
		return nil, fmt.Errorf("%s exists with role %s, want %s", in.Email, user.Role, in.Role)
	}
	s.log.Info().Str("email", user.Email).Msg("user already exists")
	return user, nil
}
