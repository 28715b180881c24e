// Command seed loads demo data, or with -mode=admin only makes sure the admin account exists.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/madhava-poojari/swimschool-api/internal/config"
	"github.com/madhava-poojari/swimschool-api/internal/logger"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/service"
	"github.com/madhava-poojari/swimschool-api/internal/store"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
	"github.com/madhava-poojari/swimschool-api/internal/validation"
)

func main() {
	mode := flag.String("mode", "seed", "seed|admin")
	password := flag.String("password", "123456", "password for the seeded accounts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(zerolog.NewConsoleWriter())
		boot.Error().Err(err).Msg("load config")
		os.Exit(1)
	}
	log := logger.New(cfg)

	if err := run(cfg, log, *mode, *password); err != nil {
		log.Error().Err(err).Str("mode", *mode).Msg("seed failed")
		logger.Flush()
		os.Exit(1)
	}
	logger.Flush()
}

func run(cfg *config.Config, log zerolog.Logger, mode, password string) error {
	if mode != "seed" && mode != "admin" {
		return fmt.Errorf("invalid mode %q", mode)
	}
	db, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	v := validation.New()
	users := service.NewUserService(db, v, cfg.BcryptCost)

	if mode == "admin" {
		u, created, err := users.EnsureAdmin(ctx, adminInput(password))
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		if !created {
			log.Info().Str("username", u.Username).Str("role", string(u.Role)).Msg("admin already exists")
			return nil
		}
		log.Info().Str("id", u.ID).Msg("admin created")
		return nil
	}

	courses := service.NewCourseService(db, db, utils.NewFileStorage(cfg.UploadDir, cfg.UploadBaseURL), v, log)
	pools := service.NewPoolService(db, v)
	return seed(ctx, db, users, courses, pools, password, log)
}

func adminInput(password string) service.RegisterInput {
	return service.RegisterInput{
		Name: "Admin", Surname: "Yönetici", Email: "admin@yuze.com", Phone: "05559999999",
		Username: "admin", Password: password, Age: 30,
	}
}

func seed(ctx context.Context, db store.Backend, users *service.UserService, courses *service.CourseService, pools *service.PoolService, password string, log zerolog.Logger) error {
	if err := db.Reset(ctx); err != nil {
		return err
	}

	admin, _, err := users.EnsureAdmin(ctx, adminInput(password))
	if err != nil {
		return err
	}
	nisanur, err := users.CreateWithRole(ctx, service.RegisterInput{
		Name: "Nisanur", Surname: "Dağ", Email: "nisanur@yuze.com", Phone: "05551234567",
		Username: "nisanur_dag", Password: password, Age: 28,
	}, models.RoleInstructor)
	if err != nil {
		return err
	}
	sila, err := users.CreateWithRole(ctx, service.RegisterInput{
		Name: "Sıla", Surname: "Çilingir", Email: "sila@yuze.com", Phone: "05557654321",
		Username: "sila_cilingir", Password: password, Age: 26,
	}, models.RoleInstructor)
	if err != nil {
		return err
	}

	pool, err := pools.Create(ctx, service.PoolInput{
		Name: "Ana Havuz", Description: "25 metre uzunluğunda, 6 şeritli olimpik havuz",
		Length: 25, Width: 12, Depth: 2, Temperature: 28, Capacity: 50,
	})
	if err != nil {
		return err
	}

	courseInputs := []service.CourseInput{
		{
			Name:        "Çocuk Yüzme Kursu (Başlangıç)",
			Description: "6-12 yaş arası çocuklar için temel yüzme eğitimi. Su korkusunu yenme, temel yüzme teknikleri ve güvenlik kuralları öğretilir.",
			Level:       models.LevelBeginner, AgeGroup: models.AgeGroupChildren,
			Duration: 45, MaxStudents: 8, Price: 800, InstructorID: nisanur.ID,
		},
		{
			Name:        "Yetişkin Yüzme Kursu (Başlangıç)",
			Description: "Yetişkinler için sıfırdan yüzme öğrenme. Su korkusunu yenme, temel yüzme stilleri ve güvenlik eğitimi.",
			Level:       models.LevelBeginner, AgeGroup: models.AgeGroupAdults,
			Duration: 60, MaxStudents: 6, Price: 1000, InstructorID: sila.ID,
		},
		{
			Name:        "İleri Seviye Yüzme",
			Description: "Temel yüzme bilgisi olanlar için ileri teknikler. Serbest, kurbağalama, sırtüstü ve kelebek stilleri.",
			Level:       models.LevelAdvanced, AgeGroup: models.AgeGroupAll,
			Duration: 90, MaxStudents: 10, Price: 1200, InstructorID: nisanur.ID,
		},
		{
			Name:        "Yüzme Performans Geliştirme",
			Description: "Yüzme performansını artırmak isteyenler için özel program. Hız, dayanıklılık ve teknik geliştirme.",
			Level:       models.LevelIntermediate, AgeGroup: models.AgeGroupAdults,
			Duration: 75, MaxStudents: 8, Price: 1100, InstructorID: sila.ID,
		},
	}
	created := make([]*models.Course, 0, len(courseInputs))
	for _, in := range courseInputs {
		c, err := courses.Create(ctx, in, admin.ID)
		if err != nil {
			return err
		}
		created = append(created, c)
	}

	year := time.Now().Year()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	slots := []struct {
		course     int
		day        time.Weekday
		start, end string
	}{
		{0, time.Monday, "16:00", "16:45"},
		{0, time.Wednesday, "16:00", "16:45"},
		{1, time.Tuesday, "19:00", "20:00"},
		{1, time.Thursday, "19:00", "20:00"},
		{2, time.Friday, "18:00", "19:30"},
		{3, time.Saturday, "10:00", "11:15"},
	}
	for _, s := range slots {
		if _, err := courses.CreateSchedule(ctx, service.ScheduleInput{
			CourseID: created[s.course].ID, DayOfWeek: int(s.day),
			StartTime: s.start, EndTime: s.end, StartDate: start, EndDate: end,
		}); err != nil {
			return err
		}
	}

	log.Info().
		Str("admin", admin.ID).
		Str("instructor1", nisanur.ID).
		Str("instructor2", sila.ID).
		Str("pool", pool.ID).
		Int("courses", len(created)).
		Int("schedules", len(slots)).
		Msg("demo data loaded")
	return nil
}
