package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/config"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	appHTTP "github.com/cmlabs-hris/hr-dashboard-go/internal/handler/http"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/geocode"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/lock"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/firebase"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/memory"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/mongodb"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/service/file"
	holidayService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/leave"
	payslipService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/payslip"
)

const version = "v1.0.0"

type repositories struct {
	employee   employee.EmployeeRepository
	attendance attendance.AttendanceRepository
	holiday    holiday.HolidayRepository
	leave      leave.LeaveRepository
	payslip    payslip.PayslipRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	ctx := context.Background()
	loc := cfg.Location()

	// Firebase is shared by the firestore store, firebase auth and firebase storage
	var fb *database.Firebase
	if cfg.Store.Driver == "firestore" || cfg.Auth.Provider == "firebase" || cfg.Storage.Type == "firebase" {
		fb, err = database.NewFirebase(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile, cfg.Firebase.StorageBucket)
		if err != nil {
			log.Fatal("Failed to initialize firebase: ", err)
		}
		defer fb.Close()
	}

	var repos repositories
	switch cfg.Store.Driver {
	case "firestore":
		repos = repositories{
			employee:   firebase.NewEmployeeRepository(fb.Firestore),
			attendance: firebase.NewAttendanceRepository(fb.Firestore),
			holiday:    firebase.NewHolidayRepository(fb.Firestore, loc),
			leave:      firebase.NewLeaveRepository(fb.Firestore, loc),
			payslip:    firebase.NewPayslipRepository(fb.Firestore),
		}
	case "postgres":
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.Pool())
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()
		if err := postgresql.CreateSchema(ctx, db); err != nil {
			log.Fatal("Failed to create schema: ", err)
		}
		repos = repositories{
			employee:   postgresql.NewEmployeeRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			holiday:    postgresql.NewHolidayRepository(db, loc),
			leave:      postgresql.NewLeaveRepository(db, loc),
			payslip:    postgresql.NewPayslipRepository(db),
		}
	case "mongo":
		db, err := database.NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			log.Fatal("Error connecting to mongodb: ", err)
		}
		defer db.Client().Disconnect(context.Background())
		repos = repositories{
			employee:   mongodb.NewEmployeeRepository(db),
			attendance: mongodb.NewAttendanceRepository(db),
			holiday:    mongodb.NewHolidayRepository(db, loc),
			leave:      mongodb.NewLeaveRepository(db, loc),
			payslip:    mongodb.NewPayslipRepository(db),
		}
	case "memory":
		slog.Warn("Using in-memory store, data is lost on restart")
		repos = repositories{
			employee:   memory.NewEmployeeRepository(),
			attendance: memory.NewAttendanceRepository(),
			holiday:    memory.NewHolidayRepository(),
			leave:      memory.NewLeaveRepository(),
			payslip:    memory.NewPayslipRepository(),
		}
	}

	var fileStorage storage.FileStorage
	uploadsDir := ""
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
		uploadsDir = cfg.Storage.BasePath
	case "oss":
		fileStorage, err = storage.NewOSSStorage(cfg.OSS.Endpoint, cfg.OSS.AccessKey, cfg.OSS.SecretKey, cfg.OSS.Bucket, cfg.OSS.PublicBase)
		if err != nil {
			log.Fatal("Failed to initialize oss storage: ", err)
		}
	case "firebase":
		bucket, err := fb.Bucket(ctx)
		if err != nil {
			log.Fatal("Failed to initialize firebase storage: ", err)
		}
		fileStorage = storage.NewFirebaseStorage(bucket, cfg.Firebase.StorageBucket)
	}

	var locker lock.Locker = lock.NewMemoryLocker()
	if cfg.Redis.Addr != "" {
		client, err := database.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		defer client.Close()
		locker = lock.NewRedisLocker(client, "hr-dashboard")
	}

	var authenticate func(http.Handler) http.Handler
	switch cfg.Auth.Provider {
	case "firebase":
		authClient, err := fb.Auth(ctx)
		if err != nil {
			log.Fatal("Failed to initialize firebase auth: ", err)
		}
		authenticate = middleware.FirebaseAuthRequired(authClient)
	default:
		JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
		authenticate = middleware.JWT(JWTService.JWTAuth())
	}

	geocoder := geocode.NewNominatimGeocoder(cfg.Geofence.GeocoderURL, cfg.Geofence.UserAgent)
	fileService := file.NewFileService(fileStorage)

	employeeSvc := employeeService.NewEmployeeService(repos.employee)
	attendanceSvc := attendanceService.NewAttendanceService(employeeSvc, repos.employee, repos.attendance, repos.holiday, loc, nil)
	gateSvc := attendanceService.NewGateService(attendanceService.GateConfig{
		RadiusKm:       cfg.Geofence.RadiusKm,
		GeocodeTimeout: cfg.Geofence.GeocodeTimeout,
		LockTTL:        cfg.Geofence.LockTTL,
		Location:       loc,
	}, repos.employee, repos.attendance, geocoder, locker)
	holidaySvc := holidayService.NewHolidayService(repos.holiday, loc)
	leaveSvc := leaveService.NewLeaveService(employeeSvc, repos.leave, loc)
	payslipSvc := payslipService.NewPayslipService(employeeSvc, attendanceSvc, leaveSvc, repos.payslip, fileService, cfg.App.CompanyName, loc)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Env:            cfg.App.Env,
		Version:        version,
		AllowedOrigins: cfg.App.AllowedOrigins,
		LogLevel:       cfg.SlogLevel(),
		UploadsDir:     uploadsDir,
		Authenticate:   authenticate,
	}, appHTTP.Handlers{
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, gateSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Payslip:    appHTTP.NewPayslipHandler(payslipSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server running", "addr", "http://localhost"+port, "store", cfg.Store.Driver, "auth", cfg.Auth.Provider)
	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("Server error", "error", err)
	}
}
