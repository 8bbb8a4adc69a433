package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	"github.com/BruksfildServices01/dental-scheduler/internal/config"
	domainAct "github.com/BruksfildServices01/dental-scheduler/internal/domain/act"
	domainAppointment "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	domainLabWork "github.com/BruksfildServices01/dental-scheduler/internal/domain/labwork"
	domainPatient "github.com/BruksfildServices01/dental-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/dental-scheduler/internal/handlers"
	"github.com/BruksfildServices01/dental-scheduler/internal/lock"
	"github.com/BruksfildServices01/dental-scheduler/internal/metrics"
	"github.com/BruksfildServices01/dental-scheduler/internal/middleware"
	"github.com/BruksfildServices01/dental-scheduler/internal/objectstore"
	"github.com/BruksfildServices01/dental-scheduler/internal/scheduling"
	ucAct "github.com/BruksfildServices01/dental-scheduler/internal/usecase/act"
	ucAppointment "github.com/BruksfildServices01/dental-scheduler/internal/usecase/appointment"
	ucLabWork "github.com/BruksfildServices01/dental-scheduler/internal/usecase/labwork"
	ucPatient "github.com/BruksfildServices01/dental-scheduler/internal/usecase/patient"
	"github.com/BruksfildServices01/dental-scheduler/internal/validators"
)

// Dependencies are the singletons built in main.
type Dependencies struct {
	Config *config.Config
	Hours  scheduling.Hours
	Log    *zap.Logger

	Appointments domainAppointment.Repository
	Patients     domainPatient.Repository
	Acts         domainAct.Repository
	LabWorks     domainLabWork.Repository
	Photos       objectstore.Store
	AuditStore   audit.Store
	Audit        *audit.Dispatcher
	Locker       lock.Locker
	Metrics      *metrics.Collector

	// Ping reports storage health for /health; nil means always healthy.
	Ping func() error
}

func RegisterRoutes(r *gin.Engine, d Dependencies) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.Metrics(d.Metrics),
		middleware.Logger(d.Log),
		middleware.CORSMiddleware(d.Config.CORSOrigins),
	)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduler := scheduling.New(d.Hours, d.Appointments)

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		d.Appointments,
		scheduler,
		d.Locker,
		d.Audit,
		d.Metrics,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		d.Appointments,
		scheduler,
		d.Locker,
		d.Audit,
		d.Metrics,
	)

	changeStatusUC := ucAppointment.NewChangeStatus(
		d.Appointments,
		scheduler,
		d.Locker,
		d.Audit,
		d.Metrics,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		d.Appointments,
		d.Audit,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(d.Appointments)
	getSlotsUC := ucAppointment.NewGetSlots(scheduler, d.Metrics)
	roomStatusUC := ucAppointment.NewRoomStatus(d.Appointments, d.Hours, d.Config.Clinic.Timezone)

	// ======================================================
	// 🧠 USE CASES: PATIENTS
	// ======================================================
	createPatientUC := ucPatient.NewCreatePatient(
		d.Patients,
		d.Audit,
		d.Metrics,
		d.Config.Clinic.Timezone,
	)
	updatePatientUC := ucPatient.NewUpdatePatient(d.Patients, d.Audit, d.Config.Clinic.Timezone)
	if d.Config.CheckEmailDomain {
		check := validators.EmailDomainChecker(2 * time.Second)
		createPatientUC.EmailCheck = check
		updatePatientUC.EmailCheck = check
	}
	deletePatientUC := ucPatient.NewDeletePatient(d.Patients, d.Acts, d.Audit)

	// ======================================================
	// 🧠 USE CASES: ATOS / FASES / PAGAMENTOS / FOTOS
	// ======================================================
	tz := d.Config.Clinic.Timezone
	actsUC := ucAct.NewActs(d.Acts, d.Patients, d.Photos, d.Audit, d.Log, tz)
	phasesUC := ucAct.NewPhases(d.Acts, d.Photos, d.Audit, d.Log, tz)
	paymentsUC := ucAct.NewPayments(d.Acts, d.Audit, d.Metrics, tz)
	photosUC := ucAct.NewPhotos(d.Acts, d.Photos, ucAct.PhotoConfig{
		MaxBytes:     d.Config.Photo.MaxBytes,
		MaxDimension: d.Config.Photo.MaxDimension,
		Quality:      float32(d.Config.Photo.Quality),
	}, d.Audit, d.Metrics, d.Log)

	// ======================================================
	// 🧠 USE CASES: LABORATÓRIO
	// ======================================================
	labWorksUC := ucLabWork.NewLabWorks(d.LabWorks, d.Patients, d.Audit, tz)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		rescheduleAppointmentUC,
		changeStatusUC,
		deleteAppointmentUC,
		listAppointmentsUC,
	)

	slotHandler := handlers.NewSlotHandler(getSlotsUC, roomStatusUC)

	patientHandler := handlers.NewPatientHandler(
		createPatientUC,
		updatePatientUC,
		deletePatientUC,
		ucPatient.NewGetPatient(d.Patients),
		ucPatient.NewSearchPatients(d.Patients),
	)

	actHandler := handlers.NewActHandler(actsUC, phasesUC, paymentsUC, photosUC)
	labWorkHandler := handlers.NewLabWorkHandler(labWorksUC)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditStore)

	// ======================================================
	// 🔧 OPERAÇÃO
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		if d.Ping != nil {
			if err := d.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// SLOTS / ROOMS
		// ------------------------------
		api.GET("/slots", slotHandler.List)
		api.GET("/slots/check", slotHandler.Check)
		api.GET("/slots/grid", slotHandler.Grid)
		api.GET("/rooms/status", slotHandler.RoomStatus)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.List)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.PUT("/appointments/:id", appointmentHandler.Update)
		api.PATCH("/appointments/:id/status", appointmentHandler.ChangeStatus)
		api.DELETE("/appointments/:id", appointmentHandler.Delete)

		// ------------------------------
		// PATIENTS
		// ------------------------------
		api.POST("/patients", patientHandler.Create)
		api.GET("/patients", patientHandler.List)
		api.GET("/patients/:seq/:year", patientHandler.Get)
		api.PUT("/patients/:seq/:year", patientHandler.Update)
		api.DELETE("/patients/:seq/:year", patientHandler.Delete)

		// ------------------------------
		// ATOS / FASES / FOTOS / PAGAMENTOS
		// ------------------------------
		api.GET("/patients/:seq/:year/acts", actHandler.ListByPatient)
		api.POST("/patients/:seq/:year/acts", actHandler.Create)
		api.GET("/acts/:id", actHandler.Get)
		api.PUT("/acts/:id", actHandler.Update)
		api.DELETE("/acts/:id", actHandler.Delete)

		api.POST("/acts/:id/phases", actHandler.CreatePhase)
		api.PUT("/phases/:id", actHandler.UpdatePhase)
		api.DELETE("/phases/:id", actHandler.DeletePhase)

		api.POST("/phases/:id/photos", actHandler.UploadPhoto)
		api.GET("/photos/:id", actHandler.Photo)
		api.DELETE("/photos/:id", actHandler.DeletePhoto)

		api.POST("/acts/:id/payments", actHandler.CreatePayment)
		api.PUT("/payments/:id", actHandler.UpdatePayment)
		api.DELETE("/payments/:id", actHandler.DeletePayment)

		// ------------------------------
		// LABORATÓRIO
		// ------------------------------
		api.GET("/lab-works", labWorkHandler.List)
		api.POST("/lab-works", labWorkHandler.Create)
		api.GET("/lab-works/:id", labWorkHandler.Get)
		api.PUT("/lab-works/:id", labWorkHandler.Update)
		api.DELETE("/lab-works/:id", labWorkHandler.Delete)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
