package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mwn/config"
	"mwn/internal/domain"
	"mwn/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
			}
		}

		branches := api.Group("/branches")
		{
			branches.GET("/", h.getBranches)
			branches.GET("/:id", h.getBranchByID)

			admin := branches.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createBranch)
				admin.PUT("/:id", h.updateBranch)
			}
		}

		patients := api.Group("/patients")
		patients.Use(h.authMiddleware())
		{
			patients.GET("/", h.getPatients)
			patients.GET("/:id", h.getPatientByID)
			patients.GET("/:id/lab-reports", h.getPatientLabReports)
			patients.GET("/:id/notes", h.getPatientNotes)

			staff := patients.Group("/")
			staff.Use(h.requireCapability(domain.CanEditPatients))
			{
				staff.POST("/", h.createPatient)
				staff.PUT("/:id", h.updatePatient)
			}

			clinical := patients.Group("/")
			clinical.Use(h.requireCapability(domain.CanViewMedicalHistory))
			{
				clinical.POST("/:id/lab-reports", h.addLabReport)
			}
		}

		doctors := api.Group("/doctors")
		{
			doctors.GET("/", h.getDoctors)
			doctors.GET("/:id", h.getDoctorByID)

			admin := doctors.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createDoctor)
				admin.PUT("/:id", h.updateDoctor)
			}
		}

		packages := api.Group("/packages")
		{
			packages.GET("/", h.getPackages)
			packages.GET("/:id", h.getPackageByID)

			admin := packages.Group("/")
			admin.Use(h.authMiddleware(), h.requireCapability(domain.CanManageCatalog))
			{
				admin.POST("/", h.createPackage)
				admin.PUT("/:id", h.updatePackage)
			}
		}

		appointments := api.Group("/appointments")
		appointments.Use(h.authMiddleware())
		{
			appointments.GET("/slots", h.getSlots)
			appointments.GET("/", h.getAppointments)
			appointments.GET("/:id", h.getAppointmentByID)

			booking := appointments.Group("/")
			booking.Use(h.requireCapability(domain.CanBookAppointments))
			{
				booking.POST("/", h.createAppointment)
				booking.DELETE("/:id", h.cancelAppointment)
				booking.POST("/:id/complete", h.completeAppointment)
				booking.POST("/:id/reschedule", h.rescheduleAppointment)
			}

			notes := appointments.Group("/")
			notes.Use(h.requireCapability(domain.CanViewMedicalHistory))
			{
				notes.POST("/:id/notes", h.addConsultationNote)
			}
		}

		billing := api.Group("/billing")
		billing.Use(h.authMiddleware(), h.requireCapability(domain.CanManageBilling))
		{
			billing.POST("/packages", h.purchasePackage)
			billing.POST("/appointments", h.billAppointment)
			billing.GET("/", h.getBills)
			billing.GET("/summary", h.getRevenueSummary)
			billing.GET("/package-income", h.getPackageIncome)
			billing.GET("/:id", h.getBillByID)
			billing.PUT("/:id/status", h.updateBillStatus)
		}
	}
}
