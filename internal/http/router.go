package http

import (
	"apartment-backend/internal/handlers"
	"apartment-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything the API router mounts
type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	LoginLog     *handlers.LoginLogHandler
	Household    *handlers.HouseholdHandler
	Resident     *handlers.ResidentHandler
	Fee          *handlers.FeeHandler
	Report       *handlers.ReportHandler
	Contribution *handlers.ContributionHandler
	Residence    *handlers.ResidenceHandler // tamtru
	Absence      *handlers.ResidenceHandler // tamvang
	Payment      *handlers.PaymentHandler
	Statistics   *handlers.StatisticsHandler
	Health       *handlers.HealthHandler
}

func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware) *mux.Router {
	r := mux.NewRouter()

	// Route templates label the HTTP metrics, so this runs after matching
	r.Use(middleware.MetricsMiddleware)

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods("POST")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/api/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/api/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.HandleFunc("/api/health/detailed", h.Health.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Protected API routes - Current user
	api.HandleFunc("/auth/me", h.User.Me).Methods("GET")
	api.HandleFunc("/auth/change-password", h.User.ChangePassword).Methods("PUT")
	api.HandleFunc("/auth/update-info", h.User.UpdateInfo).Methods("PUT")
	api.HandleFunc("/auth/login-logs", h.LoginLog.ListLoginLogs).Methods("GET")

	// Protected API routes - Fee ledger. Fixed paths come before {type} ones.
	api.HandleFunc("/fees/phisinhhoat/update", h.Fee.UpdateUtility).Methods("PUT")
	api.HandleFunc("/fees/phiguixe/price", h.Fee.SetParkingPrice).Methods("PUT")
	api.HandleFunc("/fees/{type}/price", h.Fee.SetPrice).Methods("PUT")
	api.HandleFunc("/fees/{type}/pay", h.Fee.PayFee).Methods("PUT")
	api.HandleFunc("/fees/{type}/{year}", h.Fee.ListFees).Methods("GET")
	api.HandleFunc("/fees/{type}/{year}/report", h.Report.GetFeeReportPDF).Methods("GET")
	api.HandleFunc("/fees/{type}/{year}/report/archive", h.Report.ArchiveFeeReport).Methods("POST")

	// Protected API routes - Households
	api.HandleFunc("/hokhau", h.Household.ListHouseholds).Methods("GET")
	api.HandleFunc("/hokhau", h.Household.CreateHousehold).Methods("POST")
	api.HandleFunc("/hokhau/{id}", h.Household.GetHousehold).Methods("GET")
	api.HandleFunc("/hokhau/{id}", h.Household.UpdateHousehold).Methods("PUT")
	api.HandleFunc("/hokhau/{id}", h.Household.DeleteHousehold).Methods("DELETE")

	// Protected API routes - Residents
	api.HandleFunc("/nhankhau", h.Resident.ListResidents).Methods("GET")
	api.HandleFunc("/nhankhau", h.Resident.CreateResident).Methods("POST")
	api.HandleFunc("/nhankhau/{id}", h.Resident.GetResident).Methods("GET")
	api.HandleFunc("/nhankhau/{id}", h.Resident.UpdateResident).Methods("PUT")
	api.HandleFunc("/nhankhau/{id}", h.Resident.DeleteResident).Methods("DELETE")

	// Protected API routes - Contributions
	api.HandleFunc("/phidonggop", h.Contribution.ListContributions).Methods("GET")
	api.HandleFunc("/phidonggop", h.Contribution.CreateContribution).Methods("POST")
	api.HandleFunc("/phidonggop/types", h.Contribution.ListTypes).Methods("GET")
	api.HandleFunc("/phidonggop/types", h.Contribution.CreateType).Methods("POST")
	api.HandleFunc("/phidonggop/types/{name}", h.Contribution.DeleteType).Methods("DELETE")

	// Protected API routes - Temporary residence and absence
	api.HandleFunc("/tamtru", h.Residence.List).Methods("GET")
	api.HandleFunc("/tamtru", h.Residence.Create).Methods("POST")
	api.HandleFunc("/tamtru/{id}", h.Residence.Delete).Methods("DELETE")
	api.HandleFunc("/tamvang", h.Absence.List).Methods("GET")
	api.HandleFunc("/tamvang", h.Absence.Create).Methods("POST")
	api.HandleFunc("/tamvang/{id}", h.Absence.Delete).Methods("DELETE")

	// Protected API routes - Payment log
	api.HandleFunc("/thanhtoan", h.Payment.ListPayments).Methods("GET")
	api.HandleFunc("/thanhtoan", h.Payment.CreatePayment).Methods("POST")

	api.HandleFunc("/statistics", h.Statistics.GetStatistics).Methods("GET")

	return r
}
