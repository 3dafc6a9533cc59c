package handler

import (
	"net/http"

	"github.com/vfg2006/dealer-crm-api/internal/api/handler/router"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/analyzing"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/financing"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/tracking"
	"github.com/vfg2006/dealer-crm-api/pkg/middleware"
)

func Healthcheck(dependencies map[string]Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(dependencies),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Clients(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients",
			Method:      http.MethodGet,
			Handler:     ListClients(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/clients",
			Method:      http.MethodPost,
			Handler:     CreateClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodGet,
			Handler:     GetClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodPut,
			Handler:     UpdateClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/clients/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Analytics(service analyzing.Analyzer, resolver BaseResolver) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/overview",
			Method:      http.MethodGet,
			Handler:     GetAdminOverview(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/clients/:id/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
		{
			Path:        "/v1/clients/:id/analytics",
			Method:      http.MethodGet,
			Handler:     GetAnalytics(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
	}
}

func Tracking(service tracking.Tracker, resolver BaseResolver) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients/:id/leads",
			Method:      http.MethodGet,
			Handler:     ListLeads(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
		{
			Path:        "/v1/clients/:id/leads",
			Method:      http.MethodPost,
			Handler:     CreateLead(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
		{
			Path:        "/v1/clients/:id/leads/:record_id",
			Method:      http.MethodPatch,
			Handler:     UpdateLead(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
		{
			Path:        "/v1/clients/:id/leads/:record_id",
			Method:      http.MethodDelete,
			Handler:     DeleteLead(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
		{
			Path:        "/v1/clients/:id/leads/:record_id/book",
			Method:      http.MethodPost,
			Handler:     BookLead(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
		{
			Path:        "/v1/clients/:id/appointments",
			Method:      http.MethodGet,
			Handler:     ListAppointments(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
		{
			Path:        "/v1/clients/:id/appointments",
			Method:      http.MethodPost,
			Handler:     BookAppointment(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
		{
			Path:        "/v1/clients/:id/appointments/:record_id",
			Method:      http.MethodDelete,
			Handler:     CancelAppointment(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
	}
}

func Finance(service financing.Financer, resolver BaseResolver) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/finance/quote",
			Method:      http.MethodPost,
			Handler:     QuoteFinance(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id/finance",
			Method:      http.MethodGet,
			Handler:     ListFinanceCalculations(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
		{
			Path:        "/v1/clients/:id/finance",
			Method:      http.MethodPost,
			Handler:     CreateFinanceCalculation(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
		{
			Path:        "/v1/clients/:id/finance/:record_id",
			Method:      http.MethodDelete,
			Handler:     DeleteFinanceCalculation(service, resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSelf()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
