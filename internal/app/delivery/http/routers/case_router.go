package routers

import (
	"fmt"

	"preauth-service/internal/app/delivery/http/controllers"
	"preauth-service/internal/app/delivery/http/middlewares"
	"preauth-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachCaseRoutes(router chi.Router, middlewares *middlewares.Middlewares, caseController *controllers.CaseController) {
	caseIDPattern := fmt.Sprintf("/{%s}", constvars.URLParamCaseID)

	router.With(middlewares.Authenticate, middlewares.RequireRole(constvars.AuthRoleProvider)).
		Post("/", caseController.CreateCase)
	router.With(middlewares.Authenticate, middlewares.RequireRole(constvars.AuthRoleProvider, constvars.AuthRoleInsurer)).
		Get("/", caseController.ListCases)
	router.With(middlewares.Authenticate, middlewares.RequireRole(constvars.AuthRoleProvider, constvars.AuthRoleInsurer)).
		Get(caseIDPattern, caseController.GetCaseByID)
	router.With(middlewares.Authenticate, middlewares.RequireRole(constvars.AuthRoleProvider)).
		Post(caseIDPattern+"/reanalyze", caseController.ReanalyzeCase)
	router.With(middlewares.Authenticate, middlewares.RequireRole(constvars.AuthRoleInsurer)).
		Post(caseIDPattern+"/decision", caseController.SubmitDecision)
}
