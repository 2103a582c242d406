package routers

import (
	"preauth-service/internal/app/delivery/http/controllers"
	"preauth-service/internal/app/delivery/http/middlewares"
	"preauth-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachDocumentRoutes(router chi.Router, middlewares *middlewares.Middlewares, documentController *controllers.DocumentController) {
	router.With(middlewares.Authenticate, middlewares.RequireRole(constvars.AuthRoleProvider, constvars.AuthRoleInsurer)).
		Post("/", documentController.UploadDocument)
}
