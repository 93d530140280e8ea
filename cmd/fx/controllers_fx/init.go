package controllers_fx

import (
	"carebridge/internal/api"
	"carebridge/internal/api/controllers"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewClientController),
	fx.Provide(controllers.NewSessionController),
	fx.Provide(controllers.NewNoteController),
	fx.Provide(controllers.NewClientPortalController),
	fx.Provide(api.NewRouter))
