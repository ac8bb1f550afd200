package providers

import (
	"github.com/samber/do/v2"

	"github.com/technozen/technozen-server/internal/auth"
	"github.com/technozen/technozen-server/internal/logger"
	"github.com/technozen/technozen-server/internal/service"
)

// ProvideAuthService provides the token issuing service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(tokens, log.Logger), nil
}

// ProvideUserService provides the user directory service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, log.Logger), nil
}

// ProvideProductService provides the product registry service.
func ProvideProductService(i do.Injector) (*service.ProductService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProductService(storeHandle.Store, log.Logger), nil
}

// ProvideReviewService provides the review ledger service.
func ProvideReviewService(i do.Injector) (*service.ReviewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReviewService(storeHandle.Store, log.Logger), nil
}
