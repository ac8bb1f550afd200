package api

import (
	"github.com/technozen/technozen-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth    *service.AuthService
	User    *service.UserService
	Product *service.ProductService
	Review  *service.ReviewService
}
