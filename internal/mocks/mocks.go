// Package mocks holds testify mocks of the service layer for handler and
// middleware tests.
package mocks

import (
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

var (
	_ service.IAuthService      = (*MockAuthService)(nil)
	_ middleware.TokenValidator = (*MockAuthService)(nil)
	_ service.IRecipeService    = (*MockRecipeService)(nil)
	_ service.ICuisineService   = (*MockCuisineService)(nil)
	_ service.MediaStore        = (*MockMediaStore)(nil)
)
