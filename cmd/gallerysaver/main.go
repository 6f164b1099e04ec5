// filepath: cmd/gallerysaver/main.go
package main

import (
	"gallerysaver/internal/cli"

	// Import docs for Swagger
	_ "gallerysaver/docs"
)

// @title Gallery Saver API
// @version 1.0.0
// @description Saves images and files into a shared media library.
// @BasePath /api
// @schemes http
// @securityDefinitions.basic BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a JWT token.

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
