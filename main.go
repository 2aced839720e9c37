package main

import "stockroom/internal/app"

// @title           Stockroom API
// @version         1.0
// @description     Inventory API with bearer-token authentication, account lockout and per-owner item access.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
