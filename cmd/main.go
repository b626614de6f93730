package main

import (
	"currencyconverter/internal/app"
	"os"

	"github.com/sirupsen/logrus"
)

//	@title						Currency Converter API
//	@version					1.0
//	@description				Latest rates, conversion and paginated historical rates backed by a cached, resilient upstream.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped with error")
		os.Exit(1)
	}
}
