package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/kzkiosk/kiosk-control/cmd"
)

const version = "0.3.0"

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.2 init -g main.go -o docs

// @title                       Kiosk Control API
// @version                     1.0
// @description                 Local control plane of the packing kiosk: master mode, operator permissions, SKU catalog and reports.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := fang.Execute(
		context.Background(),
		cmd.NewRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
